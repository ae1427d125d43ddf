package compiler

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/reoring/zodgen/internal/naming"
	"github.com/reoring/zodgen/internal/usage"
	"github.com/reoring/zodgen/openapi"
)

// Fragment is the compiled text of one named schema plus its discovered
// outbound edges. Fragments are ephemeral: the sorter and emitter consume
// them and the session is discarded.
type Fragment struct {
	Name        string // raw component name
	TypeName    string
	Ident       string // validator identifier
	Mode        Mode
	Validator   string // zod expression text (validator mode)
	TypeText    string // TS type expression text
	Description string
	Deps        []string // outbound edges, discovery order
	IsAlias     bool     // bare reference to another compiled identifier
	AliasOf     string
	SkipInfer   bool // type declared elsewhere (surfaced native enum)
}

// EnumDecl is one surfaced TypeScript enum declaration.
type EnumDecl struct {
	Name    string
	Keys    []string
	Values  []string // rendered literal text, parallel to Keys
	Doc     string
	RawName string // owning schema name, for stable ordering
}

// Session threads every piece of run-scoped mutable state through the
// compile functions: fragment map, dependency edges, naming registries,
// the pattern cache and collected warnings. Compile functions stay free of
// package-level state so they remain independently testable.
type Session struct {
	Doc    *openapi.Document
	Config Config

	Usage  map[string]usage.Context
	Cycles *usage.Cycles
	Modes  map[string]Mode

	TypeNames map[string]string // schema name -> TS type name
	Idents    map[string]string // schema name -> validator identifier

	Fragments map[string]*Fragment
	Order     []string // schema names in declaration order

	Enums     []EnumDecl
	enumNames map[*openapi.Schema]string

	deps    map[string][]string
	depSeen map[string]map[string]bool

	patternCache *lru.Cache[string, string]
	typeRegistry *naming.Registry

	Warnings []string
}

// NewSession prepares a session: usage and cycle results fixed up front,
// emission modes derived, identifiers claimed in declaration order.
func NewSession(doc *openapi.Document, cfg Config, usageMap map[string]usage.Context, cycles *usage.Cycles) (*Session, error) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.PatternCacheSize <= 0 {
		cfg.PatternCacheSize = 256
	}
	cache, err := lru.New[string, string](cfg.PatternCacheSize)
	if err != nil {
		return nil, fmt.Errorf("compiler: pattern cache: %w", err)
	}
	s := &Session{
		Doc:          doc,
		Config:       cfg,
		Usage:        usageMap,
		Cycles:       cycles,
		Modes:        make(map[string]Mode),
		TypeNames:    make(map[string]string),
		Idents:       make(map[string]string),
		Fragments:    make(map[string]*Fragment),
		enumNames:    make(map[*openapi.Schema]string),
		deps:         make(map[string][]string),
		depSeen:      make(map[string]map[string]bool),
		patternCache: cache,
	}

	types := naming.NewRegistry()
	idents := naming.NewRegistry()
	s.typeRegistry = types
	for _, name := range doc.SchemaNames() {
		cfgFor := s.configFor(name)
		tn := types.Claim(naming.TypeName(name))
		s.TypeNames[name] = tn
		s.Idents[name] = idents.Claim(naming.ValidatorIdent(tn, cfgFor.NamePrefix, cfgFor.NameSuffix))

		mode := cfgFor.Mode
		if cycles.In(name) {
			// cycle members need a runtime validator so a deferred
			// reference can break the cycle
			mode = ModeValidator
		}
		s.Modes[name] = mode
		s.Order = append(s.Order, name)
	}
	return s, nil
}

// configFor resolves the effective configuration for a named schema from its
// usage context.
func (s *Session) configFor(name string) Config {
	switch s.Usage[name] {
	case usage.ContextRequest:
		return s.Config.effective(s.Config.Request)
	case usage.ContextResponse:
		return s.Config.effective(s.Config.Response)
	default:
		return s.Config
	}
}

// propertyContext is the usage context properties are filtered under: the
// schema-type filter overrides the analyzed context when narrowing.
func (s *Session) propertyContext(name string) usage.Context {
	switch s.Config.Filter {
	case FilterRequest:
		return usage.ContextRequest
	case FilterResponse:
		return usage.ContextResponse
	default:
		u, ok := s.Usage[name]
		if !ok {
			return usage.ContextBoth
		}
		if u == usage.ContextNone {
			return usage.ContextBoth
		}
		return u
	}
}

// emitted reports whether the filter admits the named schema. Cycle members
// are always admitted: a deferred reference can reach them from either side
// of the filter, so their declaration must exist in the output.
func (s *Session) emitted(name string) bool {
	if s.Cycles.In(name) {
		return true
	}
	switch s.Config.Filter {
	case FilterRequest:
		u := s.Usage[name]
		return u == usage.ContextRequest || u == usage.ContextBoth || u == usage.ContextNone
	case FilterResponse:
		u := s.Usage[name]
		return u == usage.ContextResponse || u == usage.ContextBoth || u == usage.ContextNone
	default:
		return true
	}
}

// recordDep notes a reference edge from the schema currently being compiled
// to another named schema. Self edges and duplicates are skipped.
func (s *Session) recordDep(from, to string) {
	if from == "" || from == to {
		return
	}
	seen := s.depSeen[from]
	if seen == nil {
		seen = make(map[string]bool)
		s.depSeen[from] = seen
	}
	if seen[to] {
		return
	}
	seen[to] = true
	s.deps[from] = append(s.deps[from], to)
}

func (s *Session) warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// NamedError attributes a compile failure to the named schema it happened
// in.
type NamedError struct {
	Name string
	Err  error
}

func (e *NamedError) Error() string { return "schema " + e.Name + ": " + e.Err.Error() }
func (e *NamedError) Unwrap() error { return e.Err }
