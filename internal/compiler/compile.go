package compiler

import (
	"fmt"

	"github.com/reoring/zodgen/internal/resolver"
	"github.com/reoring/zodgen/internal/usage"
	"github.com/reoring/zodgen/openapi"
)

// compileCtx is the per-call compilation context: the named schema whose
// body is being compiled, the usage context properties are filtered under,
// and the effective configuration for that schema.
type compileCtx struct {
	root  string
	usage usage.Context
	cfg   Config
}

// compileFn is the capability the composition and conditional helpers take
// instead of calling back into a package singleton.
type compileFn func(node *openapi.Schema, ctx compileCtx) (string, error)

// Run executes both compiler passes: enum surfacing, then full compilation
// of every admitted named schema into a fragment.
func (s *Session) Run() error {
	s.surfaceEnums()
	for _, name := range s.Order {
		if !s.emitted(name) {
			continue
		}
		if err := s.compileNamed(name); err != nil {
			return err
		}
	}
	return nil
}

// compileNamed builds the fragment for one named schema.
func (s *Session) compileNamed(name string) error {
	node, _ := s.Doc.SchemaByName(name)
	cfg := s.configFor(name)
	ctx := compileCtx{root: name, usage: s.propertyContext(name), cfg: cfg}

	frag := &Fragment{
		Name:        name,
		TypeName:    s.TypeNames[name],
		Ident:       s.Idents[name],
		Mode:        s.Modes[name],
		Description: node.Description,
	}

	// a schema that is nothing but a pointer becomes an alias fragment; the
	// edge to its target is the trivial aliasing the tracker skips
	if target, ok := s.aliasTarget(node); ok {
		frag.IsAlias = true
		frag.AliasOf = target
		frag.Validator = s.Idents[target]
		frag.TypeText = s.TypeNames[target]
		s.Fragments[name] = frag
		return nil
	}

	if frag.Mode == ModeValidator {
		expr, err := s.compile(node, ctx)
		if err != nil {
			return &NamedError{Name: name, Err: err}
		}
		frag.Validator = expr
		if _, ok := s.enumNames[node]; ok {
			// the surfaced enum declaration already names the type
			frag.SkipInfer = true
		}
	} else {
		text, err := s.compileType(node, ctx)
		if err != nil {
			return &NamedError{Name: name, Err: err}
		}
		frag.TypeText = text
	}
	frag.Deps = s.deps[name]
	s.Fragments[name] = frag
	return nil
}

// aliasTarget reports the final schema name a pure-reference node points at.
func (s *Session) aliasTarget(node *openapi.Schema) (string, bool) {
	if !isPureRefSchema(node) {
		return "", false
	}
	_, target, ok := resolver.ResolveSchema(s.Doc, node.Ref, s.Config.MaxDepth)
	if !ok {
		return "", false
	}
	return target, true
}

func isPureRefSchema(node *openapi.Schema) bool {
	return node.Ref != "" &&
		len(node.Type) == 0 && len(node.AllOf) == 0 && len(node.OneOf) == 0 &&
		len(node.AnyOf) == 0 && node.Not == nil && node.Properties.Len() == 0 &&
		node.Items == nil && len(node.Enum) == 0 && node.Const == nil
}

// compile produces the Zod expression for a node. The nullable wrap is
// applied outermost; an explicit nullable signal (legacy flag or null in a
// type array) always wins over the configured default-nullable policy.
func (s *Session) compile(node *openapi.Schema, ctx compileCtx) (string, error) {
	if node == nil {
		return "z.unknown()", nil
	}
	expr, err := s.compileBare(node, ctx)
	if err != nil {
		return "", err
	}
	if s.isNullable(node, ctx) && expr != "z.null()" {
		expr += ".nullable()"
	}
	return expr, nil
}

// isNullable applies the nullable-precedence law.
func (s *Session) isNullable(node *openapi.Schema, ctx compileCtx) bool {
	if len(node.Type) > 1 {
		// a type array states the admitted types exhaustively; its word is
		// explicit either way
		return node.Type.Contains("null")
	}
	if node.Nullable {
		return true
	}
	if node.Type.Single() == "null" {
		return false
	}
	return ctx.cfg.DefaultNullable
}

// compileBare dispatches on the classified node kind, without the nullable
// wrap.
func (s *Session) compileBare(node *openapi.Schema, ctx compileCtx) (string, error) {
	switch Classify(node) {
	case KindMultiType:
		return s.compileMultiType(node, ctx)
	case KindRef:
		return s.compileRef(node, ctx)
	case KindConst:
		return "z.literal(" + renderRawLiteral(node.Const) + ")", nil
	case KindEnum:
		return s.compileEnum(node, ctx)
	case KindSingleAllOf:
		// single-member composition passes through, not wrapped
		if node.AllOf[0] != nil && node.AllOf[0].Ref != "" {
			if target, ok := resolver.SchemaName(node.AllOf[0].Ref); ok && target == ctx.root {
				// the narrow alias-cycle shape: degrade to a deferred
				// self-reference instead of recursing forever
				return "z.lazy(() => " + s.Idents[ctx.root] + ")", nil
			}
		}
		return s.compile(node.AllOf[0], ctx)
	case KindAllOf:
		return s.compileAllOf(node, ctx, s.compile)
	case KindUnion:
		return s.compileUnion(node, ctx, s.compile)
	case KindNot:
		return s.compileNot(node, ctx, s.compile)
	default:
		return s.compilePrimitive(node, ctx)
	}
}

// compileMultiType compiles a type array: null is stripped into the nullable
// flag by the caller; the remaining types compile as a union. A const or
// enum constrains the value more tightly than the type list and wins
// outright, compiled once rather than per narrowed type.
func (s *Session) compileMultiType(node *openapi.Schema, ctx compileCtx) (string, error) {
	if node.Const != nil {
		return "z.literal(" + renderRawLiteral(node.Const) + ")", nil
	}
	if len(node.Enum) > 0 {
		return s.compileEnum(node, ctx)
	}
	var exprs []string
	for _, t := range node.Type {
		if t == "null" {
			continue
		}
		narrowed := *node
		narrowed.Type = openapi.TypeSet{t}
		expr, err := s.compilePrimitive(&narrowed, ctx)
		if err != nil {
			return "", err
		}
		exprs = append(exprs, expr)
	}
	switch len(exprs) {
	case 0:
		return "z.null()", nil
	case 1:
		return exprs[0], nil
	default:
		return "z.union([" + joinExprs(exprs) + "])", nil
	}
}

// compileRef resolves a reference, records the dependency edge and emits an
// identifier reference; references into a cycle defer through z.lazy.
func (s *Session) compileRef(node *openapi.Schema, ctx compileCtx) (string, error) {
	target, ok := resolver.SchemaName(node.Ref)
	if !ok {
		node2, resolved := resolver.Resolve(s.Doc, node.Ref, s.Config.MaxDepth)
		if !resolved {
			s.warnf("unresolved pointer %q left as unknown", node.Ref)
			return "z.unknown()", nil
		}
		if sch, isSchema := node2.(*openapi.Schema); isSchema {
			return s.compile(sch, ctx)
		}
		s.warnf("pointer %q does not name a schema; left as unknown", node.Ref)
		return "z.unknown()", nil
	}
	if _, found := s.Doc.SchemaByName(target); !found {
		return "", fmt.Errorf("unresolvable reference %q", node.Ref)
	}
	s.recordDep(ctx.root, target)

	ident := s.Idents[target]
	if target == ctx.root || s.Cycles.In(target) {
		return "z.lazy(() => " + ident + ")", nil
	}
	if s.Modes[target] == ModeNativeType || !s.emitted(target) {
		// no runtime validator will exist for the target; inline its body
		targetNode, _ := s.Doc.SchemaByName(target)
		return s.compile(targetNode, ctx)
	}
	return ident, nil
}

// compileEnum emits the representation the effective style picks. Values
// outside a closed string set force the union-of-literals form.
func (s *Session) compileEnum(node *openapi.Schema, ctx compileCtx) (string, error) {
	allStrings := true
	for _, v := range node.Enum {
		if _, ok := v.(string); !ok {
			allStrings = false
			break
		}
	}
	style := ctx.cfg.EnumStyle
	if !allStrings {
		style = EnumLiterals
	}
	switch style {
	case EnumNative:
		if name, ok := s.enumNames[node]; ok {
			return "z.nativeEnum(" + name + ")", nil
		}
		fallthrough
	case EnumClosed:
		if allStrings {
			vals := make([]string, len(node.Enum))
			for i, v := range node.Enum {
				vals[i] = renderLiteral(v)
			}
			return "z.enum([" + joinExprs(vals) + "])", nil
		}
		fallthrough
	default:
		if len(node.Enum) == 1 {
			return "z.literal(" + renderLiteral(node.Enum[0]) + ")", nil
		}
		lits := make([]string, len(node.Enum))
		for i, v := range node.Enum {
			lits[i] = "z.literal(" + renderLiteral(v) + ")"
		}
		return "z.union([" + joinExprs(lits) + "])", nil
	}
}

// compilePrimitive is the type switch at the bottom of the grammar. A
// missing or unknown type maps to the top type.
func (s *Session) compilePrimitive(node *openapi.Schema, ctx compileCtx) (string, error) {
	switch node.Type.Single() {
	case "string":
		return s.compileString(node), nil
	case "number":
		return s.compileNumber(node, false), nil
	case "integer":
		return s.compileNumber(node, true), nil
	case "boolean":
		return "z.boolean()", nil
	case "null":
		return "z.null()", nil
	case "array":
		return s.compileArray(node, ctx)
	case "object":
		return s.compileObject(node, ctx, s.compile)
	case "":
		if node.Properties.Len() > 0 || node.AdditionalProperties != nil || node.PatternProperties.Len() > 0 {
			// untyped but object-flavored
			return s.compileObject(node, ctx, s.compile)
		}
		return "z.unknown()", nil
	default:
		s.warnf("unknown type %q treated as unknown", node.Type.Single())
		return "z.unknown()", nil
	}
}

func joinExprs(exprs []string) string {
	out := ""
	for i, e := range exprs {
		if i > 0 {
			out += ", "
		}
		out += e
	}
	return out
}
