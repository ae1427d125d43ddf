package zodgen

import "github.com/reoring/zodgen/internal/compiler"

// ObjectMode controls how object schemas treat undeclared keys by default.
// additionalProperties:false on a schema always wins over this setting.
type ObjectMode int

const (
	ObjectNormal ObjectMode = iota // undeclared keys stripped
	ObjectStrict                   // undeclared keys rejected
	ObjectLoose                    // undeclared keys passed through
)

// EmptyObjectMode picks the rendering of an object schema with no declared
// properties.
type EmptyObjectMode int

const (
	EmptyObjectLoose EmptyObjectMode = iota
	EmptyObjectStrict
	EmptyObjectRecord
)

// EmissionMode is the default output choice for a named schema: a runtime
// validator with an inferred type alias, or a plain type declaration.
type EmissionMode int

const (
	EmitValidator EmissionMode = iota
	EmitNativeType
)

// EnumRepresentation selects how closed string enumerations are rendered.
type EnumRepresentation int

const (
	EnumClosed   EnumRepresentation = iota // z.enum([...])
	EnumNative                             // TS enum declaration
	EnumLiterals                           // union of literals
)

// SchemaFilter restricts emission to one usage context.
type SchemaFilter int

const (
	SchemasAll SchemaFilter = iota
	SchemasRequest
	SchemasResponse
)

// ContextOptions overrides any base option for request- or response-side
// schemas. Nil fields inherit the base value.
type ContextOptions struct {
	ObjectMode          *ObjectMode
	EmptyObjects        *EmptyObjectMode
	Mode                *EmissionMode
	Enums               *EnumRepresentation
	DefaultNullable     *bool
	IncludeDescriptions *bool
	NamePrefix          *string
	NameSuffix          *string
}

// Options is the generation configuration surface.
type Options struct {
	ObjectMode          ObjectMode
	EmptyObjects        EmptyObjectMode
	Mode                EmissionMode
	Enums               EnumRepresentation
	Filter              SchemaFilter
	DefaultNullable     bool
	IncludeDescriptions bool
	NamePrefix          string
	NameSuffix          string

	Request  *ContextOptions
	Response *ContextOptions

	WithHeader bool
	WithStats  bool

	// MaxDepth bounds chained pointer resolution; zero means the default.
	MaxDepth int
	// PatternCacheSize bounds the per-run compiled-pattern cache; zero means
	// the default.
	PatternCacheSize int
}

// DefaultOptions returns the baseline configuration: normal objects,
// validator-backed emission, closed enums, header on.
func DefaultOptions() Options {
	return Options{WithHeader: true}
}

func (o Options) toConfig() compiler.Config {
	return compiler.Config{
		Openness:            compiler.Openness(o.ObjectMode),
		EmptyObject:         compiler.EmptyObject(o.EmptyObjects),
		Mode:                compiler.Mode(o.Mode),
		EnumStyle:           compiler.EnumStyle(o.Enums),
		Filter:              compiler.Filter(o.Filter),
		DefaultNullable:     o.DefaultNullable,
		IncludeDescriptions: o.IncludeDescriptions,
		NamePrefix:          o.NamePrefix,
		NameSuffix:          o.NameSuffix,
		Request:             o.Request.toContextConfig(),
		Response:            o.Response.toContextConfig(),
		MaxDepth:            o.MaxDepth,
		PatternCacheSize:    o.PatternCacheSize,
	}
}

func (c *ContextOptions) toContextConfig() *compiler.ContextConfig {
	if c == nil {
		return nil
	}
	out := &compiler.ContextConfig{
		DefaultNullable:     c.DefaultNullable,
		IncludeDescriptions: c.IncludeDescriptions,
		NamePrefix:          c.NamePrefix,
		NameSuffix:          c.NameSuffix,
	}
	if c.ObjectMode != nil {
		v := compiler.Openness(*c.ObjectMode)
		out.Openness = &v
	}
	if c.EmptyObjects != nil {
		v := compiler.EmptyObject(*c.EmptyObjects)
		out.EmptyObject = &v
	}
	if c.Mode != nil {
		v := compiler.Mode(*c.Mode)
		out.Mode = &v
	}
	if c.Enums != nil {
		v := compiler.EnumStyle(*c.Enums)
		out.EnumStyle = &v
	}
	return out
}
