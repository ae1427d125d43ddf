// Package compiler translates named schemas into Zod validator expressions
// and TypeScript type text, tracking dependencies as it goes.
package compiler

// Openness controls how object schemas treat undeclared keys by default.
// additionalProperties:false on a schema always forces the strict form
// regardless of this setting.
type Openness int

const (
	OpennessNormal Openness = iota // undeclared keys stripped (zod default)
	OpennessStrict                 // .strict()
	OpennessLoose                  // .passthrough()
)

// EmptyObject picks the rendering of a bare object schema with no declared
// properties.
type EmptyObject int

const (
	EmptyObjectLoose  EmptyObject = iota // z.object({}).passthrough()
	EmptyObjectStrict                    // z.object({}).strict()
	EmptyObjectRecord                    // z.record(z.unknown())
)

// Mode is the emission mode of one named schema.
type Mode int

const (
	ModeValidator Mode = iota // zod const + inferred type alias
	ModeNativeType            // plain TypeScript type declaration
)

// EnumStyle selects the representation of closed string enumerations.
type EnumStyle int

const (
	EnumClosed   EnumStyle = iota // z.enum([...])
	EnumNative                    // TS enum declaration + z.nativeEnum(...)
	EnumLiterals                  // union of z.literal(...)
)

// Filter restricts which usage contexts are emitted.
type Filter int

const (
	FilterAll Filter = iota
	FilterRequest
	FilterResponse
)

// ContextConfig is the per-usage-context override set. Nil pointer fields
// fall back to the base configuration.
type ContextConfig struct {
	Openness            *Openness
	EmptyObject         *EmptyObject
	Mode                *Mode
	EnumStyle           *EnumStyle
	DefaultNullable     *bool
	IncludeDescriptions *bool
	NamePrefix          *string
	NameSuffix          *string
}

// Config is the compiler-facing configuration surface.
type Config struct {
	Openness            Openness
	EmptyObject         EmptyObject
	Mode                Mode
	EnumStyle           EnumStyle
	Filter              Filter
	DefaultNullable     bool
	IncludeDescriptions bool
	NamePrefix          string
	NameSuffix          string
	Request             *ContextConfig
	Response            *ContextConfig
	MaxDepth            int
	PatternCacheSize    int
}

// effective resolves the configuration for a request- or response-side
// schema, applying the matching override set.
func (c Config) effective(cc *ContextConfig) Config {
	if cc == nil {
		return c
	}
	out := c
	if cc.Openness != nil {
		out.Openness = *cc.Openness
	}
	if cc.EmptyObject != nil {
		out.EmptyObject = *cc.EmptyObject
	}
	if cc.Mode != nil {
		out.Mode = *cc.Mode
	}
	if cc.EnumStyle != nil {
		out.EnumStyle = *cc.EnumStyle
	}
	if cc.DefaultNullable != nil {
		out.DefaultNullable = *cc.DefaultNullable
	}
	if cc.IncludeDescriptions != nil {
		out.IncludeDescriptions = *cc.IncludeDescriptions
	}
	if cc.NamePrefix != nil {
		out.NamePrefix = *cc.NamePrefix
	}
	if cc.NameSuffix != nil {
		out.NameSuffix = *cc.NameSuffix
	}
	return out
}
