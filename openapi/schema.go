package openapi

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Schema is one schema definition or inline sub-schema. It carries the closed
// keyword set the generator understands; unknown keywords are dropped at
// decode time. Nodes are parsed once from the input document and treated as
// immutable afterwards.
type Schema struct {
	Ref string `json:"$ref,omitempty"`

	Type     TypeSet `json:"type,omitempty"`
	Nullable bool    `json:"nullable,omitempty"`
	Format   string  `json:"format,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Enum  []any           `json:"enum,omitempty"`
	Const json.RawMessage `json:"const,omitempty"`

	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	Discriminator *Discriminator `json:"discriminator,omitempty"`

	// string keywords
	MinLength        *int   `json:"minLength,omitempty"`
	MaxLength        *int   `json:"maxLength,omitempty"`
	Pattern          string `json:"pattern,omitempty"`
	ContentEncoding  string `json:"contentEncoding,omitempty"`
	ContentMediaType string `json:"contentMediaType,omitempty"`

	// numeric keywords
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *Bound   `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *Bound   `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	// array keywords
	Items            *Schema       `json:"items,omitempty"`
	PrefixItems      []*Schema     `json:"prefixItems,omitempty"`
	UnevaluatedItems *BoolOrSchema `json:"unevaluatedItems,omitempty"`
	MinItems         *int          `json:"minItems,omitempty"`
	MaxItems         *int          `json:"maxItems,omitempty"`
	UniqueItems      bool          `json:"uniqueItems,omitempty"`
	Contains         *Schema       `json:"contains,omitempty"`
	MinContains      *int          `json:"minContains,omitempty"`
	MaxContains      *int          `json:"maxContains,omitempty"`

	// object keywords
	Properties            *SchemaMap            `json:"properties,omitempty"`
	Required              []string              `json:"required,omitempty"`
	AdditionalProperties  *BoolOrSchema         `json:"additionalProperties,omitempty"`
	PatternProperties     *SchemaMap            `json:"patternProperties,omitempty"`
	PropertyNames         *Schema               `json:"propertyNames,omitempty"`
	UnevaluatedProperties *BoolOrSchema         `json:"unevaluatedProperties,omitempty"`
	MinProperties         *int                  `json:"minProperties,omitempty"`
	MaxProperties         *int                  `json:"maxProperties,omitempty"`
	Dependencies          map[string]Dependency `json:"dependencies,omitempty"`
	DependentRequired     map[string][]string   `json:"dependentRequired,omitempty"`
	DependentSchemas      map[string]*Schema    `json:"dependentSchemas,omitempty"`

	// conditionals
	If   *Schema `json:"if,omitempty"`
	Then *Schema `json:"then,omitempty"`
	Else *Schema `json:"else,omitempty"`

	ReadOnly   bool `json:"readOnly,omitempty"`
	WriteOnly  bool `json:"writeOnly,omitempty"`
	Deprecated bool `json:"deprecated,omitempty"`

	Default json.RawMessage `json:"default,omitempty"`
}

// Discriminator selects a union branch by inspecting one designated property.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// TypeSet holds the type keyword, which may be a single string or an array of
// strings in 2020-12 documents.
type TypeSet []string

func (t *TypeSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '[' {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return fmt.Errorf("openapi: type array: %w", err)
		}
		*t = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("openapi: type: %w", err)
	}
	*t = TypeSet{s}
	return nil
}

func (t TypeSet) MarshalJSON() ([]byte, error) {
	switch len(t) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(t[0])
	default:
		return json.Marshal([]string(t))
	}
}

// Single returns the sole type name, or "" when the set is empty or plural.
func (t TypeSet) Single() string {
	if len(t) == 1 {
		return t[0]
	}
	return ""
}

// Contains reports whether name is a member of the set.
func (t TypeSet) Contains(name string) bool {
	for _, v := range t {
		if v == name {
			return true
		}
	}
	return false
}

// Bound is an exclusive bound in either of the two styles found in the wild:
// the draft-4 boolean flag (exclusiveMinimum: true, paired with minimum) or
// the 2020-12 standalone numeric value.
type Bound struct {
	IsFlag bool
	Flag   bool
	Value  float64
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == 't' || data[0] == 'f' {
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("openapi: exclusive bound: %w", err)
		}
		b.IsFlag = true
		b.Flag = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("openapi: exclusive bound: %w", err)
	}
	b.Value = v
	return nil
}

func (b Bound) MarshalJSON() ([]byte, error) {
	if b.IsFlag {
		return json.Marshal(b.Flag)
	}
	return json.Marshal(b.Value)
}

// BoolOrSchema holds keywords that accept either a boolean or a sub-schema
// (additionalProperties, unevaluatedProperties, unevaluatedItems).
type BoolOrSchema struct {
	IsBool bool
	Bool   bool
	Schema *Schema
}

func (b *BoolOrSchema) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == 't' || data[0] == 'f' {
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("openapi: bool-or-schema: %w", err)
		}
		b.IsBool = true
		b.Bool = v
		return nil
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("openapi: bool-or-schema: %w", err)
	}
	b.Schema = &s
	return nil
}

func (b BoolOrSchema) MarshalJSON() ([]byte, error) {
	if b.IsBool {
		return json.Marshal(b.Bool)
	}
	return json.Marshal(b.Schema)
}

// Dependency is the legacy dependencies keyword entry: either a list of
// property names required when the key is present, or a schema the whole
// object must also satisfy.
type Dependency struct {
	Required []string
	Schema   *Schema
}

func (d *Dependency) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, &d.Required)
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("openapi: dependency: %w", err)
	}
	d.Schema = &s
	return nil
}

func (d Dependency) MarshalJSON() ([]byte, error) {
	if d.Schema != nil {
		return json.Marshal(d.Schema)
	}
	return json.Marshal(d.Required)
}
