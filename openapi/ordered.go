package openapi

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// SchemaMap is a name -> Schema map that remembers declaration order.
// Generated output must be byte-identical across runs, so every place the
// document exposes a JSON object of schemas decodes into one of these
// instead of a Go map.
type SchemaMap struct {
	keys []string
	m    map[string]*Schema
}

// NewSchemaMap builds an empty ordered map.
func NewSchemaMap() *SchemaMap {
	return &SchemaMap{m: make(map[string]*Schema)}
}

// Len returns the number of entries.
func (sm *SchemaMap) Len() int {
	if sm == nil {
		return 0
	}
	return len(sm.keys)
}

// Keys returns the names in declaration order. The slice is shared; callers
// must not mutate it.
func (sm *SchemaMap) Keys() []string {
	if sm == nil {
		return nil
	}
	return sm.keys
}

// Get looks a schema up by name.
func (sm *SchemaMap) Get(name string) (*Schema, bool) {
	if sm == nil {
		return nil, false
	}
	s, ok := sm.m[name]
	return s, ok
}

// Set inserts or replaces an entry, appending new names at the end.
func (sm *SchemaMap) Set(name string, s *Schema) {
	if sm.m == nil {
		sm.m = make(map[string]*Schema)
	}
	if _, exists := sm.m[name]; !exists {
		sm.keys = append(sm.keys, name)
	}
	sm.m[name] = s
}

func (sm *SchemaMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("openapi: schema map: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("openapi: schema map: expected object, got %v", tok)
	}
	sm.keys = nil
	sm.m = make(map[string]*Schema)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return fmt.Errorf("openapi: schema map key: %w", err)
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("openapi: schema map key: got %v", kt)
		}
		var s Schema
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("openapi: schema %q: %w", key, err)
		}
		sm.Set(key, &s)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("openapi: schema map close: %w", err)
	}
	return nil
}

func (sm *SchemaMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range sm.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(sm.m[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
