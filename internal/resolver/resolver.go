// Package resolver turns component pointers into the nodes they name.
package resolver

import (
	"strings"

	"github.com/reoring/zodgen/openapi"
)

// DefaultMaxDepth bounds how many chained $ref hops Resolve follows.
const DefaultMaxDepth = 10

const (
	schemaPrefix      = "#/components/schemas/"
	parameterPrefix   = "#/components/parameters/"
	requestBodyPrefix = "#/components/requestBodies/"
	responsePrefix    = "#/components/responses/"
)

// SchemaName extracts the component name from a schema pointer. The second
// result is false for pointers outside the schema namespace.
func SchemaName(pointer string) (string, bool) {
	if !strings.HasPrefix(pointer, schemaPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(pointer, schemaPrefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// Resolve follows a component pointer to the node it names, chasing chained
// pointers up to maxDepth hops. Unrecognized pointer categories and exhausted
// depth are degraded outcomes, not errors: the original pointer is handed
// back with ok=false so the caller can decide how loudly to complain.
func Resolve(doc *openapi.Document, pointer string, maxDepth int) (node any, ok bool) {
	if maxDepth <= 0 || doc == nil || doc.Components == nil {
		return pointer, false
	}
	switch {
	case strings.HasPrefix(pointer, schemaPrefix):
		name := strings.TrimPrefix(pointer, schemaPrefix)
		s, found := doc.Components.Schemas.Get(name)
		if !found {
			return pointer, false
		}
		if s.Ref != "" && isPureRef(s) {
			return Resolve(doc, s.Ref, maxDepth-1)
		}
		return s, true
	case strings.HasPrefix(pointer, parameterPrefix):
		name := strings.TrimPrefix(pointer, parameterPrefix)
		p, found := doc.Components.Parameters[name]
		if !found {
			return pointer, false
		}
		if p.Ref != "" {
			return Resolve(doc, p.Ref, maxDepth-1)
		}
		return p, true
	case strings.HasPrefix(pointer, requestBodyPrefix):
		name := strings.TrimPrefix(pointer, requestBodyPrefix)
		rb, found := doc.Components.RequestBodies[name]
		if !found {
			return pointer, false
		}
		if rb.Ref != "" {
			return Resolve(doc, rb.Ref, maxDepth-1)
		}
		return rb, true
	case strings.HasPrefix(pointer, responsePrefix):
		name := strings.TrimPrefix(pointer, responsePrefix)
		r, found := doc.Components.Responses[name]
		if !found {
			return pointer, false
		}
		if r.Ref != "" {
			return Resolve(doc, r.Ref, maxDepth-1)
		}
		return r, true
	default:
		return pointer, false
	}
}

// ResolveSchema resolves a pointer expected to land in the schema namespace.
// The returned name is the final component name after chained hops.
func ResolveSchema(doc *openapi.Document, pointer string, maxDepth int) (*openapi.Schema, string, bool) {
	name, isSchema := SchemaName(pointer)
	if !isSchema {
		return nil, "", false
	}
	for hop := 0; hop < maxDepth; hop++ {
		s, found := doc.SchemaByName(name)
		if !found {
			return nil, "", false
		}
		if s.Ref != "" && isPureRef(s) {
			next, ok := SchemaName(s.Ref)
			if !ok {
				return nil, "", false
			}
			name = next
			continue
		}
		return s, name, true
	}
	return nil, "", false
}

// isPureRef reports whether the schema is nothing but a pointer. A $ref with
// sibling keywords still resolves to itself so the siblings are not lost.
func isPureRef(s *openapi.Schema) bool {
	return s.Ref != "" &&
		len(s.Type) == 0 && len(s.AllOf) == 0 && len(s.OneOf) == 0 && len(s.AnyOf) == 0 &&
		s.Not == nil && s.Properties.Len() == 0 && s.Items == nil &&
		len(s.Enum) == 0 && s.Const == nil
}

// MergeParameters combines path-level and operation-level parameter lists.
// Operation-level entries override path-level ones with the same (name, in)
// pair; unmatched path-level entries are kept, path-level first.
func MergeParameters(pathLevel, opLevel []*openapi.Parameter) []*openapi.Parameter {
	type key struct{ name, in string }
	overridden := make(map[key]bool, len(opLevel))
	for _, p := range opLevel {
		if p != nil {
			overridden[key{p.Name, p.In}] = true
		}
	}
	merged := make([]*openapi.Parameter, 0, len(pathLevel)+len(opLevel))
	for _, p := range pathLevel {
		if p == nil {
			continue
		}
		if overridden[key{p.Name, p.In}] {
			continue
		}
		merged = append(merged, p)
	}
	for _, p := range opLevel {
		if p != nil {
			merged = append(merged, p)
		}
	}
	return merged
}
