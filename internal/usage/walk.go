// Package usage classifies named schemas by request/response usage and finds
// reference cycles among them.
package usage

import (
	"slices"

	"github.com/reoring/zodgen/internal/resolver"
	"github.com/reoring/zodgen/openapi"
)

// collectRefs walks one schema node and reports every named-schema reference
// reachable without passing through another named schema. Inline sub-schemas
// are descended into; a $ref stops the walk at the edge it names.
func collectRefs(s *openapi.Schema, visit func(name string)) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		if name, ok := resolver.SchemaName(s.Ref); ok {
			visit(name)
		}
	}
	for _, m := range s.AllOf {
		collectRefs(m, visit)
	}
	for _, m := range s.OneOf {
		collectRefs(m, visit)
	}
	for _, m := range s.AnyOf {
		collectRefs(m, visit)
	}
	collectRefs(s.Not, visit)

	collectRefs(s.Items, visit)
	for _, m := range s.PrefixItems {
		collectRefs(m, visit)
	}
	collectRefs(s.Contains, visit)
	if s.UnevaluatedItems != nil {
		collectRefs(s.UnevaluatedItems.Schema, visit)
	}

	for _, name := range s.Properties.Keys() {
		p, _ := s.Properties.Get(name)
		collectRefs(p, visit)
	}
	for _, name := range s.PatternProperties.Keys() {
		p, _ := s.PatternProperties.Get(name)
		collectRefs(p, visit)
	}
	if s.AdditionalProperties != nil {
		collectRefs(s.AdditionalProperties.Schema, visit)
	}
	if s.UnevaluatedProperties != nil {
		collectRefs(s.UnevaluatedProperties.Schema, visit)
	}
	collectRefs(s.PropertyNames, visit)
	for _, name := range sortedKeys(s.Dependencies) {
		d := s.Dependencies[name]
		collectRefs(d.Schema, visit)
	}
	for _, name := range sortedKeys(s.DependentSchemas) {
		collectRefs(s.DependentSchemas[name], visit)
	}

	collectRefs(s.If, visit)
	collectRefs(s.Then, visit)
	collectRefs(s.Else, visit)
}

// Edges builds the directed named-schema reference graph in declaration
// order: for each named schema, the distinct names it references, in the
// order the walk first sees them.
func Edges(doc *openapi.Document) map[string][]string {
	graph := make(map[string][]string)
	for _, name := range doc.SchemaNames() {
		s, _ := doc.SchemaByName(name)
		seen := make(map[string]bool)
		var out []string
		collectRefs(s, func(target string) {
			if seen[target] {
				return
			}
			seen[target] = true
			out = append(out, target)
		})
		graph[name] = out
	}
	return graph
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
