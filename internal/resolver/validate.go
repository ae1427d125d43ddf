package resolver

import (
	"slices"
	"strconv"

	"github.com/reoring/zodgen/openapi"
)

// BrokenRef identifies the first structurally reachable pointer that does
// not resolve within the schema namespace: the owning named schema, the
// structural path to the offending keyword, and the pointer text.
type BrokenRef struct {
	Schema  string
	Path    string
	Pointer string
}

// FirstBrokenRef walks every named schema's structure (properties, items,
// prefixItems, composition members and the rest of the keyword set) and
// returns the first unresolvable pointer, or nil when the document is
// referentially sound. Validation is eager: generation must not start on a
// document that fails here.
func FirstBrokenRef(doc *openapi.Document) *BrokenRef {
	for _, name := range doc.SchemaNames() {
		s, _ := doc.SchemaByName(name)
		if br := brokenRefIn(doc, s, name, ""); br != nil {
			return br
		}
	}
	return nil
}

func brokenRefIn(doc *openapi.Document, s *openapi.Schema, owner, path string) *BrokenRef {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		target, ok := SchemaName(s.Ref)
		if !ok {
			return &BrokenRef{Schema: owner, Path: join(path, "$ref"), Pointer: s.Ref}
		}
		if _, found := doc.SchemaByName(target); !found {
			return &BrokenRef{Schema: owner, Path: join(path, "$ref"), Pointer: s.Ref}
		}
	}

	for i, m := range s.AllOf {
		if br := brokenRefIn(doc, m, owner, indexed(path, "allOf", i)); br != nil {
			return br
		}
	}
	for i, m := range s.OneOf {
		if br := brokenRefIn(doc, m, owner, indexed(path, "oneOf", i)); br != nil {
			return br
		}
	}
	for i, m := range s.AnyOf {
		if br := brokenRefIn(doc, m, owner, indexed(path, "anyOf", i)); br != nil {
			return br
		}
	}
	if br := brokenRefIn(doc, s.Not, owner, join(path, "not")); br != nil {
		return br
	}

	if br := brokenRefIn(doc, s.Items, owner, join(path, "items")); br != nil {
		return br
	}
	for i, m := range s.PrefixItems {
		if br := brokenRefIn(doc, m, owner, indexed(path, "prefixItems", i)); br != nil {
			return br
		}
	}
	if br := brokenRefIn(doc, s.Contains, owner, join(path, "contains")); br != nil {
		return br
	}
	if s.UnevaluatedItems != nil {
		if br := brokenRefIn(doc, s.UnevaluatedItems.Schema, owner, join(path, "unevaluatedItems")); br != nil {
			return br
		}
	}

	for _, pname := range s.Properties.Keys() {
		p, _ := s.Properties.Get(pname)
		if br := brokenRefIn(doc, p, owner, join(path, "properties."+pname)); br != nil {
			return br
		}
	}
	for _, pname := range s.PatternProperties.Keys() {
		p, _ := s.PatternProperties.Get(pname)
		if br := brokenRefIn(doc, p, owner, join(path, "patternProperties."+pname)); br != nil {
			return br
		}
	}
	if s.AdditionalProperties != nil {
		if br := brokenRefIn(doc, s.AdditionalProperties.Schema, owner, join(path, "additionalProperties")); br != nil {
			return br
		}
	}
	if s.UnevaluatedProperties != nil {
		if br := brokenRefIn(doc, s.UnevaluatedProperties.Schema, owner, join(path, "unevaluatedProperties")); br != nil {
			return br
		}
	}
	if br := brokenRefIn(doc, s.PropertyNames, owner, join(path, "propertyNames")); br != nil {
		return br
	}

	for _, key := range sortedDepKeys(s) {
		if dep, ok := s.Dependencies[key]; ok && dep.Schema != nil {
			if br := brokenRefIn(doc, dep.Schema, owner, join(path, "dependencies."+key)); br != nil {
				return br
			}
		}
		if ds, ok := s.DependentSchemas[key]; ok {
			if br := brokenRefIn(doc, ds, owner, join(path, "dependentSchemas."+key)); br != nil {
				return br
			}
		}
	}

	if br := brokenRefIn(doc, s.If, owner, join(path, "if")); br != nil {
		return br
	}
	if br := brokenRefIn(doc, s.Then, owner, join(path, "then")); br != nil {
		return br
	}
	if br := brokenRefIn(doc, s.Else, owner, join(path, "else")); br != nil {
		return br
	}
	return nil
}

func sortedDepKeys(s *openapi.Schema) []string {
	if len(s.Dependencies) == 0 && len(s.DependentSchemas) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var keys []string
	for k := range s.Dependencies {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range s.DependentSchemas {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}

func indexed(path, seg string, i int) string {
	return join(path, seg) + "[" + strconv.Itoa(i) + "]"
}
