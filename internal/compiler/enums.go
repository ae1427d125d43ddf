package compiler

import (
	"github.com/reoring/zodgen/internal/naming"
	"github.com/reoring/zodgen/openapi"
)

// surfaceEnums is the first compiler pass: it walks the named schemas and
// registers a TypeScript enum declaration for every string-valued closed
// enumeration that the effective style renders as a native enum. The main
// pass then references the declaration instead of inlining literals.
func (s *Session) surfaceEnums() {
	for _, name := range s.Order {
		if !s.emitted(name) {
			continue
		}
		if s.configFor(name).EnumStyle != EnumNative {
			continue
		}
		node, _ := s.Doc.SchemaByName(name)
		// the schema's own enum reuses its already-claimed type name
		if isStringEnum(node) {
			s.registerEnum(node, s.TypeNames[name], name)
		}
		s.surfaceNested(node, s.TypeNames[name], name)
	}
}

// surfaceNested walks inline structure (not through $ref; referenced schemas
// surface under their own names) deriving declaration names from the path.
func (s *Session) surfaceNested(node *openapi.Schema, base, owner string) {
	if node == nil {
		return
	}
	for _, pname := range node.Properties.Keys() {
		p, _ := node.Properties.Get(pname)
		if p == nil || p.Ref != "" {
			continue
		}
		childBase := base + naming.TypeName(pname)
		if isStringEnum(p) {
			s.registerEnum(p, s.typeRegistry.Claim(childBase), owner)
			continue
		}
		s.surfaceNested(p, childBase, owner)
	}
	if it := node.Items; it != nil && it.Ref == "" {
		childBase := base + "Item"
		if isStringEnum(it) {
			s.registerEnum(it, s.typeRegistry.Claim(childBase), owner)
		} else {
			s.surfaceNested(it, childBase, owner)
		}
	}
	for _, m := range node.AllOf {
		if m != nil && m.Ref == "" {
			s.surfaceNested(m, base, owner)
		}
	}
}

func isStringEnum(node *openapi.Schema) bool {
	if node == nil || len(node.Enum) == 0 {
		return false
	}
	for _, v := range node.Enum {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}

func (s *Session) registerEnum(node *openapi.Schema, name, owner string) {
	if _, done := s.enumNames[node]; done {
		return
	}
	keys := naming.NewRegistry()
	decl := EnumDecl{Name: name, Doc: node.Description, RawName: owner}
	for i, v := range node.Enum {
		decl.Keys = append(decl.Keys, keys.Claim(naming.EnumKey(v, i)))
		decl.Values = append(decl.Values, renderLiteral(v))
	}
	s.enumNames[node] = name
	s.Enums = append(s.Enums, decl)
}
