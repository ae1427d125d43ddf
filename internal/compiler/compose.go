package compiler

import (
	"slices"
	"strings"

	"github.com/reoring/zodgen/internal/resolver"
	"github.com/reoring/zodgen/openapi"
)

// compileAllOf combines a multi-member allOf. When every member is
// object-shaped the members chain through sequential merges; otherwise a
// generic intersection chain is used.
func (s *Session) compileAllOf(node *openapi.Schema, ctx compileCtx, compile compileFn) (string, error) {
	parts := make([]string, len(node.AllOf))
	mergeable := true
	for i, m := range node.AllOf {
		compiled, err := compile(m, ctx)
		if err != nil {
			return "", err
		}
		parts[i] = compiled
		if !isObjectShaped(m) {
			mergeable = false
		}
	}

	expr := parts[0]
	for _, p := range parts[1:] {
		if mergeable {
			expr += ".merge(" + p + ")"
		} else {
			expr += ".and(" + p + ")"
		}
	}
	suffix, err := unevaluatedSuffix(s, node, ctx)
	if err != nil {
		return "", err
	}
	return expr + suffix, nil
}

// unevaluatedSuffix renders the unevaluatedProperties refinement on a
// composition result when the node asks for one.
func unevaluatedSuffix(s *Session, node *openapi.Schema, ctx compileCtx) (string, error) {
	up := node.UnevaluatedProperties
	if up == nil {
		return "", nil
	}
	if up.Schema != nil {
		compiled, err := s.compile(up.Schema, ctx)
		if err != nil {
			return "", err
		}
		return ".catchall(" + compiled + ")", nil
	}
	if up.Bool {
		return ".passthrough()", nil
	}
	return ".strict()", nil
}

// compileUnion emits a tagged union when a discriminator names the branch
// property, optionally resolving branches through the value-to-schema
// mapping table; otherwise a plain union.
func (s *Session) compileUnion(node *openapi.Schema, ctx compileCtx, compile compileFn) (string, error) {
	members := unionMembers(node)
	permissive := node.UnevaluatedProperties != nil && node.UnevaluatedProperties.IsBool && node.UnevaluatedProperties.Bool

	if d := node.Discriminator; d != nil && d.PropertyName != "" {
		branches, ok, err := s.discriminatedBranches(node, ctx, compile)
		if err != nil {
			return "", err
		}
		if ok {
			if permissive {
				for i := range branches {
					branches[i] += ".passthrough()"
				}
			}
			prop := renderLiteral(d.PropertyName)
			return "z.discriminatedUnion(" + prop + ", [" + joinExprs(branches) + "])", nil
		}
	}

	parts := make([]string, len(members))
	for i, m := range members {
		compiled, err := compile(m, ctx)
		if err != nil {
			return "", err
		}
		if permissive {
			compiled += ".passthrough()"
		}
		parts[i] = compiled
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "z.union([" + joinExprs(parts) + "])", nil
}

// discriminatedBranches resolves the union branches. An explicit mapping
// table reorders and resolves them by discriminator value; without one the
// declared member order is kept. Branches that defer through z.lazy cannot
// join a discriminated union, so ok=false falls back to a plain union.
func (s *Session) discriminatedBranches(node *openapi.Schema, ctx compileCtx, compile compileFn) ([]string, bool, error) {
	d := node.Discriminator
	var branches []string
	if len(d.Mapping) > 0 {
		values := make([]string, 0, len(d.Mapping))
		for v := range d.Mapping {
			values = append(values, v)
		}
		slices.Sort(values)
		for _, v := range values {
			pointer := d.Mapping[v]
			if name, isName := resolver.SchemaName(pointer); isName {
				ref := &openapi.Schema{Ref: resolvedPointer(name)}
				compiled, err := compile(ref, ctx)
				if err != nil {
					return nil, false, err
				}
				branches = append(branches, compiled)
				continue
			}
			// bare schema name shorthand
			if _, found := s.Doc.SchemaByName(pointer); found {
				ref := &openapi.Schema{Ref: resolvedPointer(pointer)}
				compiled, err := compile(ref, ctx)
				if err != nil {
					return nil, false, err
				}
				branches = append(branches, compiled)
				continue
			}
			s.warnf("discriminator mapping %q -> %q does not resolve; falling back to plain union", v, pointer)
			return nil, false, nil
		}
	} else {
		for _, m := range unionMembers(node) {
			compiled, err := compile(m, ctx)
			if err != nil {
				return nil, false, err
			}
			branches = append(branches, compiled)
		}
	}
	for _, b := range branches {
		if strings.HasPrefix(b, "z.lazy") {
			return nil, false, nil
		}
	}
	return branches, true, nil
}

func resolvedPointer(name string) string {
	return "#/components/schemas/" + name
}

// compileNot compiles the structural base (the node minus its negation, or
// unknown when nothing else is asserted) and appends a refinement rejecting
// values the negated sub-schema accepts.
func (s *Session) compileNot(node *openapi.Schema, ctx compileCtx, compile compileFn) (string, error) {
	negated, err := compile(node.Not, ctx)
	if err != nil {
		return "", err
	}

	base := "z.unknown()"
	stripped := *node
	stripped.Not = nil
	if hasStructure(&stripped) {
		base, err = compile(&stripped, ctx)
		if err != nil {
			return "", err
		}
	}
	return base + ".refine((value) => !" + negated +
		`.safeParse(value).success, { message: "value matches forbidden schema" })`, nil
}

// hasStructure reports whether any structural keyword besides the negation
// is present.
func hasStructure(s *openapi.Schema) bool {
	return len(s.Type) > 0 || s.Ref != "" || len(s.Enum) > 0 || s.Const != nil ||
		len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 ||
		s.Properties.Len() > 0 || s.Items != nil || len(s.PrefixItems) > 0
}
