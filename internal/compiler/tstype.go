package compiler

import (
	"github.com/reoring/zodgen/internal/resolver"
	"github.com/reoring/zodgen/internal/usage"
	"github.com/reoring/zodgen/openapi"
)

// compileType renders the plain TypeScript type text for a node. Runtime
// constraints (bounds, patterns, refinements) have no type-level counterpart
// and are dropped; structure, unions and nullability survive.
func (s *Session) compileType(node *openapi.Schema, ctx compileCtx) (string, error) {
	if node == nil {
		return "unknown", nil
	}
	text, err := s.compileTypeBare(node, ctx)
	if err != nil {
		return "", err
	}
	if s.isNullable(node, ctx) && text != "null" {
		text += " | null"
	}
	return text, nil
}

func (s *Session) compileTypeBare(node *openapi.Schema, ctx compileCtx) (string, error) {
	switch Classify(node) {
	case KindMultiType:
		var parts []string
		for _, t := range node.Type {
			if t == "null" {
				continue
			}
			narrowed := *node
			narrowed.Type = openapi.TypeSet{t}
			text, err := s.compileTypePrimitive(&narrowed, ctx)
			if err != nil {
				return "", err
			}
			parts = append(parts, text)
		}
		if len(parts) == 0 {
			return "null", nil
		}
		return joinWith(parts, " | "), nil
	case KindRef:
		target, ok := resolver.SchemaName(node.Ref)
		if !ok {
			s.warnf("unresolved pointer %q left as unknown", node.Ref)
			return "unknown", nil
		}
		s.recordDep(ctx.root, target)
		return s.TypeNames[target], nil
	case KindConst:
		return renderRawLiteral(node.Const), nil
	case KindEnum:
		if name, ok := s.enumNames[node]; ok {
			return name, nil
		}
		lits := make([]string, len(node.Enum))
		for i, v := range node.Enum {
			lits[i] = renderLiteral(v)
		}
		return joinWith(lits, " | "), nil
	case KindSingleAllOf:
		if node.AllOf[0] != nil && node.AllOf[0].Ref != "" {
			if target, ok := resolver.SchemaName(node.AllOf[0].Ref); ok && target == ctx.root {
				// recursive type aliases are legal in TypeScript
				return s.TypeNames[ctx.root], nil
			}
		}
		return s.compileType(node.AllOf[0], ctx)
	case KindAllOf:
		parts := make([]string, len(node.AllOf))
		for i, m := range node.AllOf {
			text, err := s.compileType(m, ctx)
			if err != nil {
				return "", err
			}
			parts[i] = "(" + text + ")"
		}
		return joinWith(parts, " & "), nil
	case KindUnion:
		members := unionMembers(node)
		parts := make([]string, len(members))
		for i, m := range members {
			text, err := s.compileType(m, ctx)
			if err != nil {
				return "", err
			}
			parts[i] = text
		}
		return joinWith(parts, " | "), nil
	case KindNot:
		stripped := *node
		stripped.Not = nil
		if hasStructure(&stripped) {
			return s.compileType(&stripped, ctx)
		}
		return "unknown", nil
	default:
		return s.compileTypePrimitive(node, ctx)
	}
}

func (s *Session) compileTypePrimitive(node *openapi.Schema, ctx compileCtx) (string, error) {
	switch node.Type.Single() {
	case "string":
		return "string", nil
	case "number", "integer":
		return "number", nil
	case "boolean":
		return "boolean", nil
	case "null":
		return "null", nil
	case "array":
		return s.compileTypeArray(node, ctx)
	case "object":
		return s.compileTypeObject(node, ctx)
	case "":
		if node.Properties.Len() > 0 || node.AdditionalProperties != nil || node.PatternProperties.Len() > 0 {
			return s.compileTypeObject(node, ctx)
		}
		return "unknown", nil
	default:
		return "unknown", nil
	}
}

func (s *Session) compileTypeArray(node *openapi.Schema, ctx compileCtx) (string, error) {
	if len(node.PrefixItems) > 0 {
		parts := make([]string, len(node.PrefixItems))
		for i, p := range node.PrefixItems {
			text, err := s.compileType(p, ctx)
			if err != nil {
				return "", err
			}
			parts[i] = text
		}
		tuple := "[" + joinExprs(parts) + "]"
		rest := node.Items
		if rest == nil && node.UnevaluatedItems != nil && node.UnevaluatedItems.Schema != nil {
			rest = node.UnevaluatedItems.Schema
		}
		if rest != nil {
			text, err := s.compileType(rest, ctx)
			if err != nil {
				return "", err
			}
			tuple = "[" + joinExprs(parts) + ", ...Array<" + text + ">]"
		}
		return tuple, nil
	}
	item := "unknown"
	if node.Items != nil {
		text, err := s.compileType(node.Items, ctx)
		if err != nil {
			return "", err
		}
		item = text
	}
	return "Array<" + item + ">", nil
}

func (s *Session) compileTypeObject(node *openapi.Schema, ctx compileCtx) (string, error) {
	required := make(map[string]bool, len(node.Required))
	for _, r := range node.Required {
		required[r] = true
	}
	var props []string
	for _, name := range node.Properties.Keys() {
		p, _ := node.Properties.Get(name)
		if p != nil && p.ReadOnly && ctx.usage == usage.ContextRequest {
			continue
		}
		if p != nil && p.WriteOnly && ctx.usage == usage.ContextResponse {
			continue
		}
		text, err := s.compileType(p, ctx)
		if err != nil {
			return "", err
		}
		key := jsKey(name)
		if !required[name] {
			key += "?"
		}
		props = append(props, key+": "+text)
	}

	if len(props) == 0 && node.AdditionalProperties == nil && node.PatternProperties.Len() == 0 {
		if ctx.cfg.EmptyObject == EmptyObjectStrict {
			return "{}", nil
		}
		return "Record<string, unknown>", nil
	}

	catchall := ""
	if ap := node.AdditionalProperties; ap != nil {
		if ap.Schema != nil {
			text, err := s.compileType(ap.Schema, ctx)
			if err != nil {
				return "", err
			}
			catchall = "[key: string]: " + text
		} else if ap.Bool {
			catchall = "[key: string]: unknown"
		}
	} else if node.PatternProperties.Len() > 0 || ctx.cfg.Openness == OpennessLoose {
		catchall = "[key: string]: unknown"
	}
	if catchall != "" {
		props = append(props, catchall)
	}
	if len(props) == 0 {
		return "{}", nil
	}
	return "{ " + joinWith(props, "; ") + " }", nil
}

func joinWith(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
