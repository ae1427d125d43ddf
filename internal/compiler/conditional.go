package compiler

import (
	"github.com/reoring/zodgen/openapi"
)

// conditionalSuffix renders the if/then/else keyword as one superRefine.
// The condition is built from the if branch's type/const/bounds/required
// assertions; the then and else validations are built the same way. An
// absent branch implicitly passes.
func (s *Session) conditionalSuffix(node *openapi.Schema) string {
	if node.If == nil || (node.Then == nil && node.Else == nil) {
		return ""
	}
	cond := assertion(node.If, "value")

	var body string
	if node.Then != nil {
		thenCond := assertion(node.Then, "value")
		body += "if (" + cond + ") { if (!(" + thenCond +
			`)) { ctx.addIssue({ code: z.ZodIssueCode.custom, message: "conditional then-branch failed" }); } }`
	}
	if node.Else != nil {
		elseCond := assertion(node.Else, "value")
		if body == "" {
			body = "if (" + cond + ") {}"
		}
		body += " else { if (!(" + elseCond +
			`)) { ctx.addIssue({ code: z.ZodIssueCode.custom, message: "conditional else-branch failed" }); } }`
	}
	return ".superRefine((value, ctx) => { " + body + " })"
}

// assertion builds a JavaScript predicate over expr from a schema's simple
// assertions: required, type, const, numeric and length bounds, and the same
// recursively for declared properties. Unassertable keywords are ignored,
// which errs on the permissive side.
func assertion(s *openapi.Schema, expr string) string {
	if s == nil {
		return "true"
	}
	var parts []string

	for _, r := range s.Required {
		parts = append(parts, "("+renderLiteral(r)+" in "+expr+")")
	}
	if t := typeAssertion(s.Type.Single(), expr); t != "" {
		parts = append(parts, t)
	}
	if s.Const != nil {
		parts = append(parts, expr+" === "+renderRawLiteral(s.Const))
	}
	if s.Minimum != nil {
		parts = append(parts, expr+" >= "+renderNumber(*s.Minimum))
	}
	if s.Maximum != nil {
		parts = append(parts, expr+" <= "+renderNumber(*s.Maximum))
	}
	if s.MinLength != nil {
		parts = append(parts, expr+".length >= "+renderNumber(float64(*s.MinLength)))
	}
	if s.MaxLength != nil {
		parts = append(parts, expr+".length <= "+renderNumber(float64(*s.MaxLength)))
	}
	for _, name := range s.Properties.Keys() {
		p, _ := s.Properties.Get(name)
		sub := assertion(p, expr+"["+renderLiteral(name)+"]")
		if sub == "true" {
			continue
		}
		// a property assertion only applies when the key is present
		parts = append(parts, "("+expr+"["+renderLiteral(name)+"] === undefined || ("+sub+"))")
	}

	if len(parts) == 0 {
		return "true"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " && " + p
	}
	return out
}

func typeAssertion(typeName, expr string) string {
	switch typeName {
	case "string":
		return `typeof ` + expr + ` === "string"`
	case "number", "integer":
		return `typeof ` + expr + ` === "number"`
	case "boolean":
		return `typeof ` + expr + ` === "boolean"`
	case "array":
		return "Array.isArray(" + expr + ")"
	case "object":
		return `typeof ` + expr + ` === "object" && ` + expr + ` !== null`
	default:
		return ""
	}
}
