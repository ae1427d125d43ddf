package compiler

import (
	"regexp"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/reoring/zodgen/internal/usage"
	"github.com/reoring/zodgen/openapi"
)

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// jsKey renders an object key, quoting it when it is not a bare identifier.
func jsKey(name string) string {
	if identRe.MatchString(name) {
		return name
	}
	quoted, _ := json.Marshal(name)
	return string(quoted)
}

// compileObject builds the object expression: properties in declaration
// order filtered by usage context, the openness suffix, then the refinement
// chain for every non-structural object keyword.
func (s *Session) compileObject(node *openapi.Schema, ctx compileCtx, compile compileFn) (string, error) {
	required := make(map[string]bool, len(node.Required))
	for _, r := range node.Required {
		required[r] = true
	}

	var props []string
	declared := make(map[string]bool)
	for _, name := range node.Properties.Keys() {
		p, _ := node.Properties.Get(name)
		declared[name] = true
		if p != nil && p.ReadOnly && ctx.usage == usage.ContextRequest {
			continue
		}
		if p != nil && p.WriteOnly && ctx.usage == usage.ContextResponse {
			continue
		}
		expr, err := compile(p, ctx)
		if err != nil {
			return "", err
		}
		if !required[name] {
			expr += ".optional()"
		}
		props = append(props, jsKey(name)+": "+expr)
	}

	// required names with no matching declaration force pass-through plus a
	// presence refinement, so the check can see the key at all
	var missingRequired []string
	for _, r := range node.Required {
		if !declared[r] {
			missingRequired = append(missingRequired, r)
		}
	}

	if len(props) == 0 && node.Properties.Len() == 0 && node.PatternProperties.Len() == 0 &&
		node.AdditionalProperties == nil && len(missingRequired) == 0 {
		return s.emptyObject(ctx), nil
	}

	expr := "z.object({ " + joinExprs(props) + " })"
	if len(props) == 0 {
		expr = "z.object({})"
	}

	suffix, err := s.opennessSuffix(node, ctx, len(missingRequired) > 0)
	if err != nil {
		return "", err
	}
	expr += suffix

	if node.MinProperties != nil {
		expr += ".refine((value) => Object.keys(value).length >= " + strconv.Itoa(*node.MinProperties) +
			`, { message: "too few properties" })`
	}
	if node.MaxProperties != nil {
		expr += ".refine((value) => Object.keys(value).length <= " + strconv.Itoa(*node.MaxProperties) +
			`, { message: "too many properties" })`
	}
	for _, r := range missingRequired {
		key := renderLiteral(r)
		expr += ".refine((value) => " + key + ` in value, { message: ` + renderLiteral("missing required property "+r) + ` })`
	}

	patternSuffix, err := s.patternPropertiesSuffix(node, ctx, compile)
	if err != nil {
		return "", err
	}
	expr += patternSuffix

	if node.PropertyNames != nil {
		names, err := compile(node.PropertyNames, ctx)
		if err != nil {
			return "", err
		}
		expr += ".refine((value) => Object.keys(value).every((key) => " + names +
			`.safeParse(key).success), { message: "invalid property name" })`
	}

	depSuffix, err := s.dependenciesSuffix(node, ctx, compile)
	if err != nil {
		return "", err
	}
	expr += depSuffix

	expr += s.conditionalSuffix(node)
	return expr, nil
}

// emptyObject renders a bare object schema per the configured behavior.
func (s *Session) emptyObject(ctx compileCtx) string {
	switch ctx.cfg.EmptyObject {
	case EmptyObjectStrict:
		return "z.object({}).strict()"
	case EmptyObjectRecord:
		return "z.record(z.unknown())"
	default:
		return "z.object({}).passthrough()"
	}
}

// opennessSuffix decides the object's openness. additionalProperties:false
// always forces the strict form; a pattern-properties refinement or an
// undeclared required name needs pass-through to see extra keys.
func (s *Session) opennessSuffix(node *openapi.Schema, ctx compileCtx, forcePassthrough bool) (string, error) {
	if ap := node.AdditionalProperties; ap != nil {
		if ap.IsBool {
			if !ap.Bool {
				return ".strict()", nil
			}
			return ".passthrough()", nil
		}
		compiled, err := s.compile(ap.Schema, ctx)
		if err != nil {
			return "", err
		}
		return ".catchall(" + compiled + ")", nil
	}
	if node.PatternProperties.Len() > 0 || forcePassthrough {
		return ".passthrough()", nil
	}
	switch ctx.cfg.Openness {
	case OpennessStrict:
		return ".strict()", nil
	case OpennessLoose:
		return ".passthrough()", nil
	default:
		return "", nil
	}
}

func (s *Session) patternPropertiesSuffix(node *openapi.Schema, ctx compileCtx, compile compileFn) (string, error) {
	var out string
	for _, pattern := range node.PatternProperties.Keys() {
		p, _ := node.PatternProperties.Get(pattern)
		compiled, err := compile(p, ctx)
		if err != nil {
			return "", err
		}
		re := s.regexLiteral(pattern)
		out += ".superRefine((value, ctx) => { for (const key of Object.keys(value)) { if (!" + re +
			".test(key)) continue; if (!" + compiled +
			".safeParse(value[key]).success) { ctx.addIssue({ code: z.ZodIssueCode.custom, path: [key], message: " +
			renderLiteral("value does not match pattern schema "+pattern) + " }); } } })"
	}
	return out, nil
}

// dependenciesSuffix renders the legacy dependencies keyword (array-style
// implication or schema-style whole-object constraint), dependentRequired
// and dependentSchemas.
func (s *Session) dependenciesSuffix(node *openapi.Schema, ctx compileCtx, compile compileFn) (string, error) {
	var out string
	for _, key := range sortedKeys(node.Dependencies) {
		dep := node.Dependencies[key]
		if dep.Schema != nil {
			compiled, err := compile(dep.Schema, ctx)
			if err != nil {
				return "", err
			}
			out += implicationRefine(key, compiled+".safeParse(value).success", "object does not satisfy dependency of "+key)
			continue
		}
		out += implicationRefine(key, presenceCondition(dep.Required), "missing dependent properties of "+key)
	}
	for _, key := range sortedKeys(node.DependentRequired) {
		out += implicationRefine(key, presenceCondition(node.DependentRequired[key]), "missing dependent properties of "+key)
	}
	for _, key := range sortedKeys(node.DependentSchemas) {
		compiled, err := compile(node.DependentSchemas[key], ctx)
		if err != nil {
			return "", err
		}
		out += implicationRefine(key, compiled+".safeParse(value).success", "object does not satisfy dependency of "+key)
	}
	return out, nil
}

// implicationRefine renders "if key present then condition holds".
func implicationRefine(key, condition, message string) string {
	return ".refine((value) => !(" + renderLiteral(key) + " in value) || (" + condition +
		"), { message: " + renderLiteral(message) + " })"
}

func presenceCondition(names []string) string {
	if len(names) == 0 {
		return "true"
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "(" + renderLiteral(n) + " in value)"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " && " + p
	}
	return out
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
