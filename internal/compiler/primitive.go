package compiler

import (
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/reoring/zodgen/openapi"
)

// stringFormats maps known format names to dedicated zod validators.
var stringFormats = map[string]string{
	"email":     ".email()",
	"uuid":      ".uuid()",
	"ulid":      ".ulid()",
	"cuid":      ".cuid()",
	"uri":       ".url()",
	"url":       ".url()",
	"hostname":  ".regex(/^[a-zA-Z0-9.-]+$/)",
	"date-time": ".datetime({ offset: true })",
	"date":      ".date()",
	"time":      ".time()",
	"duration":  ".duration()",
	"ipv4":      ".ip({ version: \"v4\" })",
	"ipv6":      ".ip({ version: \"v6\" })",
	"base64":    ".base64()",
	"byte":      ".base64()",
}

// contentEncodings maps known contentEncoding values to base validators.
// When one applies it overrides the format-derived base and length/pattern
// are re-applied on top of it.
var contentEncodings = map[string]string{
	"base64":    "z.string().base64()",
	"base64url": "z.string().base64url()",
}

// compileString applies, in order: base validator (format-driven, overridden
// by a known contentEncoding), length bounds, pattern, then an independent
// contentMediaType refinement layered on top.
func (s *Session) compileString(node *openapi.Schema) string {
	base := "z.string()"
	if enc, ok := contentEncodings[node.ContentEncoding]; ok {
		base = enc
	} else if f, ok := stringFormats[node.Format]; ok {
		base += f
	}
	if node.MinLength != nil {
		base += ".min(" + strconv.Itoa(*node.MinLength) + ")"
	}
	if node.MaxLength != nil {
		base += ".max(" + strconv.Itoa(*node.MaxLength) + ")"
	}
	if node.Pattern != "" {
		base += ".regex(" + s.regexLiteral(node.Pattern) + ")"
	}
	if ref := mediaTypeRefinement(node.ContentMediaType); ref != "" {
		base += ref
	}
	return base
}

// mediaTypeRefinement returns the semantic refinement for a contentMediaType:
// parseability for JSON payloads, tag presence for markup.
func mediaTypeRefinement(mediaType string) string {
	switch mediaType {
	case "":
		return ""
	case "application/json":
		return `.refine((value) => { try { JSON.parse(value); return true; } catch { return false; } }, { message: "invalid application/json payload" })`
	case "text/html", "application/xml", "text/xml":
		escaped, _ := json.Marshal("content is not " + mediaType)
		return `.refine((value) => value.includes("<"), { message: ` + string(escaped) + ` })`
	default:
		return ""
	}
}

// compileNumber applies the base validator with the integer flag, then the
// bounds in either exclusive style, then multipleOf last.
func (s *Session) compileNumber(node *openapi.Schema, integer bool) string {
	base := "z.number()"
	if integer {
		base += ".int()"
	}
	base += numericBound(node.Minimum, node.ExclusiveMinimum, ".gte(", ".gt(")
	base += numericBound(node.Maximum, node.ExclusiveMaximum, ".lte(", ".lt(")
	if node.MultipleOf != nil {
		base += ".multipleOf(" + renderNumber(*node.MultipleOf) + ")"
	}
	return base
}

// numericBound renders one bound, honoring both the boolean-flag style
// (exclusiveMinimum: true next to minimum) and the standalone numeric style.
func numericBound(inclusive *float64, exclusive *openapi.Bound, incOp, excOp string) string {
	if exclusive != nil && !exclusive.IsFlag {
		return excOp + renderNumber(exclusive.Value) + ")"
	}
	if inclusive == nil {
		return ""
	}
	if exclusive != nil && exclusive.IsFlag && exclusive.Flag {
		return excOp + renderNumber(*inclusive) + ")"
	}
	return incOp + renderNumber(*inclusive) + ")"
}

// compileArray handles fixed tuples (prefixItems with an optional rest),
// homogeneous arrays with count bounds, uniqueness and contains refinements.
func (s *Session) compileArray(node *openapi.Schema, ctx compileCtx) (string, error) {
	if len(node.PrefixItems) > 0 {
		return s.compileTuple(node, ctx)
	}

	item := "z.unknown()"
	if node.Items != nil {
		compiled, err := s.compile(node.Items, ctx)
		if err != nil {
			return "", err
		}
		item = compiled
	}
	expr := "z.array(" + item + ")"
	if node.MinItems != nil {
		expr += ".min(" + strconv.Itoa(*node.MinItems) + ")"
	}
	if node.MaxItems != nil {
		expr += ".max(" + strconv.Itoa(*node.MaxItems) + ")"
	}
	if node.UniqueItems {
		expr += `.refine((items) => new Set(items.map((item) => JSON.stringify(item))).size === items.length, { message: "array items are not unique" })`
	}
	if node.Contains != nil {
		contains, err := s.compile(node.Contains, ctx)
		if err != nil {
			return "", err
		}
		expr += containsRefinement(contains, node.MinContains, node.MaxContains)
	}
	return expr, nil
}

func (s *Session) compileTuple(node *openapi.Schema, ctx compileCtx) (string, error) {
	parts := make([]string, len(node.PrefixItems))
	for i, p := range node.PrefixItems {
		compiled, err := s.compile(p, ctx)
		if err != nil {
			return "", err
		}
		parts[i] = compiled
	}
	expr := "z.tuple([" + joinExprs(parts) + "])"

	rest := node.Items
	if rest == nil && node.UnevaluatedItems != nil && node.UnevaluatedItems.Schema != nil {
		rest = node.UnevaluatedItems.Schema
	}
	switch {
	case rest != nil:
		compiled, err := s.compile(rest, ctx)
		if err != nil {
			return "", err
		}
		expr += ".rest(" + compiled + ")"
	case node.UnevaluatedItems != nil && node.UnevaluatedItems.IsBool && !node.UnevaluatedItems.Bool:
		limit := strconv.Itoa(len(node.PrefixItems))
		expr += ".refine((items) => items.length <= " + limit + ", { message: \"tuple admits at most " + limit + " items\" })"
	}
	if node.Contains != nil {
		contains, err := s.compile(node.Contains, ctx)
		if err != nil {
			return "", err
		}
		expr += containsRefinement(contains, node.MinContains, node.MaxContains)
	}
	return expr, nil
}

// containsRefinement appends a match-count refinement; the minimum defaults
// to one match.
func containsRefinement(contains string, minContains, maxContains *int) string {
	lo := 1
	if minContains != nil {
		lo = *minContains
	}
	cond := "count >= " + strconv.Itoa(lo)
	if maxContains != nil {
		cond += " && count <= " + strconv.Itoa(*maxContains)
	}
	return ".refine((items) => { const count = items.filter((item) => " + contains +
		".safeParse(item).success).length; return " + cond + `; }, { message: "contains count out of range" })`
}
