package compiler

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// renderLiteral turns a decoded JSON value into TypeScript literal text.
// Scalars only; anything that fails to marshal degrades to null.
func renderLiteral(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// renderRawLiteral emits raw JSON (already compact) as TypeScript literal
// text.
func renderRawLiteral(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}

// renderNumber prints a float the way JSON would, so emitted bounds stay
// stable across runs.
func renderNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// regexLiteral renders a raw pattern as JavaScript regex text. The rendered
// form is cached on the session keyed by the raw source, so identical
// patterns across a document compile once.
func (s *Session) regexLiteral(pattern string) string {
	if cached, ok := s.patternCache.Get(pattern); ok {
		return cached
	}
	var out string
	if strings.ContainsAny(pattern, "/\n\r") {
		// a slash or newline would break the /.../ form; build via RegExp
		escaped, _ := json.Marshal(pattern)
		out = "new RegExp(" + string(escaped) + ")"
	} else {
		out = "/" + pattern + "/"
	}
	s.patternCache.Add(pattern, out)
	return out
}
