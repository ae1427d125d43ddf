// Package naming derives deterministic, collision-safe identifiers for
// generated types, validators and enum member keys.
package naming

import (
	"strconv"
	"strings"
	"unicode"
)

// delimiters are the characters a raw component name is split on before each
// segment is re-capitalized.
func isDelimiter(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}

// TypeName derives a TypeScript type name from a raw component name.
// Names without delimiters keep their internal capitalization runs and only
// have the first rune raised; delimited names are split and each segment
// capitalized. A leading digit gets a letter prefix so the result stays a
// valid identifier.
func TypeName(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || isDelimiter(r) {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.TrimFunc(cleaned, isDelimiter)
	if cleaned == "" {
		return "Schema"
	}

	var name string
	if strings.IndexFunc(cleaned, isDelimiter) < 0 {
		name = capitalize(cleaned)
	} else {
		var b strings.Builder
		for _, seg := range strings.FieldsFunc(cleaned, isDelimiter) {
			b.WriteString(capitalize(seg))
		}
		name = b.String()
	}
	if name == "" {
		return "Schema"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "N" + name
	}
	return name
}

// ValidatorIdent derives the lower-camel validator identifier for a type
// name, joining the optional prefix and suffix with re-capitalized
// boundaries so the result stays camel cased.
func ValidatorIdent(typeName, prefix, suffix string) string {
	name := typeName
	if prefix != "" {
		name = prefix + capitalize(name)
	} else {
		name = decapitalize(name)
	}
	if suffix != "" {
		name += capitalize(suffix)
	}
	return name
}

// capitalize raises the first rune, leaving the rest untouched so existing
// capitalization runs survive.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func decapitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// EnumKey derives the member key for one enum literal. Sort-order sigils on
// a string literal map to Asc/Desc suffixes instead of being dropped; values
// with no usable text fall back to an index-based key.
func EnumKey(value any, index int) string {
	s, isString := value.(string)
	if !isString {
		return "Value" + strconv.Itoa(index)
	}
	var suffix string
	switch {
	case strings.HasPrefix(s, "+"):
		s, suffix = s[1:], "Asc"
	case strings.HasPrefix(s, "-"):
		s, suffix = s[1:], "Desc"
	case strings.HasSuffix(s, "+"):
		s, suffix = s[:len(s)-1], "Asc"
	case strings.HasSuffix(s, "-"):
		s, suffix = s[:len(s)-1], "Desc"
	}
	hasText := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
	if !hasText {
		return "Value" + strconv.Itoa(index) + suffix
	}
	return TypeName(s) + suffix
}

// Registry hands out collision-free identifiers. Case-insensitive collisions
// are resolved with an incrementing numeric suffix in claim order: the first
// occurrence keeps the base, the second becomes base2, then base3.
type Registry struct {
	used map[string]int
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{used: make(map[string]int)}
}

// Claim reserves the base identifier, suffixing it if an earlier claim
// already took it (ignoring case).
func (r *Registry) Claim(base string) string {
	key := strings.ToLower(base)
	n := r.used[key]
	r.used[key] = n + 1
	if n == 0 {
		return base
	}
	// base2 for the first collision, base3 for the next, and so on; a
	// suffixed form may itself collide with an explicit claim, so re-check.
	for {
		n++
		candidate := base + strconv.Itoa(n)
		ck := strings.ToLower(candidate)
		if r.used[ck] == 0 {
			r.used[ck] = 1
			return candidate
		}
	}
}
