package naming_test

import (
	"testing"

	"github.com/reoring/zodgen/internal/naming"
)

func TestTypeName_Derivation(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"user", "User"},
		{"userAccount", "UserAccount"},
		{"HTTPServer", "HTTPServer"},
		{"foo_bar", "FooBar"},
		{"foo-bar", "FooBar"},
		{"foo bar", "FooBar"},
		{"foo.bar", "FooBar"},
		{"foo_bar-baz qux", "FooBarBazQux"},
		{"123abc", "N123abc"},
		{"_leading", "Leading"},
		{"trailing_", "Trailing"},
		{"weird*chars!", "Weirdchars"},
		{"", "Schema"},
		{"***", "Schema"},
	}
	for _, c := range cases {
		if got := naming.TypeName(c.raw); got != c.want {
			t.Fatalf("TypeName(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestRegistry_CollisionSuffixes(t *testing.T) {
	r := naming.NewRegistry()
	if got := r.Claim("FooBar"); got != "FooBar" {
		t.Fatalf("first claim: %q", got)
	}
	if got := r.Claim("FooBar"); got != "FooBar2" {
		t.Fatalf("second claim: %q", got)
	}
	if got := r.Claim("FooBar"); got != "FooBar3" {
		t.Fatalf("third claim: %q", got)
	}
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := naming.NewRegistry()
	if got := r.Claim("FooBar"); got != "FooBar" {
		t.Fatalf("first claim: %q", got)
	}
	if got := r.Claim("foobar"); got != "foobar2" {
		t.Fatalf("case-colliding claim: %q", got)
	}
}

func TestRegistry_SuffixedFormSkipsExplicitClaim(t *testing.T) {
	r := naming.NewRegistry()
	r.Claim("Item")
	r.Claim("Item2")
	if got := r.Claim("Item"); got != "Item3" {
		t.Fatalf("claim after explicit Item2: %q", got)
	}
}

func TestValidatorIdent_PrefixSuffix(t *testing.T) {
	cases := []struct {
		typeName, prefix, suffix, want string
	}{
		{"User", "", "", "user"},
		{"User", "api", "", "apiUser"},
		{"User", "", "schema", "userSchema"},
		{"User", "api", "schema", "apiUserSchema"},
		{"HTTPServer", "", "", "hTTPServer"},
	}
	for _, c := range cases {
		if got := naming.ValidatorIdent(c.typeName, c.prefix, c.suffix); got != c.want {
			t.Fatalf("ValidatorIdent(%q, %q, %q) = %q, want %q", c.typeName, c.prefix, c.suffix, got, c.want)
		}
	}
}

func TestEnumKey_SortSigilsAndFallbacks(t *testing.T) {
	cases := []struct {
		value any
		index int
		want  string
	}{
		{"active", 0, "Active"},
		{"+name", 0, "NameAsc"},
		{"-name", 1, "NameDesc"},
		{"name+", 0, "NameAsc"},
		{"name-", 0, "NameDesc"},
		{"created_at", 0, "CreatedAt"},
		{float64(3.5), 2, "Value2"},
		{true, 4, "Value4"},
		{"+", 0, "Value0Asc"},
		{"--", 3, "Value3Desc"},
	}
	for _, c := range cases {
		if got := naming.EnumKey(c.value, c.index); got != c.want {
			t.Fatalf("EnumKey(%v, %d) = %q, want %q", c.value, c.index, got, c.want)
		}
	}
}
