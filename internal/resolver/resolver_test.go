package resolver_test

import (
	"testing"

	"github.com/reoring/zodgen/internal/resolver"
	"github.com/reoring/zodgen/openapi"
)

func mustDoc(t *testing.T, src string) *openapi.Document {
	t.Helper()
	doc, err := openapi.LoadBytes([]byte(src))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestSchemaName_Extraction(t *testing.T) {
	cases := []struct {
		pointer string
		name    string
		ok      bool
	}{
		{"#/components/schemas/User", "User", true},
		{"#/components/schemas/", "", false},
		{"#/components/schemas/User/properties/id", "", false},
		{"#/components/parameters/Limit", "", false},
		{"User", "", false},
	}
	for _, c := range cases {
		name, ok := resolver.SchemaName(c.pointer)
		if name != c.name || ok != c.ok {
			t.Fatalf("SchemaName(%q) = (%q, %v), want (%q, %v)", c.pointer, name, ok, c.name, c.ok)
		}
	}
}

func TestResolve_FollowsChainedSchemaRefs(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"A": {"$ref": "#/components/schemas/B"},
		"B": {"type": "string"}
	}}}`)
	node, ok := resolver.Resolve(doc, "#/components/schemas/A", resolver.DefaultMaxDepth)
	if !ok {
		t.Fatalf("resolve failed")
	}
	want, _ := doc.SchemaByName("B")
	if node != any(want) {
		t.Fatalf("resolved to %#v, want schema B", node)
	}
}

func TestResolve_RefWithSiblings_StopsAtCarrier(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"A": {"$ref": "#/components/schemas/B", "description": "wrapped", "type": "object", "properties": {"x": {"type": "string"}}},
		"B": {"type": "string"}
	}}}`)
	node, ok := resolver.Resolve(doc, "#/components/schemas/A", resolver.DefaultMaxDepth)
	if !ok {
		t.Fatalf("resolve failed")
	}
	want, _ := doc.SchemaByName("A")
	if node != any(want) {
		t.Fatalf("a $ref with sibling keywords must resolve to itself")
	}
}

func TestResolve_DepthExhausted_Degrades(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"A": {"$ref": "#/components/schemas/B"},
		"B": {"$ref": "#/components/schemas/C"},
		"C": {"$ref": "#/components/schemas/D"},
		"D": {"type": "string"}
	}}}`)
	node, ok := resolver.Resolve(doc, "#/components/schemas/A", 2)
	if ok {
		t.Fatalf("expected degraded outcome at depth 2")
	}
	if node != any("#/components/schemas/C") {
		t.Fatalf("degraded result should hand back the stuck pointer, got %#v", node)
	}
	if _, ok := resolver.Resolve(doc, "#/components/schemas/A", resolver.DefaultMaxDepth); !ok {
		t.Fatalf("default depth should resolve the chain")
	}
}

func TestResolve_UnknownCategory_Degrades(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {"A": {"type": "string"}}}}`)
	node, ok := resolver.Resolve(doc, "#/components/headers/X", resolver.DefaultMaxDepth)
	if ok {
		t.Fatalf("unknown pointer category must not resolve")
	}
	if node != any("#/components/headers/X") {
		t.Fatalf("degraded result: %#v", node)
	}
}

func TestResolve_ParameterAndRequestBody(t *testing.T) {
	doc := mustDoc(t, `{"components": {
		"schemas": {"A": {"type": "string"}},
		"parameters": {"Limit": {"name": "limit", "in": "query", "schema": {"type": "integer"}}},
		"requestBodies": {"Body": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/A"}}}}}
	}}`)
	node, ok := resolver.Resolve(doc, "#/components/parameters/Limit", resolver.DefaultMaxDepth)
	if !ok {
		t.Fatalf("parameter resolve failed")
	}
	p, isParam := node.(*openapi.Parameter)
	if !isParam || p.Name != "limit" {
		t.Fatalf("parameter: %#v", node)
	}
	node, ok = resolver.Resolve(doc, "#/components/requestBodies/Body", resolver.DefaultMaxDepth)
	if !ok {
		t.Fatalf("request body resolve failed")
	}
	if _, isBody := node.(*openapi.RequestBody); !isBody {
		t.Fatalf("request body: %#v", node)
	}
}

func TestResolveSchema_FinalName(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Alias":  {"$ref": "#/components/schemas/Alias2"},
		"Alias2": {"$ref": "#/components/schemas/Real"},
		"Real":   {"type": "object"}
	}}}`)
	s, name, ok := resolver.ResolveSchema(doc, "#/components/schemas/Alias", resolver.DefaultMaxDepth)
	if !ok || name != "Real" {
		t.Fatalf("ResolveSchema = (%v, %q, %v)", s, name, ok)
	}
	if s.Type.Single() != "object" {
		t.Fatalf("resolved schema: %+v", s)
	}
}

func TestResolveSchema_RefLoopGivesUp(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"A": {"$ref": "#/components/schemas/B"},
		"B": {"$ref": "#/components/schemas/A"}
	}}}`)
	if _, _, ok := resolver.ResolveSchema(doc, "#/components/schemas/A", resolver.DefaultMaxDepth); ok {
		t.Fatalf("a reference loop must not resolve")
	}
}

func TestMergeParameters_OperationOverridesByNameAndIn(t *testing.T) {
	pathLevel := []*openapi.Parameter{
		{Name: "id", In: "path"},
		{Name: "limit", In: "query"},
	}
	opLevel := []*openapi.Parameter{
		{Name: "limit", In: "query", Required: true},
		{Name: "verbose", In: "query"},
	}
	merged := resolver.MergeParameters(pathLevel, opLevel)
	if len(merged) != 3 {
		t.Fatalf("merged length: %d", len(merged))
	}
	if merged[0].Name != "id" {
		t.Fatalf("unmatched path-level entry must come first, got %q", merged[0].Name)
	}
	if merged[1].Name != "limit" || !merged[1].Required {
		t.Fatalf("operation-level limit must win: %+v", merged[1])
	}
	if merged[2].Name != "verbose" {
		t.Fatalf("merged tail: %+v", merged[2])
	}
}

func TestFirstBrokenRef_ReportsStructuralPath(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Sound": {"type": "object", "properties": {"ok": {"type": "string"}}},
		"Holder": {"type": "object", "properties": {"bad": {"$ref": "#/components/schemas/Missing"}}}
	}}}`)
	br := resolver.FirstBrokenRef(doc)
	if br == nil {
		t.Fatalf("expected a broken ref")
	}
	if br.Schema != "Holder" {
		t.Fatalf("owner: %q", br.Schema)
	}
	if br.Path != "properties.bad.$ref" {
		t.Fatalf("path: %q", br.Path)
	}
	if br.Pointer != "#/components/schemas/Missing" {
		t.Fatalf("pointer: %q", br.Pointer)
	}
}

func TestFirstBrokenRef_CompositionIndex(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Mixed": {"allOf": [{"type": "object"}, {"$ref": "#/components/schemas/Nope"}]}
	}}}`)
	br := resolver.FirstBrokenRef(doc)
	if br == nil || br.Path != "allOf[1].$ref" {
		t.Fatalf("broken ref: %+v", br)
	}
}

func TestFirstBrokenRef_SoundDocument(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"A": {"type": "object", "properties": {"b": {"$ref": "#/components/schemas/B"}}},
		"B": {"items": {"$ref": "#/components/schemas/A"}, "type": "array"}
	}}}`)
	if br := resolver.FirstBrokenRef(doc); br != nil {
		t.Fatalf("unexpected broken ref: %+v", br)
	}
}
