package zodgen_test

import (
	"errors"
	"strings"
	"testing"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/openapi"
)

const petstore = `{
	"openapi": "3.0.0",
	"info": {"title": "Petstore", "version": "1.0.0"},
	"paths": {
		"/pets": {
			"post": {
				"requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/NewPet"}}}},
				"responses": {"200": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}}}
			}
		}
	},
	"components": {"schemas": {
		"Pet": {"type": "object", "properties": {
			"id":     {"type": "string"},
			"status": {"$ref": "#/components/schemas/Status"}
		}, "required": ["id"]},
		"NewPet": {"type": "object", "properties": {"name": {"type": "string"}}, "required": ["name"]},
		"Status": {"type": "string", "enum": ["available", "sold"]}
	}}
}`

func mustDoc(t *testing.T, src string) *openapi.Document {
	t.Helper()
	doc, err := openapi.LoadBytes([]byte(src))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestGenerate_CompleteDocument(t *testing.T) {
	res, err := zodgen.Generate(mustDoc(t, petstore), zodgen.DefaultOptions())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := res.Output
	if !strings.HasPrefix(out, "// Generated by zodgen. DO NOT EDIT.\n// source: Petstore 1.0.0\n") {
		t.Fatalf("header:\n%s", out)
	}
	for _, want := range []string{
		`export const status = z.enum(["available", "sold"]);`,
		"export const pet = z.object({ id: z.string(), status: status.optional() });",
		"export const newPet = z.object({ name: z.string() });",
		"export type Pet = z.infer<typeof pet>;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "export const status") > strings.Index(out, "export const pet") {
		t.Fatalf("dependency must precede dependent:\n%s", out)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("warnings: %v", res.Warnings)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	var outputs []string
	for i := 0; i < 3; i++ {
		res, err := zodgen.Generate(mustDoc(t, petstore), zodgen.DefaultOptions())
		if err != nil {
			t.Fatalf("generate #%d: %v", i, err)
		}
		outputs = append(outputs, res.Output)
	}
	if outputs[0] != outputs[1] || outputs[1] != outputs[2] {
		t.Fatalf("repeated runs over the same input must be byte-identical")
	}
}

func TestGenerate_NoSchemas_SpecValidationError(t *testing.T) {
	_, err := zodgen.Generate(mustDoc(t, `{"openapi": "3.0.0", "paths": {}}`), zodgen.DefaultOptions())
	var verr *zodgen.SpecValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected SpecValidationError, got %v", err)
	}
	_, err = zodgen.Generate(nil, zodgen.DefaultOptions())
	if !errors.As(err, &verr) {
		t.Fatalf("nil document: %v", err)
	}
}

func TestGenerate_BrokenReference_FailsEagerly(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Holder": {"type": "object", "properties": {"bad": {"$ref": "#/components/schemas/Missing"}}}
	}}}`)
	_, err := zodgen.Generate(doc, zodgen.DefaultOptions())
	var rerr *zodgen.ReferenceError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
	if rerr.Schema != "Holder" || rerr.Pointer != "#/components/schemas/Missing" {
		t.Fatalf("error detail: %+v", rerr)
	}
	if rerr.Path != "properties.bad.$ref" {
		t.Fatalf("path: %q", rerr.Path)
	}
}

func TestGenerate_PureReferenceLoop_CircularReferenceError(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"A": {"$ref": "#/components/schemas/B"},
		"B": {"$ref": "#/components/schemas/A"}
	}}}`)
	_, err := zodgen.Generate(doc, zodgen.DefaultOptions())
	var cerr *zodgen.CircularReferenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CircularReferenceError, got %v", err)
	}
	if !strings.Contains(cerr.Cycle, " -> ") {
		t.Fatalf("cycle path: %q", cerr.Cycle)
	}
}

func TestGenerate_StructuralCycle_Succeeds(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Node": {"type": "object", "properties": {
			"next":  {"$ref": "#/components/schemas/Node"},
			"value": {"type": "string"}
		}}
	}}}`)
	res, err := zodgen.Generate(doc, zodgen.DefaultOptions())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Output, "z.lazy(() => node)") {
		t.Fatalf("deferred self reference missing:\n%s", res.Output)
	}
}

func TestGenerate_WarningsSurfaced(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Weird": {"type": "funky"}
	}}}`)
	res, err := zodgen.Generate(doc, zodgen.DefaultOptions())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "funky") {
		t.Fatalf("warnings: %v", res.Warnings)
	}
}

func TestGenerate_RequestFilter_OmitsResponseOnlySchemas(t *testing.T) {
	opts := zodgen.DefaultOptions()
	opts.Filter = zodgen.SchemasRequest
	res, err := zodgen.Generate(mustDoc(t, petstore), opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(res.Output, "export const pet") {
		t.Fatalf("response-only schema leaked into request output:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "export const newPet") {
		t.Fatalf("request schema missing:\n%s", res.Output)
	}
}

func TestGenerate_RequestFilter_DeclaresDeferredCycleTargets(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Alpha": {"type": "object", "properties": {
			"secret": {"type": "string", "writeOnly": true},
			"beta":   {"$ref": "#/components/schemas/Beta"}
		}},
		"Beta": {"type": "object", "properties": {
			"id":    {"type": "string", "readOnly": true},
			"alpha": {"$ref": "#/components/schemas/Alpha"}
		}}
	}}}`)
	opts := zodgen.DefaultOptions()
	opts.Filter = zodgen.SchemasRequest
	res, err := zodgen.Generate(doc, opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Output, "z.lazy(() => beta)") {
		t.Fatalf("deferred reference missing:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "export const beta = ") {
		t.Fatalf("every referenced identifier must be declared:\n%s", res.Output)
	}
}

func TestGenerate_StatsBlock(t *testing.T) {
	opts := zodgen.DefaultOptions()
	opts.WithStats = true
	res, err := zodgen.Generate(mustDoc(t, petstore), opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Output, "// statistics:\n//   schemas:        3\n") {
		t.Fatalf("stats block:\n%s", res.Output)
	}
}

func TestGenerate_NoHeader(t *testing.T) {
	opts := zodgen.DefaultOptions()
	opts.WithHeader = false
	res, err := zodgen.Generate(mustDoc(t, petstore), opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(res.Output, "DO NOT EDIT") {
		t.Fatalf("header emitted despite WithHeader=false:\n%s", res.Output)
	}
	if !strings.HasPrefix(res.Output, "import { z } from \"zod\";\n") {
		t.Fatalf("output must start at the import:\n%s", res.Output)
	}
}

func TestGenerate_NamePrefixSuffix(t *testing.T) {
	opts := zodgen.DefaultOptions()
	opts.NameSuffix = "schema"
	res, err := zodgen.Generate(mustDoc(t, petstore), opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Output, "export const petSchema = ") {
		t.Fatalf("suffixed identifier missing:\n%s", res.Output)
	}
}

func TestGenerate_Descriptions(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Pet": {"type": "object", "description": "A pet."}
	}}}`)
	opts := zodgen.DefaultOptions()
	opts.IncludeDescriptions = true
	res, err := zodgen.Generate(doc, opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Output, "// A pet.\nexport const pet") {
		t.Fatalf("description missing:\n%s", res.Output)
	}
}
