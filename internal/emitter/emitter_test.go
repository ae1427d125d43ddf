package emitter_test

import (
	"strings"
	"testing"

	"github.com/reoring/zodgen/internal/compiler"
	"github.com/reoring/zodgen/internal/emitter"
)

func TestRender_HeaderImportAndInfer(t *testing.T) {
	out := emitter.Render(emitter.Input{
		Title:   "Pets",
		Version: "1.0.0",
		Header:  true,
		Fragments: []*compiler.Fragment{
			{Name: "Pet", TypeName: "Pet", Ident: "pet", Mode: compiler.ModeValidator, Validator: "z.object({})"},
		},
	})
	if !strings.HasPrefix(out, "// Generated by zodgen. DO NOT EDIT.\n// source: Pets 1.0.0\n") {
		t.Fatalf("header:\n%s", out)
	}
	if !strings.Contains(out, "import { z } from \"zod\";\n") {
		t.Fatalf("zod import missing:\n%s", out)
	}
	if !strings.Contains(out, "export const pet = z.object({});\n") {
		t.Fatalf("validator declaration:\n%s", out)
	}
	if !strings.Contains(out, "export type Pet = z.infer<typeof pet>;\n") {
		t.Fatalf("inferred type alias:\n%s", out)
	}
}

func TestRender_NoValidators_NoImport(t *testing.T) {
	out := emitter.Render(emitter.Input{
		Fragments: []*compiler.Fragment{
			{Name: "User", TypeName: "User", Mode: compiler.ModeNativeType, TypeText: "{ name: string }"},
		},
	})
	if strings.Contains(out, "import {") {
		t.Fatalf("import emitted without any validator:\n%s", out)
	}
	if !strings.Contains(out, "export type User = { name: string };\n") {
		t.Fatalf("type declaration:\n%s", out)
	}
}

func TestRender_EnumBlockAndSkipInfer(t *testing.T) {
	out := emitter.Render(emitter.Input{
		Enums: []compiler.EnumDecl{
			{Name: "Status", Keys: []string{"Active", "Inactive"}, Values: []string{`"active"`, `"inactive"`}},
		},
		Fragments: []*compiler.Fragment{
			{Name: "Status", TypeName: "Status", Ident: "status", Mode: compiler.ModeValidator, Validator: "z.nativeEnum(Status)", SkipInfer: true},
		},
	})
	want := "export enum Status {\n  Active = \"active\",\n  Inactive = \"inactive\",\n}\n"
	if !strings.Contains(out, want) {
		t.Fatalf("enum block:\n%s", out)
	}
	if strings.Contains(out, "z.infer<typeof status>") {
		t.Fatalf("infer alias must be skipped when the enum declares the type:\n%s", out)
	}
}

func TestRender_AliasFragment(t *testing.T) {
	out := emitter.Render(emitter.Input{
		Fragments: []*compiler.Fragment{
			{Name: "Real", TypeName: "Real", Ident: "real", Mode: compiler.ModeValidator, Validator: "z.string()"},
			{Name: "Shortcut", TypeName: "Shortcut", Ident: "shortcut", Mode: compiler.ModeValidator, Validator: "real", TypeText: "Real", IsAlias: true, AliasOf: "Real"},
		},
	})
	if !strings.Contains(out, "export const shortcut = real;\n") {
		t.Fatalf("alias const:\n%s", out)
	}
	if !strings.Contains(out, "export type Shortcut = Real;\n") {
		t.Fatalf("alias type:\n%s", out)
	}
}

func TestRender_Descriptions_MultiLine(t *testing.T) {
	out := emitter.Render(emitter.Input{
		IncludeDescriptions: true,
		Fragments: []*compiler.Fragment{
			{Name: "Pet", TypeName: "Pet", Ident: "pet", Mode: compiler.ModeValidator, Validator: "z.object({})", Description: "A pet.\nPossibly furry."},
		},
	})
	if !strings.Contains(out, "// A pet.\n// Possibly furry.\nexport const pet") {
		t.Fatalf("description comment:\n%s", out)
	}
}

func TestRender_DescriptionsOffByDefault(t *testing.T) {
	out := emitter.Render(emitter.Input{
		Fragments: []*compiler.Fragment{
			{Name: "Pet", TypeName: "Pet", Ident: "pet", Mode: compiler.ModeValidator, Validator: "z.object({})", Description: "A pet."},
		},
	})
	if strings.Contains(out, "// A pet.") {
		t.Fatalf("description leaked:\n%s", out)
	}
}

func TestRender_StatsBlock(t *testing.T) {
	out := emitter.Render(emitter.Input{
		Header: true,
		Stats:  &emitter.Stats{Schemas: 3, Validators: 2, Types: 1, Cycles: 1},
		Fragments: []*compiler.Fragment{
			{Name: "A", TypeName: "A", Ident: "a", Mode: compiler.ModeValidator, Validator: "z.string()"},
		},
	})
	if !strings.Contains(out, "//   schemas:        3\n") {
		t.Fatalf("stats block:\n%s", out)
	}
	if !strings.Contains(out, "//   cycles:         1\n") {
		t.Fatalf("stats block:\n%s", out)
	}
}
