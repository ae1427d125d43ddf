// Package emitter assembles ordered compiled fragments into the final
// output buffer.
package emitter

import (
	"strconv"
	"strings"

	"github.com/reoring/zodgen/internal/compiler"
)

// Stats is the optional statistics block rendered into the header region.
type Stats struct {
	Schemas    int
	Validators int
	Types      int
	Aliases    int
	Enums      int
	Cycles     int
	Request    int
	Response   int
	Both       int
}

// Input carries everything the emitter needs; the emitter itself holds no
// state and performs no I/O.
type Input struct {
	Title               string
	Version             string
	Header              bool
	Stats               *Stats
	IncludeDescriptions bool
	Enums               []compiler.EnumDecl
	Fragments           []*compiler.Fragment
}

// Render serializes the output: header, statistics, the zod import (present
// iff at least one fragment carries a runtime validator), the enum block,
// then declarations in emission order. A validator-backed fragment is
// immediately followed by its inferred type alias unless it already declares
// one.
func Render(in Input) string {
	var b strings.Builder

	if in.Header {
		b.WriteString("// Generated by zodgen. DO NOT EDIT.\n")
		if in.Title != "" {
			b.WriteString("// source: " + in.Title)
			if in.Version != "" {
				b.WriteString(" " + in.Version)
			}
			b.WriteString("\n")
		}
	}
	if in.Stats != nil {
		renderStats(&b, in.Stats)
	}

	needsZod := false
	for _, f := range in.Fragments {
		if f.Mode == compiler.ModeValidator {
			needsZod = true
			break
		}
	}
	if needsZod {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("import { z } from \"zod\";\n")
	}

	for _, e := range in.Enums {
		b.WriteString("\n")
		if in.IncludeDescriptions && e.Doc != "" {
			writeDoc(&b, e.Doc)
		}
		b.WriteString("export enum " + e.Name + " {\n")
		for i, k := range e.Keys {
			b.WriteString("  " + k + " = " + e.Values[i] + ",\n")
		}
		b.WriteString("}\n")
	}

	for _, f := range in.Fragments {
		b.WriteString("\n")
		if in.IncludeDescriptions && f.Description != "" {
			writeDoc(&b, f.Description)
		}
		switch {
		case f.IsAlias && f.Mode == compiler.ModeValidator:
			b.WriteString("export const " + f.Ident + " = " + f.Validator + ";\n")
			b.WriteString("export type " + f.TypeName + " = " + f.TypeText + ";\n")
		case f.Mode == compiler.ModeValidator:
			b.WriteString("export const " + f.Ident + " = " + f.Validator + ";\n")
			if !f.SkipInfer {
				b.WriteString("export type " + f.TypeName + " = z.infer<typeof " + f.Ident + ">;\n")
			}
		default:
			b.WriteString("export type " + f.TypeName + " = " + f.TypeText + ";\n")
		}
	}
	return b.String()
}

func renderStats(b *strings.Builder, s *Stats) {
	b.WriteString("//\n// statistics:\n")
	b.WriteString("//   schemas:        " + itoa(s.Schemas) + "\n")
	b.WriteString("//   validators:     " + itoa(s.Validators) + "\n")
	b.WriteString("//   types:          " + itoa(s.Types) + "\n")
	b.WriteString("//   aliases:        " + itoa(s.Aliases) + "\n")
	b.WriteString("//   enums:          " + itoa(s.Enums) + "\n")
	b.WriteString("//   cycles:         " + itoa(s.Cycles) + "\n")
	b.WriteString("//   request-only:   " + itoa(s.Request) + "\n")
	b.WriteString("//   response-only:  " + itoa(s.Response) + "\n")
	b.WriteString("//   shared:         " + itoa(s.Both) + "\n")
}

func writeDoc(b *strings.Builder, doc string) {
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		b.WriteString("// " + line + "\n")
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
