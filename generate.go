package zodgen

import (
	"errors"

	"github.com/reoring/zodgen/internal/compiler"
	"github.com/reoring/zodgen/internal/emitter"
	"github.com/reoring/zodgen/internal/resolver"
	"github.com/reoring/zodgen/internal/usage"
	"github.com/reoring/zodgen/openapi"
)

// Result carries the output buffer of one run plus non-fatal warnings the
// compiler collected along the way.
type Result struct {
	Output   string
	Warnings []string
}

// Generate compiles a parsed document into one output buffer. The run is
// all-or-nothing: any error means no text was produced. Structural
// validation happens eagerly, before anything is compiled.
func Generate(doc *openapi.Document, opts Options) (Result, error) {
	if doc == nil || doc.Components == nil || doc.Components.Schemas.Len() == 0 {
		return Result{}, &SpecValidationError{Message: "document has no component schemas"}
	}
	if br := resolver.FirstBrokenRef(doc); br != nil {
		return Result{}, &ReferenceError{Schema: br.Schema, Path: br.Path, Pointer: br.Pointer}
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = resolver.DefaultMaxDepth
	}

	// usage and cycle analysis run once up front; their verdicts are fixed
	// before the first compile call
	usageMap := usage.Analyze(doc, maxDepth)
	cycles := usage.DetectCycles(doc)

	sess, err := compiler.NewSession(doc, opts.toConfig(), usageMap, cycles)
	if err != nil {
		return Result{}, err
	}
	if err := sess.Run(); err != nil {
		var named *compiler.NamedError
		if errors.As(err, &named) {
			return Result{}, &SchemaGenerationError{Schema: named.Name, Err: named.Err}
		}
		return Result{}, &SchemaGenerationError{Err: err}
	}
	if path, found := sess.AliasCycle(); found {
		return Result{}, &CircularReferenceError{Cycle: path}
	}

	fragments := sess.SortedFragments()

	in := emitter.Input{
		Header:              opts.WithHeader,
		IncludeDescriptions: opts.IncludeDescriptions,
		Enums:               sess.Enums,
		Fragments:           fragments,
	}
	if doc.Info != nil {
		in.Title = doc.Info.Title
		in.Version = doc.Info.Version
	}
	if opts.WithStats {
		in.Stats = buildStats(sess, fragments, usageMap, cycles)
	}
	return Result{Output: emitter.Render(in), Warnings: sess.Warnings}, nil
}

func buildStats(sess *compiler.Session, fragments []*compiler.Fragment, usageMap map[string]usage.Context, cycles *usage.Cycles) *emitter.Stats {
	st := &emitter.Stats{
		Schemas: len(fragments),
		Enums:   len(sess.Enums),
		Cycles:  len(cycles.Paths),
	}
	for _, f := range fragments {
		switch {
		case f.IsAlias:
			st.Aliases++
		case f.Mode == compiler.ModeValidator:
			st.Validators++
		default:
			st.Types++
		}
		switch usageMap[f.Name] {
		case usage.ContextRequest:
			st.Request++
		case usage.ContextResponse:
			st.Response++
		case usage.ContextBoth:
			st.Both++
		}
	}
	return st
}
