// Command zodgen generates TypeScript types and Zod validators from OpenAPI
// documents. Argument handling, output writing and exit codes live here;
// everything else is the library's job.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/reoring/zodgen"
	"github.com/reoring/zodgen/openapi"
)

// envConfig carries the environment-variable defaults the flags fall back
// to.
type envConfig struct {
	Output   string `env:"ZODGEN_OUTPUT" envDefault:"."`
	Parallel int    `env:"ZODGEN_PARALLEL" envDefault:"1"`
}

func main() {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		fmt.Fprintln(os.Stderr, "zodgen:", err)
		os.Exit(2)
	}

	var (
		outDir       = flag.String("o", ec.Output, "output directory")
		parallel     = flag.Int("parallel", ec.Parallel, "max documents generated concurrently")
		mode         = flag.String("mode", "validator", "emission mode: validator|types")
		enums        = flag.String("enums", "closed", "enum representation: closed|native|literals")
		objectMode   = flag.String("objects", "normal", "object openness: strict|normal|loose")
		filter       = flag.String("filter", "all", "schema filter: all|request|response")
		prefix       = flag.String("prefix", "", "validator identifier prefix")
		suffix       = flag.String("suffix", "", "validator identifier suffix")
		nullable     = flag.Bool("default-nullable", false, "treat schemas without an explicit nullable signal as nullable")
		descriptions = flag.Bool("descriptions", false, "emit schema descriptions as comments")
		stats        = flag.Bool("stats", false, "emit a statistics block")
		noHeader     = flag.Bool("no-header", false, "omit the generated-file header")
		verbose      = flag.Bool("v", false, "verbose logging")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts, err := buildOptions(*mode, *enums, *objectMode, *filter, *prefix, *suffix, *nullable, *descriptions, *stats, !*noHeader)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zodgen:", err)
		os.Exit(2)
	}

	// a parse failure is recorded like any other run failure and does not
	// block sibling documents
	loadFailed := 0
	runs := make([]zodgen.Run, 0, flag.NArg())
	for _, path := range flag.Args() {
		doc, err := openapi.LoadFile(path)
		if err != nil {
			loadFailed++
			perr := &zodgen.DocumentParseError{Path: path, Err: err}
			fmt.Fprintf(os.Stderr, "zodgen: %v\n", perr)
			log.Error("load failed", "path", path, "error", err.Error())
			continue
		}
		runs = append(runs, zodgen.Run{Name: path, Document: doc, Options: opts})
	}

	summary := zodgen.RunBatch(context.Background(), runs, *parallel, log)
	summary.Failed += loadFailed

	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "zodgen: %s: %v\n", r.Name, r.Err)
			continue
		}
		for _, w := range r.Result.Warnings {
			fmt.Fprintf(os.Stderr, "zodgen: %s: warning: %s\n", r.Name, w)
		}
		out := outPath(*outDir, r.Name)
		if err := os.WriteFile(out, []byte(r.Result.Output), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "zodgen: write %s: %v\n", out, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "zodgen: wrote %s\n", out)
	}

	fmt.Fprintf(os.Stderr, "zodgen: %d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	if !summary.OK() {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `zodgen - generate TypeScript + Zod from OpenAPI component schemas

Usage:
  zodgen [flags] spec.yaml [more-specs...]

Flags:`)
	flag.PrintDefaults()
}

func buildOptions(mode, enums, objects, filter, prefix, suffix string, nullable, descriptions, stats, header bool) (zodgen.Options, error) {
	opts := zodgen.DefaultOptions()
	opts.NamePrefix = prefix
	opts.NameSuffix = suffix
	opts.DefaultNullable = nullable
	opts.IncludeDescriptions = descriptions
	opts.WithStats = stats
	opts.WithHeader = header

	switch mode {
	case "validator":
		opts.Mode = zodgen.EmitValidator
	case "types":
		opts.Mode = zodgen.EmitNativeType
	default:
		return opts, fmt.Errorf("unknown mode %q", mode)
	}
	switch enums {
	case "closed":
		opts.Enums = zodgen.EnumClosed
	case "native":
		opts.Enums = zodgen.EnumNative
	case "literals":
		opts.Enums = zodgen.EnumLiterals
	default:
		return opts, fmt.Errorf("unknown enum representation %q", enums)
	}
	switch objects {
	case "normal":
		opts.ObjectMode = zodgen.ObjectNormal
	case "strict":
		opts.ObjectMode = zodgen.ObjectStrict
	case "loose":
		opts.ObjectMode = zodgen.ObjectLoose
	default:
		return opts, fmt.Errorf("unknown object mode %q", objects)
	}
	switch filter {
	case "all":
		opts.Filter = zodgen.SchemasAll
	case "request":
		opts.Filter = zodgen.SchemasRequest
	case "response":
		opts.Filter = zodgen.SchemasResponse
	default:
		return opts, fmt.Errorf("unknown filter %q", filter)
	}
	return opts, nil
}

func outPath(dir, input string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(dir, base+".ts")
}
