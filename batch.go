package zodgen

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/reoring/zodgen/openapi"
)

// Run describes one document to generate in a batch.
type Run struct {
	Name     string
	Document *openapi.Document
	Options  Options
}

// RunResult is the recorded outcome of one run: its output on success, or
// the failure message. Runs are isolated; one failing never aborts its
// siblings.
type RunResult struct {
	Name   string
	Result Result
	Err    error
}

// Summary aggregates a whole batch.
type Summary struct {
	Results   []RunResult
	Succeeded int
	Failed    int
}

// OK reports whether every member of the batch succeeded.
func (s Summary) OK() bool { return s.Failed == 0 }

// RunBatch executes the runs either strictly one at a time (parallel <= 1)
// or with bounded fan-out. Sequential mode aggregates incrementally;
// parallel mode aggregates after every run has settled. The context gates
// launching only: a started run always finishes and either yields a whole
// buffer or nothing.
func RunBatch(ctx context.Context, runs []Run, parallel int, log *slog.Logger) Summary {
	if log == nil {
		log = slog.Default()
	}
	results := make([]RunResult, len(runs))

	if parallel <= 1 {
		for i, r := range runs {
			if err := ctx.Err(); err != nil {
				results[i] = RunResult{Name: r.Name, Err: err}
				continue
			}
			results[i] = runOne(r, log)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(parallel)
		for i, r := range runs {
			i, r := i, r
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					results[i] = RunResult{Name: r.Name, Err: err}
					return nil
				}
				results[i] = runOne(r, log)
				return nil
			})
		}
		// workers never return errors; failures live in the results
		_ = g.Wait()
	}

	var summary Summary
	summary.Results = results
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// runOne isolates a single run, converting a panic into a recorded failure
// so sibling runs keep going.
func runOne(r Run, log *slog.Logger) (out RunResult) {
	out.Name = r.Name
	defer func() {
		if rec := recover(); rec != nil {
			out.Err = fmt.Errorf("zodgen: run %s panicked: %v", r.Name, rec)
			log.Error("run panicked", "name", r.Name, "panic", rec)
		}
	}()
	res, err := Generate(r.Document, r.Options)
	if err != nil {
		out.Err = err
		log.Error("generation failed", "name", r.Name, "error", err.Error())
		return out
	}
	out.Result = res
	log.Info("generated", "name", r.Name, "bytes", len(res.Output), "warnings", len(res.Warnings))
	return out
}
