package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nifty-data/internal/fetch"
	"nifty-data/internal/load"
	"nifty-data/internal/symbols"
)

// FetchStage is the fetch-and-normalize half of the pipeline.
type FetchStage interface {
	Run(ctx context.Context, universe []symbols.Symbol, runTime time.Time) ([]fetch.Result, error)
}

// LoadStage is the artifact-to-storage half of the pipeline.
type LoadStage interface {
	Run(ctx context.Context) (load.Summary, error)
}

// RunPipeline sequences Fetch → Load. A stage-level failure aborts the
// run; the load stage never starts after a failed fetch stage. Per-symbol
// and per-artifact failures stay inside the stages.
func RunPipeline(ctx context.Context, fetcher FetchStage, loader LoadStage, universe []symbols.Symbol) error {
	slog.Info("fetch stage start", "symbols", len(universe))
	results, err := fetcher.Run(ctx, universe, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("fetch stage: %w", err)
	}
	ok, failed := fetch.Tally(results)
	slog.Info("fetch stage done", "success", ok, "failed", failed)

	slog.Info("load stage start")
	sum, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("load stage: %w", err)
	}
	slog.Info("load stage done", "attempted", sum.Attempted, "loaded", sum.Loaded, "inserted", sum.Inserted)
	return nil
}
