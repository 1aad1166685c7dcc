package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nifty-data/internal/normalize"
	"nifty-data/internal/provider"
	"nifty-data/internal/saver"
	"nifty-data/internal/symbols"
)

// ErrNoData marks a symbol whose fetch succeeded but returned zero bars.
var ErrNoData = errors.New("no data")

// Options control batching and the deliberate pacing against the
// provider's rate limits. The pauses are backpressure against the
// provider, not performance tuning.
type Options struct {
	DaysBack         int
	BatchSize        int
	InterBatchPause  time.Duration
	InterSymbolPause time.Duration
}

// Result is the outcome for one symbol. Err is nil on success; failures
// are absorbed here and never abort the run.
type Result struct {
	Symbol   string
	Exchange symbols.Exchange
	Window   string
	Bars     int
	Err      error
}

// Fetcher runs the fetch-and-normalize stage: one single-day window per
// symbol, batched, paced, each non-empty result normalized and written as
// an artifact.
type Fetcher struct {
	Provider provider.DataProvider
	Sink     *saver.ArtifactSink
	Opts     Options
}

// NewFetcher wires a fetcher.
func NewFetcher(dp provider.DataProvider, sink *saver.ArtifactSink, opts Options) *Fetcher {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	return &Fetcher{Provider: dp, Sink: sink, Opts: opts}
}

// Window computes the single-day fetch range for sym anchored at runTime.
// The secondary exchange's reference date is shifted back one calendar day
// to account for session-close skew between the two markets at a shared
// wall-clock run time. The range end is exclusive: [D, D+1d).
func Window(sym symbols.Symbol, runTime time.Time, daysBack int) (from, to time.Time) {
	ref := runTime
	if sym.Exchange == symbols.SnP {
		ref = ref.AddDate(0, 0, -1)
	}
	ref = ref.AddDate(0, 0, -daysBack)
	from = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

// Run fetches every symbol of the universe once, anchored at runTime.
// Per-symbol failures are absorbed into the returned results; only
// process-level failures (context cancellation) return an error.
func (f *Fetcher) Run(ctx context.Context, universe []symbols.Symbol, runTime time.Time) ([]Result, error) {
	if len(universe) == 0 {
		slog.Info("no symbols to fetch, skip")
		return nil, nil
	}

	batches := partition(universe, f.Opts.BatchSize)
	slog.Info("processing symbols", "symbols", len(universe), "batches", len(batches))

	results := make([]Result, 0, len(universe))
	for i, batch := range batches {
		slog.Info("batch", "batch", i+1, "total", len(batches))
		if i > 0 {
			time.Sleep(f.Opts.InterBatchPause)
		}
		for _, sym := range batch {
			if err := ctx.Err(); err != nil {
				return results, fmt.Errorf("fetch interrupted: %w", err)
			}
			results = append(results, f.fetchOne(ctx, sym, runTime))
			time.Sleep(f.Opts.InterSymbolPause)
		}
	}

	ok, failed := Tally(results)
	slog.Info("fetch done", "success", ok, "failed", failed)
	if err := writeRunReport(f.Sink.Dir, results); err != nil {
		slog.Warn("could not write run report", "error", err)
	}
	return results, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, sym symbols.Symbol, runTime time.Time) Result {
	from, to := Window(sym, runTime, f.Opts.DaysBack)
	res := Result{
		Symbol:   sym.Ticker,
		Exchange: sym.Exchange,
		Window:   from.Format("2006-01-02") + ".." + to.Format("2006-01-02"),
	}

	raw, err := f.Provider.History(ctx, sym.Ticker, from, to)
	if err != nil {
		res.Err = fmt.Errorf("fetch: %w", err)
		slog.Warn("fetch failed, skipping symbol", "symbol", sym.Ticker, "window", res.Window, "error", err)
		return res
	}
	if len(raw) == 0 {
		res.Err = ErrNoData
		slog.Warn("no data for symbol", "symbol", sym.Ticker, "window", res.Window)
		return res
	}

	bars := normalize.Apply(raw, sym.Exchange)
	if err := f.Sink.Write(sym.Ticker, bars); err != nil {
		res.Err = err
		slog.Warn("artifact write failed, skipping symbol", "symbol", sym.Ticker, "error", err)
		return res
	}

	res.Bars = len(bars)
	slog.Info("fetched", "symbol", sym.Ticker, "window", res.Window, "bars", res.Bars)
	return res
}

// Tally splits results into success and failure counts.
func Tally(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.Err == nil {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}

func partition(list []symbols.Symbol, size int) [][]symbols.Symbol {
	var batches [][]symbols.Symbol
	for i := 0; i < len(list); i += size {
		end := i + size
		if end > len(list) {
			end = len(list)
		}
		batches = append(batches, list[i:end])
	}
	return batches
}
