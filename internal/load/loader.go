package load

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"nifty-data/internal/model"
	"nifty-data/internal/saver"
)

// ErrEmptyArtifact marks an artifact that parsed to zero rows.
var ErrEmptyArtifact = errors.New("artifact has no rows")

// Store is the persistence boundary of the load stage. UpsertBars must be
// idempotent on (symbol, timestamp) and commit per call.
type Store interface {
	UpsertBars(ctx context.Context, symbol string, bars []model.Bar) (int64, error)
}

// Loader reads every artifact in Dir, resolves each symbol's display
// identity (sidecar metadata wins over the file-name-derived base symbol)
// and upserts the rows, one transaction per artifact.
type Loader struct {
	Dir   string
	Saver saver.PacketSaver
	Store Store
}

// NewLoader wires a loader.
func NewLoader(dir string, ps saver.PacketSaver, store Store) *Loader {
	return &Loader{Dir: dir, Saver: ps, Store: store}
}

// Summary reports items attempted vs. actually loaded. Rows counts rows
// read from artifacts; Inserted counts rows the store actually added
// (conflicts excluded).
type Summary struct {
	Attempted int
	Loaded    int
	Rows      int64
	Inserted  int64
}

// sidecarMetadata overrides the display identity an artifact persists
// under. Associated 1:1 with the artifact by naming convention.
type sidecarMetadata struct {
	DescriptiveSymbol string `json:"descriptive_symbol"`
}

// Run loads every artifact. Unreadable or empty artifacts are skipped and
// reported; a store failure aborts the stage, with every artifact already
// committed staying durable.
func (l *Loader) Run(ctx context.Context) (Summary, error) {
	paths, err := filepath.Glob(saver.ArtifactGlob(l.Dir, l.Saver.Extension()))
	if err != nil {
		return Summary{}, fmt.Errorf("scan artifacts: %w", err)
	}

	sum := Summary{Attempted: len(paths)}
	for _, path := range paths {
		bars, err := l.Saver.Load(path)
		if err != nil {
			slog.Warn("unreadable artifact, skipping", "path", path, "error", err)
			continue
		}
		if len(bars) == 0 {
			slog.Warn("skipping artifact", "path", path, "error", ErrEmptyArtifact)
			continue
		}

		symbol := l.resolveSymbol(path)
		inserted, err := l.Store.UpsertBars(ctx, symbol, bars)
		if err != nil {
			return sum, fmt.Errorf("load %s: %w", path, err)
		}

		sum.Loaded++
		sum.Rows += int64(len(bars))
		sum.Inserted += inserted
		slog.Info("loaded artifact", "path", path, "symbol", symbol, "rows", len(bars), "inserted", inserted)
	}

	slog.Info("load done", "attempted", sum.Attempted, "loaded", sum.Loaded, "rows", sum.Rows, "inserted", sum.Inserted)
	return sum, nil
}

// resolveSymbol returns the identity to persist under: the sidecar's
// descriptive symbol when present and well-formed, the file-name-derived
// base symbol otherwise. A malformed sidecar is a warning, never fatal.
func (l *Loader) resolveSymbol(artifactPath string) string {
	base := saver.BaseSymbol(artifactPath)

	sidecarPath := saver.SidecarPath(artifactPath)
	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		return base
	}
	var meta sidecarMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		slog.Warn("could not parse sidecar, falling back to base symbol", "path", sidecarPath, "base", base, "error", err)
		return base
	}
	if meta.DescriptiveSymbol == "" {
		return base
	}
	return meta.DescriptiveSymbol
}
