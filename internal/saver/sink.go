package saver

import (
	"fmt"
	"os"

	"nifty-data/internal/model"
)

// ArtifactSink writes one artifact per symbol per run into Dir. A prior
// run's artifact for the same symbol is overwritten, not appended;
// accumulation across runs is the storage engine's job.
type ArtifactSink struct {
	Dir   string
	Saver PacketSaver
}

// NewArtifactSink creates a sink writing artifacts in ps's format.
func NewArtifactSink(dir string, ps PacketSaver) *ArtifactSink {
	return &ArtifactSink{Dir: dir, Saver: ps}
}

// Write persists one symbol's bars. Writing zero bars is the caller's
// bug, not a supported case.
func (s *ArtifactSink) Write(symbol string, bars []model.Bar) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	path := ArtifactPath(s.Dir, symbol, s.Saver.Extension())
	if err := s.Saver.Save(bars, path); err != nil {
		return fmt.Errorf("save artifact %s: %w", path, err)
	}
	return nil
}
