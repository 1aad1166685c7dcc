package saver

import (
	"strings"

	"nifty-data/internal/model"
)

// PacketSaver is the abstraction for persisting one symbol's normalized
// bars as a single artifact and reading them back in the load stage.
// High-level code injects the implementation; the fetch and load stages
// depend only on this interface.
type PacketSaver interface {
	Save(bars []model.Bar, path string) error
	Load(path string) ([]model.Bar, error)
	Extension() string
}

// NewPacketSaver creates an implementation by format (csv, parquet, json).
// Returns nil if the format is not supported.
func NewPacketSaver(format string) PacketSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}
