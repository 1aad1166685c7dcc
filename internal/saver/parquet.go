package saver

import (
	"github.com/parquet-go/parquet-go"

	"nifty-data/internal/model"
)

// ParquetSaver stores an artifact as Parquet.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(bars []model.Bar, path string) error {
	return parquet.WriteFile(path, bars)
}

func (ParquetSaver) Load(path string) ([]model.Bar, error) {
	return parquet.ReadFile[model.Bar](path)
}
