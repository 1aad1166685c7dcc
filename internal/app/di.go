package app

import (
	"context"
	"fmt"

	"nifty-data/internal/fetch"
	"nifty-data/internal/load"
	"nifty-data/internal/provider"
	"nifty-data/internal/provider/yahoo"
	"nifty-data/internal/saver"
	"nifty-data/internal/storage/postgres"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvidePacketSaver creates PacketSaver from config (for Wire).
// Returns error if SaveFormat is not supported.
func ProvidePacketSaver(cfg *Config) (saver.PacketSaver, error) {
	ps := saver.NewPacketSaver(cfg.SaveFormat)
	if ps == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: csv, parquet, json)", cfg.SaveFormat)
	}
	return ps, nil
}

// ProvideDataProvider creates the market data provider (for Wire).
// The cleanup function closes idle connections.
func ProvideDataProvider() (*yahoo.Client, func(), error) {
	c, err := yahoo.NewClient()
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = c.Close() }, nil
}

// ProvideSink creates the artifact sink (for Wire).
func ProvideSink(cfg *Config, ps saver.PacketSaver) *saver.ArtifactSink {
	return saver.NewArtifactSink(cfg.DataDir, ps)
}

// ProvideFetcher wires the fetch stage (for Wire).
func ProvideFetcher(cfg *Config, dp provider.DataProvider, sink *saver.ArtifactSink) *fetch.Fetcher {
	return fetch.NewFetcher(dp, sink, fetch.Options{
		DaysBack:         cfg.PastDays,
		BatchSize:        cfg.BatchSize,
		InterBatchPause:  cfg.InterBatchPause,
		InterSymbolPause: cfg.InterSymbolPause,
	})
}

// ProvideStore creates the Postgres store (for Wire). The cleanup
// function closes the pool.
func ProvideStore(ctx context.Context, cfg *Config) (*postgres.Store, func(), error) {
	s, err := postgres.NewStore(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

// ProvideLoader wires the load stage (for Wire).
func ProvideLoader(cfg *Config, ps saver.PacketSaver, store *postgres.Store) *load.Loader {
	return load.NewLoader(cfg.DataDir, ps, store)
}
