//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"nifty-data/internal/app"
	"nifty-data/internal/fetch"
	"nifty-data/internal/load"
	"nifty-data/internal/provider"
	"nifty-data/internal/provider/yahoo"
)

// App holds application dependencies built by Wire.
type App struct {
	Config  *app.Config
	Fetcher *fetch.Fetcher
	Loader  *load.Loader
}

// InitializeApp builds App via Wire. The returned cleanup closes the
// provider and the store pool.
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvidePacketSaver,
		app.ProvideDataProvider,
		wire.Bind(new(provider.DataProvider), new(*yahoo.Client)),
		app.ProvideSink,
		app.ProvideFetcher,
		app.ProvideStore,
		app.ProvideLoader,
		wire.Struct(new(App), "Config", "Fetcher", "Loader"),
	)
	return nil, nil, nil
}
