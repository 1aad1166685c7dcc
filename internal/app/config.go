package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"nifty-data/internal/storage/postgres"
	"nifty-data/internal/symbols"
)

// Config holds application configuration from env.
type Config struct {
	DataDir    string `env:"DATA_DIR" envDefault:"nifty_500_data"`
	SaveFormat string `env:"SAVE_FORMAT" envDefault:"csv"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"` // debug | info | warn | error

	// PastDays shifts every symbol's reference date back N calendar days.
	PastDays int `env:"PAST_DAYS" envDefault:"0"`

	BatchSize        int           `env:"BATCH_SIZE" envDefault:"20"`
	InterBatchPause  time.Duration `env:"INTER_BATCH_PAUSE" envDefault:"5s"`
	InterSymbolPause time.Duration `env:"INTER_SYMBOL_PAUSE" envDefault:"1s"`

	NiftyFile string `env:"NIFTY_SYMBOLS_FILE" envDefault:"nifty_500_symbols.txt"`
	SP500File string `env:"SP500_SYMBOLS_FILE" envDefault:"sp500_symbols.txt"`

	DB postgres.Config
}

// LoadConfig reads config from environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// SymbolSources returns the configured symbol-list sources: NSE tickers
// get the ".NS" market suffix, S&P tickers none.
func (c *Config) SymbolSources() []symbols.Source {
	return []symbols.Source{
		{Path: c.NiftyFile, Exchange: symbols.NSE, Suffix: ".NS"},
		{Path: c.SP500File, Exchange: symbols.SnP},
	}
}
