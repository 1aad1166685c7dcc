package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"nifty-data/internal/model"
)

// Config enumerates the recognized connection options. Values come from
// the environment (DB_* variables) via env.Parse, never from globals.
type Config struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	Database string `env:"DB_NAME" envDefault:"stocks"`
	Username string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"require"`

	MaxConns       int32         `env:"DB_MAX_CONNS" envDefault:"4"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
}

func (c Config) connString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// Store persists normalized bars into the stock_data table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a connection pool and verifies connectivity.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.connString())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pgxCfg.MaxConns = cfg.MaxConns
	pgxCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const (
	insertColumns = "stock_symbol, date_time, open, high, low, close, volume, dividends, stock_splits, stock_exchange"
	argsPerRow    = 10

	// Keeps each statement well under Postgres' 65535-parameter cap.
	maxRowsPerStatement = 1000
)

// UpsertBars inserts all bars for one symbol inside a single transaction.
// Rows whose (stock_symbol, date_time) key already exists are skipped by
// the ON CONFLICT clause, so reloading the same artifact is idempotent.
// Returns the number of rows actually inserted.
func (s *Store) UpsertBars(ctx context.Context, symbol string, bars []model.Bar) (int64, error) {
	if len(bars) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for start := 0; start < len(bars); start += maxRowsPerStatement {
		end := start + maxRowsPerStatement
		if end > len(bars) {
			end = len(bars)
		}
		stmt, args := buildUpsert(symbol, bars[start:end])
		tag, err := tx.Exec(ctx, stmt, args...)
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", symbol, err)
		}
		inserted += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit %s: %w", symbol, err)
	}
	return inserted, nil
}

// buildUpsert renders the bulk insert statement for one chunk of bars.
func buildUpsert(symbol string, bars []model.Bar) (string, []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO stock_data (%s) VALUES ", insertColumns)

	args := make([]any, 0, len(bars)*argsPerRow)
	for i, bar := range bars {
		if i > 0 {
			b.WriteString(", ")
		}
		base := i * argsPerRow
		b.WriteByte('(')
		for j := 1; j <= argsPerRow; j++ {
			if j > 1 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", base+j)
		}
		b.WriteByte(')')
		args = append(args,
			symbol, bar.Time, bar.Open, bar.High, bar.Low,
			bar.Close, bar.Volume, bar.Dividends, bar.StockSplits, bar.Exchange,
		)
	}

	b.WriteString(" ON CONFLICT (stock_symbol, date_time) DO NOTHING")
	return b.String(), args
}
