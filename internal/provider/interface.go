package provider

import (
	"context"
	"time"

	"nifty-data/internal/model"
)

// DataProvider is the abstraction used by the application when accessing a
// market data source. Implementations are responsible for their own retry
// logic and resource cleanup. History's range end is exclusive.
type DataProvider interface {
	GetName() string
	History(ctx context.Context, symbol string, from, to time.Time) ([]model.RawBar, error)
	Close() error
}
