package normalize

import (
	"time"

	"nifty-data/internal/model"
	"nifty-data/internal/symbols"
)

// Apply converts raw provider bars into the canonical schema for one
// exchange: the exchange tag is attached and every timestamp ends up
// zone-aware in the exchange's local zone.
func Apply(raw []model.RawBar, exchange symbols.Exchange) []model.Bar {
	loc := exchange.Location()
	bars := make([]model.Bar, 0, len(raw))
	for _, r := range raw {
		bars = append(bars, model.Bar{
			Time:        localize(r.Time, r.Zoned, loc),
			Open:        r.Open,
			High:        r.High,
			Low:         r.Low,
			Close:       r.Close,
			Volume:      r.Volume,
			Dividends:   r.Dividends,
			StockSplits: r.StockSplits,
			Exchange:    string(exchange),
		})
	}
	return bars
}

// localize interprets a naive wall-clock reading in loc. Zone-aware
// instants are converted instead of re-interpreted; the two cases differ
// because some fetch modes report bare wall-clock times and others epochs.
func localize(t time.Time, zoned bool, loc *time.Location) time.Time {
	if zoned {
		return t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
