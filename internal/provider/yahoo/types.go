package yahoo

import (
	"time"

	"nifty-data/internal/model"
)

// chartResponse is the Yahoo v8 chart API envelope.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		GMTOffset            int64  `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Events     *chartEvents `json:"events"`
	Indicators struct {
		Quote []quote `json:"quote"`
	} `json:"indicators"`
}

// quote arrays are index-aligned with Timestamp. Entries are pointers
// because the API reports missing minutes as JSON null.
type quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type chartEvents struct {
	Dividends map[string]dividendEvent `json:"dividends"`
	Splits    map[string]splitEvent    `json:"splits"`
}

type dividendEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

type splitEvent struct {
	Date        int64   `json:"date"`
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
}

// toRawBars flattens one chart result into raw bars. Rows with any missing
// OHLC value are dropped; a missing volume is kept as zero. Chart
// timestamps are epoch seconds, so every bar is zone-aware.
func (cr *chartResult) toRawBars() []model.RawBar {
	if len(cr.Indicators.Quote) == 0 {
		return nil
	}
	q := cr.Indicators.Quote[0]

	dividends := make(map[int64]float64)
	splits := make(map[int64]float64)
	if cr.Events != nil {
		for _, d := range cr.Events.Dividends {
			dividends[d.Date] = d.Amount
		}
		for _, s := range cr.Events.Splits {
			if s.Denominator != 0 {
				splits[s.Date] = s.Numerator / s.Denominator
			}
		}
	}

	bars := make([]model.RawBar, 0, len(cr.Timestamp))
	for i, ts := range cr.Timestamp {
		if i >= len(q.Open) || i >= len(q.High) || i >= len(q.Low) || i >= len(q.Close) {
			break
		}
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}
		var volume int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			volume = *q.Volume[i]
		}
		bars = append(bars, model.RawBar{
			Time:        time.Unix(ts, 0).UTC(),
			Zoned:       true,
			Open:        *q.Open[i],
			High:        *q.High[i],
			Low:         *q.Low[i],
			Close:       *q.Close[i],
			Volume:      volume,
			Dividends:   dividends[ts],
			StockSplits: splits[ts],
		})
	}
	return bars
}
