package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{client: srv.Client(), baseURL: srv.URL, retryDelay: 0}
}

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "RELIANCE.NS", "exchangeTimezoneName": "Asia/Kolkata"},
      "timestamp": [1704857700, 1704857760, 1704857820],
      "events": {
        "dividends": {"1704857760": {"amount": 9.0, "date": 1704857760}},
        "splits": {"1704857820": {"date": 1704857820, "numerator": 2, "denominator": 1}}
      },
      "indicators": {
        "quote": [{
          "open":   [2900.5, null, 2903.0],
          "high":   [2910.0, 2905.0, 2904.0],
          "low":    [2899.0, 2901.0, 2902.0],
          "close":  [2905.0, 2903.5, 2903.5],
          "volume": [120345, 98000, null]
        }]
      }
    }],
    "error": null
  }
}`

func TestHistoryMapsBars(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, chartBody)
	})

	from := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	bars, err := c.History(context.Background(), "RELIANCE.NS", from, from.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/RELIANCE.NS", gotPath)
	assert.Contains(t, gotQuery, "interval=1m")
	assert.Contains(t, gotQuery, "period1=1704844800")

	// The second row has a null open and is dropped.
	require.Len(t, bars, 2)
	assert.True(t, bars[0].Time.Equal(time.Unix(1704857700, 0)))
	assert.True(t, bars[0].Zoned)
	assert.Equal(t, 2900.5, bars[0].Open)
	assert.Equal(t, int64(120345), bars[0].Volume)
	assert.Equal(t, 0.0, bars[0].Dividends)

	assert.Equal(t, int64(0), bars[1].Volume, "null volume kept as zero")
	assert.Equal(t, 2.0, bars[1].StockSplits, "split event merged by timestamp")
}

func TestHistoryAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`)
	})

	_, err := c.History(context.Background(), "GONE.NS", time.Now(), time.Now())
	assert.ErrorContains(t, err, "Not Found")
}

func TestHistoryEmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	})

	bars, err := c.History(context.Background(), "QUIET.NS", time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestHistoryRetriesOn429(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, chartBody)
	})

	bars, err := c.History(context.Background(), "RELIANCE.NS", time.Now(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, bars, 2)
}

func TestHistoryGivesUpAfterRetries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.History(context.Background(), "RELIANCE.NS", time.Now(), time.Now())
	assert.ErrorContains(t, err, "rate limit")
}

func TestHistoryNonOKStatusFailsFast(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "nope", http.StatusNotFound)
	})

	_, err := c.History(context.Background(), "X", time.Now(), time.Now())
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
