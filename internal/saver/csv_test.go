package saver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nifty-data/internal/model"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func TestCSVRoundTrip(t *testing.T) {
	loc := kolkata(t)
	bars := []model.Bar{
		{
			Time: time.Date(2024, 1, 10, 9, 15, 0, 0, loc),
			Open: 2900.5, High: 2910, Low: 2899.95, Close: 2905,
			Volume: 120345, Dividends: 0, StockSplits: 0, Exchange: "NSE",
		},
		{
			Time: time.Date(2024, 1, 10, 9, 16, 0, 0, loc),
			Open: 2905, High: 2906, Low: 2901, Close: 2903.25,
			Volume: 98000, Dividends: 1.5, StockSplits: 2, Exchange: "NSE",
		},
	}
	path := filepath.Join(t.TempDir(), "RELIANCE.NS_daily_ohlc.csv")

	require.NoError(t, CSVSaver{}.Save(bars, path))
	got, err := CSVSaver{}.Load(path)
	require.NoError(t, err)

	require.Len(t, got, 2)
	for i := range bars {
		assert.True(t, got[i].Time.Equal(bars[i].Time), "row %d instant", i)
		assert.Equal(t, bars[i].Open, got[i].Open)
		assert.Equal(t, bars[i].High, got[i].High)
		assert.Equal(t, bars[i].Low, got[i].Low)
		assert.Equal(t, bars[i].Close, got[i].Close)
		assert.Equal(t, bars[i].Volume, got[i].Volume)
		assert.Equal(t, bars[i].Dividends, got[i].Dividends)
		assert.Equal(t, bars[i].StockSplits, got[i].StockSplits)
		assert.Equal(t, bars[i].Exchange, got[i].Exchange)
	}
}

func TestCSVLoadLegacyHeader(t *testing.T) {
	// Older artifacts: provider-native column names, no dividends/splits,
	// no stock_exchange, dataframe-style timestamps, float volumes.
	content := "Datetime,Open,High,Low,Close,Volume\n" +
		"2024-01-10 09:15:00+05:30,100,101,99,100.5,1200.0\n"
	path := filepath.Join(t.TempDir(), "TCS.NS_daily_ohlc.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := CSVSaver{}.Load(path)
	require.NoError(t, err)

	require.Len(t, got, 1)
	want := time.Date(2024, 1, 10, 9, 15, 0, 0, kolkata(t))
	assert.True(t, got[0].Time.Equal(want))
	assert.Equal(t, int64(1200), got[0].Volume)
	assert.Equal(t, 0.0, got[0].Dividends, "missing dividends defaults to zero")
	assert.Equal(t, 0.0, got[0].StockSplits, "missing stock_splits defaults to zero")
	assert.Equal(t, "", got[0].Exchange, "missing stock_exchange defaults to unknown")
}

func TestCSVLoadShuffledColumns(t *testing.T) {
	content := "close,volume,date_time,open,low,high,stock_exchange\n" +
		"10.5,50,2024-01-09T09:30:00-05:00,10,9.9,10.6,SnP\n"
	path := filepath.Join(t.TempDir(), "AAPL_daily_ohlc.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := CSVSaver{}.Load(path)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Open)
	assert.Equal(t, 10.5, got[0].Close)
	assert.Equal(t, "SnP", got[0].Exchange)
}

func TestCSVLoadRejectsMissingDateTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "X_daily_ohlc.csv")
	require.NoError(t, os.WriteFile(path, []byte("open,close\n1,2\n"), 0644))

	_, err := CSVSaver{}.Load(path)
	assert.Error(t, err)
}

func TestCSVLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "X_daily_ohlc.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	got, err := CSVSaver{}.Load(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVLoadHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "X_daily_ohlc.csv")
	require.NoError(t, os.WriteFile(path, []byte("date_time,open,high,low,close,volume\n"), 0644))

	got, err := CSVSaver{}.Load(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
