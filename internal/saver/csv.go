package saver

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nifty-data/internal/model"
)

// CSVSaver stores an artifact as CSV with the canonical header. Reads are
// header-order-insensitive and also accept the legacy provider column
// names (Datetime, Open, ... , Stock Splits); the optional dividends,
// stock_splits and stock_exchange columns default when absent so older
// artifacts stay loadable.
type CSVSaver struct{}

var csvHeader = []string{
	"date_time", "open", "high", "low", "close",
	"volume", "dividends", "stock_splits", "stock_exchange",
}

// legacyColumns maps provider-native column names onto canonical ones.
var legacyColumns = map[string]string{
	"Datetime":     "date_time",
	"Open":         "open",
	"High":         "high",
	"Low":          "low",
	"Close":        "close",
	"Volume":       "volume",
	"Dividends":    "dividends",
	"Stock Splits": "stock_splits",
}

// timeLayouts accepted on read. RFC3339 is what Save writes; the second
// form is what dataframe-style tooling emits.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05-07:00",
}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(bars []model.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, b := range bars {
		if err := w.Write([]string{
			b.Time.Format(time.RFC3339),
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			strconv.FormatInt(b.Volume, 10),
			floatStr(b.Dividends),
			floatStr(b.StockSplits),
			b.Exchange,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (CSVSaver) Load(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if canonical, ok := legacyColumns[name]; ok {
			name = canonical
		}
		cols[name] = i
	}
	if _, ok := cols["date_time"]; !ok {
		return nil, fmt.Errorf("csv %s: missing date_time column", path)
	}

	bars := make([]model.Bar, 0, len(records)-1)
	for _, rec := range records[1:] {
		b, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("csv %s: %w", path, err)
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func parseRow(rec []string, cols map[string]int) (model.Bar, error) {
	var b model.Bar
	var err error

	b.Time, err = parseTime(field(rec, cols, "date_time"))
	if err != nil {
		return b, err
	}
	if b.Open, err = parseFloat(field(rec, cols, "open")); err != nil {
		return b, err
	}
	if b.High, err = parseFloat(field(rec, cols, "high")); err != nil {
		return b, err
	}
	if b.Low, err = parseFloat(field(rec, cols, "low")); err != nil {
		return b, err
	}
	if b.Close, err = parseFloat(field(rec, cols, "close")); err != nil {
		return b, err
	}
	if b.Volume, err = parseVolume(field(rec, cols, "volume")); err != nil {
		return b, err
	}
	// Optional columns: absent or blank means zero / unknown.
	if b.Dividends, err = parseFloat(field(rec, cols, "dividends")); err != nil {
		return b, err
	}
	if b.StockSplits, err = parseFloat(field(rec, cols, "stock_splits")); err != nil {
		return b, err
	}
	b.Exchange = field(rec, cols, "stock_exchange")
	return b, nil
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date_time %q", s)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseVolume tolerates float-formatted volumes ("1200.0") seen in
// provider exports.
func parseVolume(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable volume %q", s)
	}
	return int64(f), nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
