package model

import "time"

// RawBar is one provider-native OHLCV row. Zoned reports whether the
// source attached zone information to Time; when false, Time carries the
// source's wall-clock reading and must be localized before persistence.
type RawBar struct {
	Time        time.Time
	Zoned       bool
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      int64
	Dividends   float64
	StockSplits float64
}

// Bar is the canonical normalized bar shared by the fetch stage, the
// artifact savers and the loader (csv, json, parquet serialization).
// Time is always zone-aware in the exchange's local zone.
type Bar struct {
	Time        time.Time `json:"date_time" parquet:"date_time"`
	Open        float64   `json:"open" parquet:"open"`
	High        float64   `json:"high" parquet:"high"`
	Low         float64   `json:"low" parquet:"low"`
	Close       float64   `json:"close" parquet:"close"`
	Volume      int64     `json:"volume" parquet:"volume"`
	Dividends   float64   `json:"dividends" parquet:"dividends"`
	StockSplits float64   `json:"stock_splits" parquet:"stock_splits"`
	Exchange    string    `json:"stock_exchange" parquet:"stock_exchange"`
}
