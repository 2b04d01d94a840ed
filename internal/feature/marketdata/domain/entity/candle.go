// Package entity defines the domain models for the marketdata feature.
package entity

// Candle is one OHLCV row as delivered by the upstream provider, before any
// rounding. Date is the provider's own label for the bar and is passed through
// untouched.
type Candle struct {
	Date   string  // e.g. "2025-01-15 00:00:00-05:00"
	Open   float64 // Opening price
	High   float64 // Highest price during this period
	Low    float64 // Lowest price during this period
	Close  float64 // Closing price
	Volume float64 // Trading volume; some providers report it as a float
}

// HistoryPoint is a Candle after normalization: prices rounded to two places,
// volume truncated to an integer.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}
