package model

import (
	"fmt"
	"math"
	"time"
)

// PriceSeries is the tabular market input: one row per timestamp, one
// float64 column per ticker. The index must be strictly increasing and the
// table must not contain NaN values; both are fatal at construction, so a
// backtest can never start on malformed data.
//
// The same type carries the optional auxiliary table (e.g. OHLCV detail for
// strategies); in that case the "tickers" are just column names.
type PriceSeries struct {
	times   []time.Time
	tickers []string
	cols    map[string]int
	rows    [][]float64
}

func NewPriceSeries(times []time.Time, tickers []string, rows [][]float64) (*PriceSeries, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("price series is empty")
	}
	if len(rows) != len(times) {
		return nil, fmt.Errorf("price series has %d rows but %d timestamps", len(rows), len(times))
	}
	cols := make(map[string]int, len(tickers))
	for i, t := range tickers {
		if t == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, ok := cols[t]; ok {
			return nil, fmt.Errorf("duplicate column %q", t)
		}
		cols[t] = i
	}
	for i := range times {
		if i > 0 && !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("index is not strictly increasing at row %d (%s)", i, times[i])
		}
		if len(rows[i]) != len(tickers) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(rows[i]), len(tickers))
		}
		for j, v := range rows[i] {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("null value at row %d column %q", i, tickers[j])
			}
		}
	}
	return &PriceSeries{times: times, tickers: tickers, cols: cols, rows: rows}, nil
}

func (s *PriceSeries) Len() int { return len(s.times) }

// Time returns the timestamp of row i.
func (s *PriceSeries) Time(i int) time.Time { return s.times[i] }

// Tickers returns the column names in their original order.
func (s *PriceSeries) Tickers() []string { return s.tickers }

func (s *PriceSeries) HasTicker(ticker string) bool {
	_, ok := s.cols[ticker]
	return ok
}

// Price returns the value for ticker at row i. The second return is false
// for unknown tickers.
func (s *PriceSeries) Price(i int, ticker string) (float64, bool) {
	j, ok := s.cols[ticker]
	if !ok {
		return 0, false
	}
	return s.rows[i][j], true
}

// Row returns the values of row i in column order.
func (s *PriceSeries) Row(i int) []float64 { return s.rows[i] }

// Column returns all values of one ticker in time order.
func (s *PriceSeries) Column(ticker string) ([]float64, bool) {
	j, ok := s.cols[ticker]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(s.rows))
	for i := range s.rows {
		out[i] = s.rows[i][j]
	}
	return out, true
}

// Prefix returns a view over the first n rows, sharing the backing arrays.
// The engine hands Prefix(i+1) to the strategy at step i, so the strategy
// sees history up to and including the current timestamp and nothing after.
func (s *PriceSeries) Prefix(n int) *PriceSeries {
	if n > len(s.times) {
		n = len(s.times)
	}
	return &PriceSeries{
		times:   s.times[:n],
		tickers: s.tickers,
		cols:    s.cols,
		rows:    s.rows[:n],
	}
}

// SameIndex reports whether other has the exact same timestamp index.
// The auxiliary table must satisfy this against the price series.
func (s *PriceSeries) SameIndex(other *PriceSeries) bool {
	if other == nil || len(s.times) != len(other.times) {
		return false
	}
	for i := range s.times {
		if !s.times[i].Equal(other.times[i]) {
			return false
		}
	}
	return true
}
