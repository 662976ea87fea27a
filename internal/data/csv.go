// Package data loads tabular market inputs from disk.
package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"trade-backtest/internal/model"
)

// timeLayouts are tried in order when parsing the index column.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadSeriesCSV reads a wide-format CSV — first column timestamps, one
// column per ticker — into a validated PriceSeries. Index and value
// problems surface through model.NewPriceSeries and are fatal.
func LoadSeriesCSV(path string) (*model.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: want a timestamp column plus at least one ticker column", path)
	}
	tickers := header[1:]

	times := make([]time.Time, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, i+1, len(rec), len(header))
		}
		ts, err := parseTime(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+1, err)
		}
		row := make([]float64, len(tickers))
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %q: %w", path, i+1, tickers[j], err)
			}
			row[j] = v
		}
		times = append(times, ts)
		rows = append(rows, row)
	}

	return model.NewPriceSeries(times, tickers, rows)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
