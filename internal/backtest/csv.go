package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteTransactionsCSV writes the trade ledger to path.
func WriteTransactionsCSV(path string, transactions []Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"time",
		"ticker",
		"side",
		"price",
		"shares",
		"notional",
		"transaction_cost",
		"pnl",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range transactions {
		row := []string{
			fmtTime(t.Time),
			t.Ticker,
			string(t.Side),
			fmtFloat(t.Price),
			strconv.FormatInt(t.Shares, 10),
			fmtFloat(t.Notional),
			fmtFloat(t.TransactionCost),
			fmtFloat(t.PnL),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteSnapshotsCSV writes the portfolio tracker to path.
func WriteSnapshotsCSV(path string, snapshots []Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"time",
		"bid_count",
		"position_count",
		"cash",
		"positions_value",
		"total_value",
		"benchmark",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range snapshots {
		row := []string{
			fmtTime(s.Time),
			strconv.Itoa(s.BidCount),
			strconv.Itoa(s.PositionCount),
			fmtFloat(s.Cash),
			fmtFloat(s.PositionsValue),
			fmtFloat(s.TotalValue),
			fmtFloat(s.Benchmark),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
