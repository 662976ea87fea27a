package analysis

import (
	"testing"

	"trade-backtest/internal/backtest"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	result := &backtest.Result{
		InitialCash: 100000,
		FinalCash:   110000,
		Transactions: []backtest.Transaction{
			{PnL: 0},
			{PnL: 7000},
			{PnL: 3000},
		},
		Snapshots: []backtest.Snapshot{
			{TotalValue: 100000, Benchmark: 100000},
			{TotalValue: 120000, Benchmark: 105000},
			{TotalValue: 90000, Benchmark: 95000},
			{TotalValue: 110000, Benchmark: 104000},
		},
	}

	p := Summarize(result)
	require.InDelta(t, 100000.0, p.InitialValue, 1e-9)
	require.InDelta(t, 110000.0, p.FinalValue, 1e-9)
	require.InDelta(t, 0.10, p.TotalReturn, 1e-9)
	require.InDelta(t, 104000.0, p.BenchmarkValue, 1e-9)
	require.InDelta(t, 0.04, p.BenchmarkReturn, 1e-9)
	require.Equal(t, 3, p.Trades)
	require.InDelta(t, 10000.0, p.RealizedPnL, 1e-9)
	// Peak 120k down to 90k.
	require.InDelta(t, 0.25, p.MaxDrawdown, 1e-9)
}

func TestSummarize_NoSnapshots(t *testing.T) {
	p := Summarize(&backtest.Result{InitialCash: 1000, FinalCash: 1000})
	require.InDelta(t, 0.0, p.TotalReturn, 1e-9)
	require.InDelta(t, 0.0, p.MaxDrawdown, 1e-9)
	require.Equal(t, 0, p.Trades)
}
