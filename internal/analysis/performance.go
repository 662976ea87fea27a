// Package analysis rolls up run ledgers into summary statistics.
package analysis

import (
	"trade-backtest/internal/backtest"
)

// Performance summarizes a snapshot ledger against its buy-and-hold
// benchmark. Returns are fractional (0.05 == +5%).
type Performance struct {
	InitialValue    float64
	FinalValue      float64
	TotalReturn     float64
	BenchmarkValue  float64
	BenchmarkReturn float64
	MaxDrawdown     float64
	Trades          int
	RealizedPnL     float64
}

// Summarize computes Performance from a completed run.
func Summarize(result *backtest.Result) Performance {
	p := Performance{
		InitialValue: result.InitialCash,
		FinalValue:   result.FinalCash,
		Trades:       len(result.Transactions),
	}
	for _, t := range result.Transactions {
		p.RealizedPnL += t.PnL
	}
	if len(result.Snapshots) == 0 {
		return p
	}

	last := result.Snapshots[len(result.Snapshots)-1]
	p.BenchmarkValue = last.Benchmark
	if result.InitialCash > 0 {
		p.TotalReturn = (p.FinalValue - result.InitialCash) / result.InitialCash
		p.BenchmarkReturn = (last.Benchmark - result.InitialCash) / result.InitialCash
	}

	// Max drawdown over the per-step total-value curve.
	peak := result.Snapshots[0].TotalValue
	for _, s := range result.Snapshots {
		if s.TotalValue > peak {
			peak = s.TotalValue
		}
		if peak > 0 {
			dd := (peak - s.TotalValue) / peak
			if dd > p.MaxDrawdown {
				p.MaxDrawdown = dd
			}
		}
	}
	return p
}
