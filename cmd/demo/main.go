package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"trade-backtest/internal/analysis"
	"trade-backtest/internal/backtest"
	"trade-backtest/internal/model"
	"trade-backtest/internal/strategy"
)

// Demo:
// - Build a synthetic two-ticker daily price series
// - Run the random strategy over it
// - Print the transaction ledger and summary to show how the pieces fit
func main() {
	days := flag.Int("days", 120, "Number of daily steps to simulate")
	seed := flag.Int64("seed", 42, "RNG seed for the random strategy")
	outTx := flag.String("out", "", "Optional path to write the transaction CSV")
	flag.Parse()

	series := syntheticSeries(*days)

	strat := strategy.NewRandomStrategy(strategy.RandomParams{
		Seed:      *seed,
		TradeProb: 0.3,
		MaxShares: 20,
	})

	engine, err := backtest.New(series, strat,
		backtest.WithInitialCash(100000),
		backtest.WithTransactionCost(0.001),
	)
	if err != nil {
		panic(err)
	}
	result, err := engine.Run()
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-22s %-6s %-5s %10s %8s %12s\n", "time", "ticker", "side", "price", "shares", "pnl")
	for _, t := range result.Transactions {
		fmt.Printf("%-22s %-6s %-5s %10.2f %8d %12.2f\n",
			t.Time.Format("2006-01-02"), t.Ticker, t.Side, t.Price, t.Shares, t.PnL)
	}

	perf := analysis.Summarize(result)
	fmt.Println()
	fmt.Printf("Final cash $%.2f, return %.2f%%, benchmark %.2f%%, %d trades\n",
		perf.FinalValue, perf.TotalReturn*100, perf.BenchmarkReturn*100, perf.Trades)

	if *outTx != "" {
		if err := backtest.WriteTransactionsCSV(*outTx, result.Transactions); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %s\n", *outTx)
	}
}

// syntheticSeries builds two drifting sine-wave price columns.
func syntheticSeries(days int) *model.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, days)
	rows := make([][]float64, days)
	for i := 0; i < days; i++ {
		times[i] = start.AddDate(0, 0, i)
		x := float64(i)
		rows[i] = []float64{
			50 + 0.05*x + 4*math.Sin(x/9),
			120 - 0.02*x + 7*math.Sin(x/13+1),
		}
	}
	series, err := model.NewPriceSeries(times, []string{"AAA", "BBB"}, rows)
	if err != nil {
		panic(err)
	}
	return series
}
