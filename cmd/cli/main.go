package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"trade-backtest/internal/analysis"
	"trade-backtest/internal/backtest"
	"trade-backtest/internal/config"
	"trade-backtest/internal/data"
	"trade-backtest/internal/logger"
	"trade-backtest/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(os.Args[2:])
	case "report":
		cmdReport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --config examples/config.yaml --out results/")
	fmt.Println("  cli report --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - backtest writes transactions.csv and snapshots.csv under --out")
	fmt.Println("  - report runs the backtest and prints summary statistics only")
}

func cmdBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "results", "Output directory for ledger CSVs")
	_ = fs.Parse(args)

	result, perf := run(*cfgPath)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	txPath := filepath.Join(*outDir, "transactions.csv")
	snapPath := filepath.Join(*outDir, "snapshots.csv")
	if err := backtest.WriteTransactionsCSV(txPath, result.Transactions); err != nil {
		panic(err)
	}
	if err := backtest.WriteSnapshotsCSV(snapPath, result.Snapshots); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d transactions to %s\n", len(result.Transactions), txPath)
	fmt.Printf("Wrote %d snapshots to %s\n", len(result.Snapshots), snapPath)
	printPerformance(perf)
}

func cmdReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	_, perf := run(*cfgPath)
	printPerformance(perf)
}

func run(cfgPath string) (*backtest.Result, analysis.Performance) {
	if cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	series, err := data.LoadSeriesCSV(cfg.Data.Prices)
	if err != nil {
		panic(err)
	}

	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		panic(err)
	}

	log, sync := logger.New(false)
	defer sync()

	opts := []backtest.Option{
		backtest.WithInitialCash(cfg.InitialCash),
		backtest.WithTransactionCost(cfg.TransactionCost),
		backtest.WithLogger(log),
	}
	if cfg.Data.Aux != "" {
		aux, err := data.LoadSeriesCSV(cfg.Data.Aux)
		if err != nil {
			panic(err)
		}
		opts = append(opts, backtest.WithAuxData(aux))
	}

	engine, err := backtest.New(series, strat, opts...)
	if err != nil {
		panic(err)
	}
	result, err := engine.Run()
	if err != nil {
		panic(err)
	}
	return result, analysis.Summarize(result)
}

func printPerformance(p analysis.Performance) {
	fmt.Printf("Initial cash:     $%.2f\n", p.InitialValue)
	fmt.Printf("Final value:      $%.2f (%.2f%%)\n", p.FinalValue, p.TotalReturn*100)
	fmt.Printf("Buy-and-hold:     $%.2f (%.2f%%)\n", p.BenchmarkValue, p.BenchmarkReturn*100)
	fmt.Printf("Max drawdown:     %.2f%%\n", p.MaxDrawdown*100)
	fmt.Printf("Trades:           %d\n", p.Trades)
	fmt.Printf("Realized PnL:     $%.2f\n", p.RealizedPnL)
}
