package models

import "time"

// BacktestRequest is the body for POST /api/v1/backtest. The price series
// is supplied inline; validation (datetime index, nulls) happens at series
// construction and is fatal for the request.
type BacktestRequest struct {
	Data    SeriesPayload   `json:"data" binding:"required"`
	Aux     *SeriesPayload  `json:"aux,omitempty"`
	Config  BacktestConfig  `json:"config" binding:"required"`
	Options BacktestOptions `json:"options,omitempty"`
}

// SeriesPayload is a wide-format table: one row per timestamp, one column
// per ticker.
type SeriesPayload struct {
	Timestamps []time.Time `json:"timestamps" binding:"required"`
	Tickers    []string    `json:"tickers" binding:"required"`
	Rows       [][]float64 `json:"rows" binding:"required"`
}

// BacktestConfig mirrors the YAML config for API callers.
type BacktestConfig struct {
	InitialCash     float64        `json:"initial_cash,omitempty"`
	TransactionCost float64        `json:"transaction_cost,omitempty"`
	Strategy        StrategyConfig `json:"strategy" binding:"required"`
}

// StrategyConfig names a strategy and its parameters.
type StrategyConfig struct {
	Name   string         `json:"name" binding:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// BacktestOptions controls response verbosity.
type BacktestOptions struct {
	IncludeTransactions bool `json:"include_transactions,omitempty"`
	IncludeSnapshots    bool `json:"include_snapshots,omitempty"`
}
