package models

import "time"

// BacktestResponse is returned by POST /api/v1/backtest. The ID can be used
// to fetch ledgers later while the run is still cached.
type BacktestResponse struct {
	ID           string           `json:"id"`
	Status       string           `json:"status"`
	Summary      BacktestSummary  `json:"summary"`
	Transactions []TransactionRow `json:"transactions,omitempty"`
	Snapshots    []SnapshotRow    `json:"snapshots,omitempty"`
}

// BacktestSummary aggregates a finished run.
type BacktestSummary struct {
	InitialCash     float64 `json:"initial_cash"`
	FinalCash       float64 `json:"final_cash"`
	TotalReturn     float64 `json:"total_return"`
	BenchmarkValue  float64 `json:"benchmark_value"`
	BenchmarkReturn float64 `json:"benchmark_return"`
	MaxDrawdown     float64 `json:"max_drawdown"`
	Trades          int     `json:"trades"`
	RealizedPnL     float64 `json:"realized_pnl"`
	Steps           int     `json:"steps"`
}

// TransactionRow is one settled trade.
type TransactionRow struct {
	Time            time.Time `json:"time"`
	Ticker          string    `json:"ticker"`
	Side            string    `json:"side"`
	Price           float64   `json:"price"`
	Shares          int64     `json:"shares"`
	Notional        float64   `json:"notional"`
	TransactionCost float64   `json:"transaction_cost"`
	PnL             float64   `json:"pnl"`
}

// SnapshotRow is one per-step portfolio snapshot.
type SnapshotRow struct {
	Time           time.Time `json:"time"`
	BidCount       int       `json:"bid_count"`
	PositionCount  int       `json:"position_count"`
	Cash           float64   `json:"cash"`
	PositionsValue float64   `json:"positions_value"`
	TotalValue     float64   `json:"total_value"`
	Benchmark      float64   `json:"benchmark"`
}

// LedgerResponse wraps ledger retrieval for a stored run.
type LedgerResponse struct {
	ID           string           `json:"id"`
	Strategy     string           `json:"strategy"`
	Transactions []TransactionRow `json:"transactions,omitempty"`
	Snapshots    []SnapshotRow    `json:"snapshots,omitempty"`
}

// StrategyInfo describes one buildable strategy.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code plus a human message.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
