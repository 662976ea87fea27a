package backtest

import (
	"time"

	"trade-backtest/internal/model"
)

// Transaction is one row of the append-only trade ledger: a bid that
// actually settled. Buys always carry a zero PnL; realized PnL only exists
// when lots are sold.
type Transaction struct {
	Time            time.Time
	Ticker          string
	Side            model.Side
	Price           float64
	Shares          int64
	Notional        float64
	TransactionCost float64
	PnL             float64
}

// Snapshot is one row of the per-step portfolio tracker, including a
// buy-and-hold benchmark over the same starting capital.
type Snapshot struct {
	Time           time.Time
	BidCount       int
	PositionCount  int
	Cash           float64
	PositionsValue float64
	TotalValue     float64
	Benchmark      float64
}

// Result is the full output of a run. Both ledgers are strictly
// chronological and, within one timestamp, in bid-list order.
type Result struct {
	Transactions []Transaction
	Snapshots    []Snapshot

	InitialCash float64
	FinalCash   float64
}
