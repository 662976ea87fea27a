package backtest

import (
	"errors"
	"fmt"
	"time"

	"trade-backtest/internal/metrics"
	"trade-backtest/internal/model"
	"trade-backtest/internal/strategy"

	"go.uber.org/zap"
)

// ErrNegativeCash aborts a run: the strategy deployed more capital than
// available even under deferred batch settlement. This is a logic error in
// the strategy, not a recoverable condition.
var ErrNegativeCash = errors.New("negative cash balance")

const (
	DefaultInitialCash = 100000
)

// Engine owns the cash ledger, the position map and both output ledgers,
// and drives the time-stepped loop. It is single-threaded by construction:
// one timestamp is fully processed (mark, predict, settle, snapshot) before
// the next begins, so no locking is needed.
type Engine struct {
	series *model.PriceSeries
	aux    *model.PriceSeries
	strat  strategy.Strategy

	cash    float64
	initial float64
	tc      float64

	positions    map[string]*model.Position
	transactions []Transaction
	snapshots    []Snapshot

	log *zap.Logger
}

type Option func(*Engine)

// WithInitialCash overrides the starting capital.
func WithInitialCash(amount float64) Option {
	return func(e *Engine) { e.initial = amount }
}

// WithTransactionCost sets the proportional fee applied to each trade's
// notional value.
func WithTransactionCost(tc float64) Option {
	return func(e *Engine) { e.tc = tc }
}

// WithAuxData attaches an auxiliary table for the strategy (e.g. OHLCV
// detail). It must share the price series index exactly.
func WithAuxData(aux *model.PriceSeries) Option {
	return func(e *Engine) { e.aux = aux }
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func New(series *model.PriceSeries, strat strategy.Strategy, opts ...Option) (*Engine, error) {
	if series == nil {
		return nil, fmt.Errorf("price series is nil")
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	e := &Engine{
		series:    series,
		strat:     strat,
		initial:   DefaultInitialCash,
		positions: make(map[string]*model.Position),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.initial <= 0 {
		return nil, fmt.Errorf("initial cash must be > 0, got %.2f", e.initial)
	}
	if e.tc < 0 {
		return nil, fmt.Errorf("transaction cost must be >= 0, got %f", e.tc)
	}
	if e.aux != nil && !e.series.SameIndex(e.aux) {
		return nil, fmt.Errorf("auxiliary data index does not match the price series index")
	}
	e.cash = e.initial
	return e, nil
}

// Cash returns the current cash balance.
func (e *Engine) Cash() float64 { return e.cash }

// Positions returns the live position map. Callers must treat it as
// read-only.
func (e *Engine) Positions() map[string]*model.Position { return e.positions }

// Run iterates the series in time order. At each step it marks open
// positions to the row's prices, asks the strategy for bids with history up
// to and including the step, settles the batch, commits the net cash delta
// once, snapshots the portfolio, and aborts on a negative balance. After
// the last step any open positions are liquidated at final prices through
// the same settlement path.
func (e *Engine) Run() (*Result, error) {
	for i := 0; i < e.series.Len(); i++ {
		ts := e.series.Time(i)
		e.markPositions(i)

		var aux *model.PriceSeries
		if e.aux != nil {
			aux = e.aux.Prefix(i + 1)
		}
		bids := e.strat.Predict(strategy.Context{
			Index:     i,
			Time:      ts,
			History:   e.series.Prefix(i + 1),
			Positions: e.positions,
			Cash:      e.cash,
			Aux:       aux,
		})

		e.cash += e.processBids(i, ts, bids)
		e.updateTracker(i, ts, len(bids))
		if e.cash < 0 {
			return nil, fmt.Errorf("%w: %.2f at %s", ErrNegativeCash, e.cash, ts.Format(time.RFC3339))
		}
	}

	if len(e.positions) > 0 {
		if err := e.clearPositions(); err != nil {
			return nil, err
		}
	}

	return &Result{
		Transactions: e.transactions,
		Snapshots:    e.snapshots,
		InitialCash:  e.initial,
		FinalCash:    e.cash,
	}, nil
}

// processBids settles one batch in list order and returns the net cash
// delta. Deltas are not applied per bid: every bid in the batch settles
// against the pre-batch balance, and the caller commits the sum once. Two
// individually affordable buys may therefore overdraw jointly; that is
// caught by the post-commit invariant check, not here.
//
// Rejected bids are logged and skipped with zero effect on cash or ledgers.
func (e *Engine) processBids(i int, ts time.Time, bids []model.Bid) float64 {
	delta := 0.0

	for _, bid := range bids {
		if bid.Shares <= 0 {
			e.reject(bid, "non-positive share count")
			continue
		}
		if !e.series.HasTicker(bid.Ticker) {
			e.reject(bid, "unknown ticker")
			continue
		}
		market, _ := e.series.Price(i, bid.Ticker)
		if bid.Price != market {
			// Strict equality: a strategy may not fabricate fills at stale
			// or hypothetical prices.
			e.reject(bid, fmt.Sprintf("price mismatch, market is %.4f", market))
			continue
		}

		pos, held := e.positions[bid.Ticker]
		if !held {
			if bid.Side == model.SideSell {
				e.reject(bid, "no open position to sell")
				continue
			}
			delta -= bid.Notional() * (1 + e.tc)
			opened, err := model.NewPosition(bid)
			if err != nil {
				e.reject(bid, err.Error())
				continue
			}
			e.positions[bid.Ticker] = opened
			e.recordTransaction(ts, bid, 0)
			continue
		}

		if bid.Side == model.SideBuy {
			delta -= bid.Notional() * (1 + e.tc)
			pos.Apply(bid)
			e.recordTransaction(ts, bid, 0)
			continue
		}

		income := bid.Notional()
		change := pos.Apply(bid)
		if change.Outcome == model.ChangeRejected {
			e.reject(bid, fmt.Sprintf("insufficient shares, holding %d", pos.Shares))
			continue
		}
		delta += income * (1 - e.tc)
		e.recordTransaction(ts, bid, income-change.Cost)
		if pos.Shares == 0 {
			delete(e.positions, bid.Ticker)
		}
	}

	return delta
}

func (e *Engine) reject(bid model.Bid, reason string) {
	metrics.BidsRejected.Inc()
	e.log.Warn("bid rejected",
		zap.String("ticker", bid.Ticker),
		zap.String("side", string(bid.Side)),
		zap.Int64("shares", bid.Shares),
		zap.Float64("price", bid.Price),
		zap.String("reason", reason),
	)
}

func (e *Engine) recordTransaction(ts time.Time, bid model.Bid, pnl float64) {
	metrics.BidsSettled.WithLabelValues(string(bid.Side)).Inc()
	e.transactions = append(e.transactions, Transaction{
		Time:            ts,
		Ticker:          bid.Ticker,
		Side:            bid.Side,
		Price:           bid.Price,
		Shares:          bid.Shares,
		Notional:        bid.Notional(),
		TransactionCost: bid.Notional() * e.tc,
		PnL:             pnl,
	})
}

// markPositions refreshes every open position's mark price from row i.
func (e *Engine) markPositions(i int) {
	for _, pos := range e.positions {
		if price, ok := e.series.Price(i, pos.Ticker); ok {
			pos.MarkPrice = price
		}
	}
}

// updateTracker appends the snapshot for row i. The benchmark splits the
// initial capital equally across every column and scales each slice by that
// column's return since the first timestamp.
func (e *Engine) updateTracker(i int, ts time.Time, bidCount int) {
	first := e.series.Row(0)
	current := e.series.Row(i)
	perColumn := e.initial / float64(len(first))
	benchmark := 0.0
	for j := range current {
		benchmark += perColumn * current[j] / first[j]
	}

	positionsValue := 0.0
	for _, pos := range e.positions {
		positionsValue += pos.MarketValue()
	}

	e.snapshots = append(e.snapshots, Snapshot{
		Time:           ts,
		BidCount:       bidCount,
		PositionCount:  len(e.positions),
		Cash:           e.cash,
		PositionsValue: positionsValue,
		TotalValue:     e.cash + positionsValue,
		Benchmark:      benchmark,
	})
}

// clearPositions liquidates everything still open at the final timestamp's
// prices, in ticker column order for determinism, and commits the proceeds
// like any other batch.
func (e *Engine) clearPositions() error {
	last := e.series.Len() - 1
	ts := e.series.Time(last)

	bids := make([]model.Bid, 0, len(e.positions))
	for _, ticker := range e.series.Tickers() {
		pos, ok := e.positions[ticker]
		if !ok {
			continue
		}
		price, _ := e.series.Price(last, ticker)
		bid, err := model.NewBid(ticker, price, pos.Shares, model.SideSell)
		if err != nil {
			return err
		}
		bids = append(bids, bid)
	}

	e.cash += e.processBids(last, ts, bids)
	if e.cash < 0 {
		return fmt.Errorf("%w: %.2f after final liquidation", ErrNegativeCash, e.cash)
	}
	return nil
}
