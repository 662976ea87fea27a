package strategy

import (
	"math"

	"trade-backtest/internal/model"
)

// CrossoverParams configures CrossoverStrategy.
type CrossoverParams struct {
	Fast   int   // fast SMA window
	Slow   int   // slow SMA window, must be > Fast
	Shares int64 // shares bought per entry signal
}

// CrossoverStrategy trades simple moving-average crossovers per ticker:
// buy when the fast SMA crosses above the slow one, liquidate the ticker
// when it crosses back below.
type CrossoverStrategy struct {
	Params CrossoverParams
}

func NewCrossoverStrategy(params CrossoverParams) *CrossoverStrategy {
	if params.Fast <= 0 {
		params.Fast = 10
	}
	if params.Slow <= params.Fast {
		params.Slow = params.Fast * 3
	}
	if params.Shares <= 0 {
		params.Shares = 10
	}
	return &CrossoverStrategy{Params: params}
}

func (s *CrossoverStrategy) Name() string { return "crossover" }

func (s *CrossoverStrategy) Predict(ctx Context) []model.Bid {
	last := ctx.History.Len() - 1
	if last < s.Params.Slow {
		return nil
	}

	var bids []model.Bid
	budget := ctx.Cash

	for _, ticker := range ctx.History.Tickers() {
		prices, _ := ctx.History.Column(ticker)
		fastNow := sma(prices, s.Params.Fast, last)
		slowNow := sma(prices, s.Params.Slow, last)
		fastPrev := sma(prices, s.Params.Fast, last-1)
		slowPrev := sma(prices, s.Params.Slow, last-1)
		if math.IsNaN(fastPrev) || math.IsNaN(slowPrev) {
			continue
		}

		price := prices[last]
		pos, held := ctx.Positions[ticker]

		switch {
		case fastNow > slowNow && fastPrev <= slowPrev && !held:
			cost := price * float64(s.Params.Shares) * 1.01
			if cost > budget {
				continue
			}
			bid, err := model.NewBid(ticker, price, s.Params.Shares, model.SideBuy)
			if err != nil {
				continue
			}
			// The engine settles the whole batch against the pre-batch
			// balance, so track the spend locally to avoid a joint
			// overdraft across tickers.
			budget -= cost
			bids = append(bids, bid)
		case fastNow < slowNow && fastPrev >= slowPrev && held:
			bid, err := model.NewBid(ticker, price, pos.Shares, model.SideSell)
			if err != nil {
				continue
			}
			bids = append(bids, bid)
		}
	}
	return bids
}

// sma returns the simple moving average of the window ending at index i, or
// NaN during warmup.
func sma(x []float64, p int, i int) float64 {
	if i+1 < p {
		return math.NaN()
	}
	sum := 0.0
	for j := i + 1 - p; j <= i; j++ {
		sum += x[j]
	}
	return sum / float64(p)
}
