package strategy

import (
	"math/rand"

	"trade-backtest/internal/model"
)

// RandomParams configures RandomStrategy. Zero values fall back to the
// defaults below.
type RandomParams struct {
	Seed      int64
	TradeProb float64 // chance of emitting a bid per step
	MaxShares int64   // upper bound on shares per bid
}

// RandomStrategy emits a bid on a random ticker with a fixed probability
// per step. It is a baseline for eyeballing ledgers and comparing real
// strategies against noise.
type RandomStrategy struct {
	Params RandomParams

	rng *rand.Rand
}

func NewRandomStrategy(params RandomParams) *RandomStrategy {
	if params.TradeProb <= 0 || params.TradeProb > 1 {
		params.TradeProb = 0.25
	}
	if params.MaxShares <= 0 {
		params.MaxShares = 10
	}
	return &RandomStrategy{
		Params: params,
		rng:    rand.New(rand.NewSource(params.Seed)),
	}
}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) Predict(ctx Context) []model.Bid {
	if s.rng.Float64() >= s.Params.TradeProb {
		return nil
	}

	tickers := ctx.History.Tickers()
	ticker := tickers[s.rng.Intn(len(tickers))]
	price, _ := ctx.History.Price(ctx.History.Len()-1, ticker)

	pos, held := ctx.Positions[ticker]
	if held && s.rng.Intn(2) == 0 {
		shares := 1 + s.rng.Int63n(pos.Shares)
		bid, err := model.NewBid(ticker, price, shares, model.SideSell)
		if err != nil {
			return nil
		}
		return []model.Bid{bid}
	}

	shares := 1 + s.rng.Int63n(s.Params.MaxShares)
	// Stay inside the lagging cash balance so a single-bid batch cannot
	// trip the fatal overdraft check.
	for shares > 0 && price*float64(shares)*1.01 > ctx.Cash {
		shares /= 2
	}
	if shares == 0 {
		return nil
	}
	bid, err := model.NewBid(ticker, price, shares, model.SideBuy)
	if err != nil {
		return nil
	}
	return []model.Bid{bid}
}
