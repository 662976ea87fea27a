package strategy

import (
	"time"

	"trade-backtest/internal/model"
)

// Context is everything a strategy may look at for one step. History and
// Aux are views ending at the current timestamp; rows after it are never
// visible, which is what rules out lookahead bias.
//
// Positions is the engine's live map. Strategies may read it but must not
// mutate it or the positions it points to.
type Context struct {
	Index     int
	Time      time.Time
	History   *model.PriceSeries
	Positions map[string]*model.Position
	Cash      float64
	Aux       *model.PriceSeries
}

// Strategy turns the visible market state into a list of bids. The engine
// validates and settles them; a strategy is free to ask for trades that end
// up rejected.
type Strategy interface {
	Name() string
	Predict(ctx Context) []model.Bid
}
