package model

import (
	"errors"
	"fmt"
)

// Side is the direction of a Bid. Keep these values stable; they are
// written to the transaction CSV.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ErrInvalidSide is returned when a Bid is constructed with a side other
// than SideBuy or SideSell.
var ErrInvalidSide = errors.New("invalid bid side")

// Bid is an immutable trade intent produced by a strategy: buy or sell a
// number of shares of one ticker at a claimed price.
//
// Construction only validates the side. Price, share count and ticker
// legality are the engine's responsibility at settlement time, because they
// depend on market state the Bid itself does not know.
type Bid struct {
	Ticker string
	Price  float64
	Shares int64
	Side   Side
}

func NewBid(ticker string, price float64, shares int64, side Side) (Bid, error) {
	if side != SideBuy && side != SideSell {
		return Bid{}, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	return Bid{Ticker: ticker, Price: price, Shares: shares, Side: side}, nil
}

// Notional is the dollar value of the bid before transaction costs.
func (b Bid) Notional() float64 {
	return b.Price * float64(b.Shares)
}

func (b Bid) String() string {
	return fmt.Sprintf("%s %d %s @ %.4f", b.Side, b.Shares, b.Ticker, b.Price)
}
