package model

import (
	"fmt"
	"sort"
)

// Lot records shares of one ticker acquired at one specific price.
// Acquisitions at an identical price accumulate into a single lot.
type Lot struct {
	Price  float64
	Shares int64
}

// ChangeOutcome tags the result of applying a Bid to a Position.
type ChangeOutcome int

const (
	// ChangeBought: a buy was applied. There is no realized cost.
	ChangeBought ChangeOutcome = iota
	// ChangeSold: a sell was applied and Change.Cost holds the dollar value
	// originally paid for the shares sold.
	ChangeSold
	// ChangeRejected: a sell asked for more shares than held. The lots and
	// share count were left untouched.
	ChangeRejected
)

// Change is the tagged result of Position.Apply. A separate outcome tag
// avoids any ambiguity between "$0 realized cost" and "did not apply".
type Change struct {
	Outcome ChangeOutcome
	Cost    float64
}

// Position is the per-ticker lot ledger and cost-basis calculator.
//
// The lot slice is kept sorted ascending by price so partial sales can
// consume the cheapest lots first without re-sorting on every sale.
type Position struct {
	Ticker    string
	Shares    int64
	MarkPrice float64

	lots []Lot
	wac  float64
}

// NewPosition opens a position from the first accepted buy for a ticker.
func NewPosition(bid Bid) (*Position, error) {
	if bid.Side != SideBuy {
		return nil, fmt.Errorf("position for %s must be opened by a buy", bid.Ticker)
	}
	return &Position{
		Ticker:    bid.Ticker,
		Shares:    bid.Shares,
		MarkPrice: bid.Price,
		lots:      []Lot{{Price: bid.Price, Shares: bid.Shares}},
		wac:       bid.Price,
	}, nil
}

// WeightedAvgCost is the share-weighted mean acquisition price across all
// open lots. It is recomputed on every mutation.
func (p *Position) WeightedAvgCost() float64 { return p.wac }

// MarketValue marks the position to the latest observed price.
func (p *Position) MarketValue() float64 {
	return p.MarkPrice * float64(p.Shares)
}

// Lots returns a copy of the open lots in ascending price order.
func (p *Position) Lots() []Lot {
	out := make([]Lot, len(p.lots))
	copy(out, p.lots)
	return out
}

// Apply mutates the position with a bid on its ticker and reports the
// outcome. The mark price always updates to the bid price first, even when
// an oversized sell is rejected.
//
// Sells consume lots in ascending price order: the cheapest shares are sold
// first, which maximizes the reported gain of the single trade. This is a
// price ordering, not a chronological one. Realized cost is computed from
// the pre-sale lot state.
func (p *Position) Apply(bid Bid) Change {
	p.MarkPrice = bid.Price

	if bid.Side == SideBuy {
		p.addLot(bid.Price, bid.Shares)
		p.Shares += bid.Shares
		p.recomputeWAC()
		return Change{Outcome: ChangeBought}
	}

	if bid.Shares > p.Shares {
		return Change{Outcome: ChangeRejected}
	}

	if bid.Shares == p.Shares {
		// Full liquidation: cost is WAC * shares by definition, so skip the
		// lot walk and clear everything.
		cost := p.wac * float64(p.Shares)
		p.lots = p.lots[:0]
		p.Shares = 0
		p.wac = 0
		return Change{Outcome: ChangeSold, Cost: cost}
	}

	cost := p.consumeLots(bid.Shares)
	p.Shares -= bid.Shares
	p.recomputeWAC()
	return Change{Outcome: ChangeSold, Cost: cost}
}

// addLot merges shares into the lot at price, inserting a new lot in sorted
// position if none exists.
func (p *Position) addLot(price float64, shares int64) {
	i := sort.Search(len(p.lots), func(i int) bool { return p.lots[i].Price >= price })
	if i < len(p.lots) && p.lots[i].Price == price {
		p.lots[i].Shares += shares
		return
	}
	p.lots = append(p.lots, Lot{})
	copy(p.lots[i+1:], p.lots[i:])
	p.lots[i] = Lot{Price: price, Shares: shares}
}

// consumeLots removes n shares starting from the cheapest lot and returns
// the accumulated acquisition cost. Fully consumed lots are deleted; the
// final lot is reduced in place. Callers guarantee n < p.Shares.
func (p *Position) consumeLots(n int64) float64 {
	cost := 0.0
	remaining := n
	drop := 0
	for i := range p.lots {
		lot := &p.lots[i]
		if remaining >= lot.Shares {
			cost += lot.Price * float64(lot.Shares)
			remaining -= lot.Shares
			drop++
			if remaining == 0 {
				break
			}
			continue
		}
		cost += lot.Price * float64(remaining)
		lot.Shares -= remaining
		remaining = 0
		break
	}
	p.lots = p.lots[drop:]
	return cost
}

func (p *Position) recomputeWAC() {
	if p.Shares == 0 {
		p.wac = 0
		return
	}
	sum := 0.0
	for _, lot := range p.lots {
		sum += lot.Price * float64(lot.Shares)
	}
	p.wac = sum / float64(p.Shares)
}
