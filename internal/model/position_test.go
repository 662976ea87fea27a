package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBid(t *testing.T, ticker string, price float64, shares int64, side Side) Bid {
	t.Helper()
	bid, err := NewBid(ticker, price, shares, side)
	require.NoError(t, err)
	return bid
}

// checkInvariant verifies the two Position invariants: lot shares sum to
// the share count, and WAC matches the lot-weighted mean.
func checkInvariant(t *testing.T, p *Position) {
	t.Helper()
	var shares int64
	sum := 0.0
	for _, lot := range p.Lots() {
		shares += lot.Shares
		sum += lot.Price * float64(lot.Shares)
	}
	require.Equal(t, p.Shares, shares)
	if shares > 0 {
		require.InDelta(t, sum/float64(shares), p.WeightedAvgCost(), 1e-9)
	}
}

func TestNewPosition_RequiresBuy(t *testing.T) {
	_, err := NewPosition(mustBid(t, "ACME", 10, 5, SideSell))
	require.Error(t, err)
}

func TestPosition_BuyComposition(t *testing.T) {
	p, err := NewPosition(mustBid(t, "ACME", 10, 10, SideBuy))
	require.NoError(t, err)

	change := p.Apply(mustBid(t, "ACME", 20, 10, SideBuy))
	require.Equal(t, ChangeBought, change.Outcome)

	require.Equal(t, int64(20), p.Shares)
	require.InDelta(t, 15.0, p.WeightedAvgCost(), 1e-9)
	require.InDelta(t, 20.0, p.MarkPrice, 1e-9)
	checkInvariant(t, p)
}

func TestPosition_SamePriceLotsMerge(t *testing.T) {
	p, err := NewPosition(mustBid(t, "ACME", 10, 10, SideBuy))
	require.NoError(t, err)
	p.Apply(mustBid(t, "ACME", 10, 5, SideBuy))

	lots := p.Lots()
	require.Len(t, lots, 1)
	require.Equal(t, int64(15), lots[0].Shares)
	checkInvariant(t, p)
}

func TestPosition_LotsStaySortedByPrice(t *testing.T) {
	p, err := NewPosition(mustBid(t, "ACME", 20, 1, SideBuy))
	require.NoError(t, err)
	p.Apply(mustBid(t, "ACME", 10, 1, SideBuy))
	p.Apply(mustBid(t, "ACME", 30, 1, SideBuy))
	p.Apply(mustBid(t, "ACME", 15, 1, SideBuy))

	lots := p.Lots()
	for i := 1; i < len(lots); i++ {
		require.Less(t, lots[i-1].Price, lots[i].Price)
	}
	checkInvariant(t, p)
}

func TestPosition_FullLiquidation(t *testing.T) {
	p, err := NewPosition(mustBid(t, "ACME", 10, 10, SideBuy))
	require.NoError(t, err)
	p.Apply(mustBid(t, "ACME", 20, 10, SideBuy))

	change := p.Apply(mustBid(t, "ACME", 20, 20, SideSell))
	require.Equal(t, ChangeSold, change.Outcome)
	require.InDelta(t, 300.0, change.Cost, 1e-9)
	require.Equal(t, int64(0), p.Shares)
	require.Empty(t, p.Lots())
}

func TestPosition_PartialSaleConsumesCheapestFirst(t *testing.T) {
	p, err := NewPosition(mustBid(t, "ACME", 10, 10, SideBuy))
	require.NoError(t, err)
	p.Apply(mustBid(t, "ACME", 20, 10, SideBuy))

	change := p.Apply(mustBid(t, "ACME", 20, 5, SideSell))
	require.Equal(t, ChangeSold, change.Outcome)
	require.InDelta(t, 50.0, change.Cost, 1e-9)

	lots := p.Lots()
	require.Len(t, lots, 2)
	require.Equal(t, Lot{Price: 10, Shares: 5}, lots[0])
	require.Equal(t, Lot{Price: 20, Shares: 10}, lots[1])

	require.Equal(t, int64(15), p.Shares)
	require.InDelta(t, (5*10.0+10*20.0)/15.0, p.WeightedAvgCost(), 1e-9)
	checkInvariant(t, p)
}

func TestPosition_PartialSaleSpansLots(t *testing.T) {
	p, err := NewPosition(mustBid(t, "ACME", 10, 10, SideBuy))
	require.NoError(t, err)
	p.Apply(mustBid(t, "ACME", 20, 10, SideBuy))
	p.Apply(mustBid(t, "ACME", 30, 10, SideBuy))

	// 15 shares: all of the $10 lot plus 5 from the $20 lot.
	change := p.Apply(mustBid(t, "ACME", 30, 15, SideSell))
	require.Equal(t, ChangeSold, change.Outcome)
	require.InDelta(t, 10*10.0+5*20.0, change.Cost, 1e-9)

	lots := p.Lots()
	require.Len(t, lots, 2)
	require.Equal(t, Lot{Price: 20, Shares: 5}, lots[0])
	require.Equal(t, Lot{Price: 30, Shares: 10}, lots[1])
	checkInvariant(t, p)
}

func TestPosition_ExactLotBoundarySale(t *testing.T) {
	p, err := NewPosition(mustBid(t, "ACME", 10, 10, SideBuy))
	require.NoError(t, err)
	p.Apply(mustBid(t, "ACME", 20, 10, SideBuy))

	// Exactly the cheapest lot: it must be deleted, not left at zero.
	change := p.Apply(mustBid(t, "ACME", 20, 10, SideSell))
	require.Equal(t, ChangeSold, change.Outcome)
	require.InDelta(t, 100.0, change.Cost, 1e-9)

	lots := p.Lots()
	require.Len(t, lots, 1)
	require.Equal(t, Lot{Price: 20, Shares: 10}, lots[0])
	checkInvariant(t, p)
}

func TestPosition_OversizedSellRejected(t *testing.T) {
	p, err := NewPosition(mustBid(t, "ACME", 10, 10, SideBuy))
	require.NoError(t, err)

	change := p.Apply(mustBid(t, "ACME", 12, 15, SideSell))
	require.Equal(t, ChangeRejected, change.Outcome)

	// No mutation besides the mark price, which always refreshes first.
	require.Equal(t, int64(10), p.Shares)
	require.Len(t, p.Lots(), 1)
	require.InDelta(t, 12.0, p.MarkPrice, 1e-9)
	require.InDelta(t, 10.0, p.WeightedAvgCost(), 1e-9)
	checkInvariant(t, p)
}
