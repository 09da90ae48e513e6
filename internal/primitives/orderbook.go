package primitives

import (
	"github.com/ksiaz/obscore/internal/continuity"
	"github.com/ksiaz/obscore/internal/types"
)

// RestingSizeAtPrice reports the order-book state of the ACTIVE node
// nearest the current price among those that have had at least one depth
// touch, as of its last depth touch.
func RestingSizeAtPrice(v View) *types.RestingSizeAtPrice {
	if len(v.Recent) == 0 {
		return nil
	}
	price := v.Recent[len(v.Recent)-1].Price

	n := nearestWithOrderbook(v.ActiveNodes, price)
	if n == nil {
		return nil
	}

	return &types.RestingSizeAtPrice{
		Price:     n.PriceCenter,
		SizeBid:   n.RestingSizeBid,
		SizeAsk:   n.RestingSizeAsk,
		Timestamp: n.LastOrderbookUpdateTS,
	}
}

// OrderConsumption detects a positive resting-size reduction on the
// most-recently depth-touched ACTIVE node, on whichever side (bid or
// ask) shows the larger reduction.
func OrderConsumption(v View) *types.OrderConsumption {
	n := mostRecentlyTouched(v.ActiveNodes)
	if n == nil {
		return nil
	}

	bidReduction := n.PreviousRestingSizeBid - n.RestingSizeBid
	askReduction := n.PreviousRestingSizeAsk - n.RestingSizeAsk

	var initial, current float64
	switch {
	case bidReduction > 0 && bidReduction >= askReduction:
		initial, current = n.PreviousRestingSizeBid, n.RestingSizeBid
	case askReduction > 0:
		initial, current = n.PreviousRestingSizeAsk, n.RestingSizeAsk
	default:
		return nil
	}

	duration := n.LastOrderbookUpdateTS - n.PreviousOrderbookUpdateTS
	if duration < 0 {
		duration = 0
	}

	return &types.OrderConsumption{
		Price:         n.PriceCenter,
		InitialSize:   initial,
		ConsumedSize:  initial - current,
		RemainingSize: current,
		Duration:      duration,
	}
}

// AbsorptionEvent fires only when OrderConsumption found a non-trivial
// reduction and price stayed within the configured stability bound
// across the traversal window — large size consumed without price
// moving away.
func AbsorptionEvent(v View) *types.AbsorptionEvent {
	consumption := OrderConsumption(v)
	if consumption == nil || consumption.ConsumedSize <= 0 {
		return nil
	}
	if len(v.Recent) < 2 {
		return nil
	}

	first, last := v.Recent[0], v.Recent[len(v.Recent)-1]
	priceRange := absf(last.Price - first.Price)
	bound := v.Windows.AbsorptionStabilityBoundTicks * v.Windows.TickSize
	if priceRange > bound {
		return nil
	}

	n := mostRecentlyTouched(v.ActiveNodes)
	tradeCount := 0
	if n != nil {
		tradeCount = int(n.TradeExecutionCount)
	}

	return &types.AbsorptionEvent{
		Price:        consumption.Price,
		ConsumedSize: consumption.ConsumedSize,
		Duration:     consumption.Duration,
		TradeCount:   tradeCount,
	}
}

// RefillEvent detects a resting-size increase following a prior non-zero
// value, on whichever side shows the larger increase.
func RefillEvent(v View) *types.RefillEvent {
	n := mostRecentlyTouched(v.ActiveNodes)
	if n == nil {
		return nil
	}

	bidGrowth := 0.0
	if n.PreviousRestingSizeBid > 0 {
		bidGrowth = n.RestingSizeBid - n.PreviousRestingSizeBid
	}
	askGrowth := 0.0
	if n.PreviousRestingSizeAsk > 0 {
		askGrowth = n.RestingSizeAsk - n.PreviousRestingSizeAsk
	}

	growth := bidGrowth
	if askGrowth > growth {
		growth = askGrowth
	}
	if growth <= 0 {
		return nil
	}

	duration := n.LastOrderbookUpdateTS - n.PreviousOrderbookUpdateTS
	if duration < 0 {
		duration = 0
	}

	return &types.RefillEvent{
		Price:      n.PriceCenter,
		RefillSize: growth,
		Duration:   duration,
	}
}

// LiquidationDensity reports the liquidation evidence accumulated at the
// node nearest the current price, in any lifecycle state.
func LiquidationDensity(v View) *types.LiquidationDensity {
	if len(v.Recent) == 0 || len(v.AllNodes) == 0 {
		return nil
	}
	price := v.Recent[len(v.Recent)-1].Price

	nearest := v.AllNodes[0]
	bestDist := absf(price - nearest.PriceCenter)
	for _, n := range v.AllNodes[1:] {
		d := absf(price - n.PriceCenter)
		if d < bestDist {
			nearest, bestDist = n, d
		}
	}

	return &types.LiquidationDensity{
		PriceCenter:      nearest.PriceCenter,
		TotalVolume:      nearest.LiquidationVolume,
		LiquidationCount: int(nearest.LiquidationCount),
	}
}

func nearestWithOrderbook(nodes []*continuity.Node, price float64) *continuity.Node {
	var best *continuity.Node
	bestDist := 0.0
	for _, n := range nodes {
		if n.LastOrderbookUpdateTS == 0 {
			continue
		}
		d := absf(price - n.PriceCenter)
		if best == nil || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func mostRecentlyTouched(nodes []*continuity.Node) *continuity.Node {
	var best *continuity.Node
	for _, n := range nodes {
		if n.LastOrderbookUpdateTS == 0 {
			continue
		}
		if best == nil || n.LastOrderbookUpdateTS > best.LastOrderbookUpdateTS {
			best = n
		}
	}
	return best
}
