package primitives

import "github.com/ksiaz/obscore/internal/types"

// ZonePenetration locates the ACTIVE node whose band the current price
// falls within and reports how deep into the zone price sits, and from
// which side it was approached.
func ZonePenetration(v View) *types.ZonePenetration {
	if len(v.Recent) == 0 {
		return nil
	}
	price := v.Recent[len(v.Recent)-1].Price

	var zone *nodeLike
	for _, n := range v.ActiveNodes {
		if n.Overlaps(price) {
			zone = &nodeLike{center: n.PriceCenter, band: n.PriceBand}
			break
		}
	}
	if zone == nil {
		return nil
	}

	direction := types.DirectionFlat
	if len(v.Recent) >= 2 {
		prev := v.Recent[len(v.Recent)-2].Price
		if price > prev {
			direction = types.DirectionUp
		} else if price < prev {
			direction = types.DirectionDown
		}
	}

	var depth float64
	switch direction {
	case types.DirectionUp:
		depth = price - (zone.center - zone.band)
	case types.DirectionDown:
		depth = (zone.center + zone.band) - price
	default:
		depth = zone.band - absf(price-zone.center)
	}

	return &types.ZonePenetration{
		Price:         price,
		DepthIntoZone: depth,
		Direction:     direction,
	}
}

// CentralTendencyDeviation compares the current price to the
// strength-weighted mean of ACTIVE node centers. Strength never leaves
// this function — it is only ever used as an internal weight.
func CentralTendencyDeviation(v View) *types.CentralTendencyDeviation {
	if len(v.Recent) == 0 || len(v.ActiveNodes) == 0 {
		return nil
	}
	price := v.Recent[len(v.Recent)-1].Price

	var weightedSum, weightTotal float64
	for _, n := range v.ActiveNodes {
		weightedSum += n.PriceCenter * n.Strength
		weightTotal += n.Strength
	}
	if weightTotal == 0 {
		return nil
	}
	central := weightedSum / weightTotal

	return &types.CentralTendencyDeviation{
		ReferencePrice: price,
		CentralPrice:   central,
		Deviation:      price - central,
	}
}

type nodeLike struct {
	center float64
	band   float64
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
