package primitives

import "github.com/ksiaz/obscore/internal/types"

// PriceTraversalVelocity is the net price change per unit time across
// the traversal window. Requires at least 2 samples and a non-zero
// elapsed duration.
func PriceTraversalVelocity(v View) *types.PriceTraversalVelocity {
	if len(v.Recent) < 2 {
		return nil
	}
	first, last := v.Recent[0], v.Recent[len(v.Recent)-1]
	duration := last.Timestamp - first.Timestamp
	if duration == 0 {
		return nil
	}
	return &types.PriceTraversalVelocity{
		StartPrice: first.Price,
		EndPrice:   last.Price,
		Duration:   duration,
		Velocity:   (last.Price - first.Price) / duration,
	}
}

// TraversalCompactness is the ratio of net displacement to total path
// length walked across the traversal window: 1.0 means a straight run,
// lower values mean a choppier path covering the same net distance.
func TraversalCompactness(v View) *types.TraversalCompactness {
	if len(v.Recent) < 2 {
		return nil
	}
	first, last := v.Recent[0], v.Recent[len(v.Recent)-1]
	net := absf(last.Price - first.Price)

	var total float64
	for i := 1; i < len(v.Recent); i++ {
		total += absf(v.Recent[i].Price - v.Recent[i-1].Price)
	}
	if total == 0 {
		return nil
	}

	return &types.TraversalCompactness{
		NetDisplacement: net,
		TotalPathLength: total,
		Ratio:           net / total,
	}
}

// DirectionalContinuity walks the traversal window backward from the
// most recent sample and counts the longest run of consecutive
// same-sign deltas ending at "now".
func DirectionalContinuity(v View) *types.DirectionalContinuity {
	if len(v.Recent) < 2 {
		return nil
	}

	lastDelta := v.Recent[len(v.Recent)-1].Price - v.Recent[len(v.Recent)-2].Price
	direction := signOf(lastDelta)
	if direction == types.DirectionFlat {
		return &types.DirectionalContinuity{ConsecutiveCount: 0, Direction: types.DirectionFlat}
	}

	count := 0
	for i := len(v.Recent) - 1; i > 0; i-- {
		delta := v.Recent[i].Price - v.Recent[i-1].Price
		if signOf(delta) != direction {
			break
		}
		count++
	}

	return &types.DirectionalContinuity{
		ConsecutiveCount: count,
		Direction:        direction,
	}
}

// TraversalVoidSpan reports gaps between consecutive samples that exceed
// the configured void-gap threshold — structural silence within the
// traversal window.
func TraversalVoidSpan(v View) *types.TraversalVoidSpan {
	if len(v.Recent) < 2 {
		return nil
	}

	var intervals []types.Interval
	maxVoid := 0.0
	for i := 1; i < len(v.Recent); i++ {
		gap := v.Recent[i].Timestamp - v.Recent[i-1].Timestamp
		if gap > v.Windows.VoidGapThresholdSec {
			intervals = append(intervals, types.Interval{Start: v.Recent[i-1].Timestamp, End: v.Recent[i].Timestamp})
			if gap > maxVoid {
				maxVoid = gap
			}
		}
	}
	if len(intervals) == 0 {
		return nil
	}

	return &types.TraversalVoidSpan{
		MaxVoidDuration: maxVoid,
		VoidIntervals:   intervals,
	}
}

// DisplacementOriginAnchor reports the ACTIVE node nearest the current
// price and the time elapsed since that node last entered ACTIVE.
func DisplacementOriginAnchor(v View) *types.DisplacementOriginAnchor {
	if len(v.Recent) == 0 || len(v.ActiveNodes) == 0 {
		return nil
	}
	price := v.Recent[len(v.Recent)-1].Price

	var nearest = v.ActiveNodes[0]
	bestDist := absf(price - nearest.PriceCenter)
	for _, n := range v.ActiveNodes[1:] {
		d := absf(price - n.PriceCenter)
		if d < bestDist {
			nearest, bestDist = n, d
		}
	}

	since, ok := nearest.ActiveSince()
	if !ok {
		return nil
	}

	return &types.DisplacementOriginAnchor{
		AnchorPrice:   nearest.PriceCenter,
		DwellDuration: v.Now - since,
	}
}

func signOf(delta float64) types.Direction {
	switch {
	case delta > 0:
		return types.DirectionUp
	case delta < 0:
		return types.DirectionDown
	default:
		return types.DirectionFlat
	}
}
