package primitives

import "github.com/ksiaz/obscore/internal/types"

// StructuralPersistenceDuration sums every node's closed-plus-open ACTIVE
// presence intervals across the symbol, using the append-only
// presence-interval log each node maintains (SPEC_FULL.md Open Question 3).
func StructuralPersistenceDuration(v View) *types.StructuralPersistenceDuration {
	if len(v.AllNodes) == 0 {
		return nil
	}

	total := 0.0
	var intervals []types.Interval
	for _, n := range v.AllNodes {
		d, ivs := n.PresenceDuration(v.Now)
		total += d
		intervals = append(intervals, ivs...)
	}
	if len(intervals) == 0 {
		return nil
	}

	return &types.StructuralPersistenceDuration{
		TotalPersistenceDuration: total,
		PresenceIntervals:        intervals,
	}
}
