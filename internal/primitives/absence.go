package primitives

import "github.com/ksiaz/obscore/internal/types"

// StructuralAbsenceDuration reports the longest idle span among ACTIVE
// nodes — the largest gap since any node last received evidence.
func StructuralAbsenceDuration(v View) *types.StructuralAbsenceDuration {
	if len(v.ActiveNodes) == 0 {
		return nil
	}

	maxAbsence := 0.0
	for _, n := range v.ActiveNodes {
		absence := v.Now - n.LastInteractionTS
		if absence < 0 {
			absence = 0
		}
		if absence > maxAbsence {
			maxAbsence = absence
		}
	}

	window := v.Windows.AbsenceObservationSec
	ratio := 0.0
	if window > 0 {
		ratio = maxAbsence / window
		if ratio > 1 {
			ratio = 1
		}
	}

	return &types.StructuralAbsenceDuration{
		AbsenceDuration:   maxAbsence,
		ObservationWindow: window,
		AbsenceRatio:      ratio,
	}
}

// EventNonOccurrenceCounter compares the configured expected tick count
// for the non-occurrence window against how many samples were actually
// observed within it.
func EventNonOccurrenceCounter(v View) *types.EventNonOccurrenceCounter {
	window := v.Windows.NonOccurrenceWindowSec
	if window <= 0 {
		return nil
	}

	observed := 0
	cutoff := v.Now - window
	for _, s := range v.Recent {
		if s.Timestamp >= cutoff {
			observed++
		}
	}

	expected := v.Windows.NonOccurrenceExpectedPerWindow
	nonOccurrence := expected - observed
	if nonOccurrence < 0 {
		nonOccurrence = 0
	}

	return &types.EventNonOccurrenceCounter{
		ExpectedCount:      expected,
		ObservedCount:      observed,
		NonOccurrenceCount: nonOccurrence,
	}
}

// TradeBurst buckets recent trades (never liquidations) into fixed
// windows and reports the busiest bucket's count.
func TradeBurst(v View) *types.TradeBurst {
	if len(v.RecentTrades) == 0 {
		return nil
	}
	window := v.Windows.BurstWindowSec
	if window <= 0 {
		return nil
	}

	counts := make(map[int64]int)
	maxCount := 0
	for _, s := range v.RecentTrades {
		bucket := int64(s.Timestamp / window)
		counts[bucket]++
		if counts[bucket] > maxCount {
			maxCount = counts[bucket]
		}
	}

	return &types.TradeBurst{
		Count:          maxCount,
		WindowDuration: window,
	}
}
