package primitives

import "github.com/ksiaz/obscore/internal/types"

// PriceAcceptanceRatio consumes the most recently closed 1-second candle
// (SPEC_FULL.md Open Question 4) and reports what fraction of its range
// the body occupies. Returns nil until a full bucket has closed, or if
// the candle's range is degenerate (high == low).
func PriceAcceptanceRatio(v View) *types.PriceAcceptanceRatio {
	if v.Candle == nil {
		return nil
	}
	c := v.Candle
	rng := c.High - c.Low
	if rng == 0 {
		return nil
	}

	return &types.PriceAcceptanceRatio{
		Open:      c.Open,
		High:      c.High,
		Low:       c.Low,
		Close:     c.Close,
		BodyRatio: absf(c.Close-c.Open) / rng,
	}
}
