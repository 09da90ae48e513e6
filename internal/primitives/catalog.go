package primitives

import "github.com/ksiaz/obscore/internal/types"

// ComputeAll runs the full seventeen-primitive catalog against v and
// assembles the resulting bundle. Any primitive may be nil.
func ComputeAll(v View) types.PrimitiveBundle {
	return types.PrimitiveBundle{
		ZonePenetration:               ZonePenetration(v),
		DisplacementOriginAnchor:      DisplacementOriginAnchor(v),
		PriceTraversalVelocity:        PriceTraversalVelocity(v),
		TraversalCompactness:          TraversalCompactness(v),
		CentralTendencyDeviation:      CentralTendencyDeviation(v),
		StructuralAbsenceDuration:     StructuralAbsenceDuration(v),
		TraversalVoidSpan:             TraversalVoidSpan(v),
		EventNonOccurrenceCounter:     EventNonOccurrenceCounter(v),
		RestingSizeAtPrice:            RestingSizeAtPrice(v),
		OrderConsumption:              OrderConsumption(v),
		AbsorptionEvent:               AbsorptionEvent(v),
		RefillEvent:                   RefillEvent(v),
		LiquidationDensity:            LiquidationDensity(v),
		DirectionalContinuity:         DirectionalContinuity(v),
		TradeBurst:                    TradeBurst(v),
		StructuralPersistenceDuration: StructuralPersistenceDuration(v),
		PriceAcceptanceRatio:          PriceAcceptanceRatio(v),
	}
}
