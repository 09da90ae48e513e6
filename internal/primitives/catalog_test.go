package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAll_EmptyViewYieldsAllNone(t *testing.T) {
	bundle := ComputeAll(View{})

	assert.Nil(t, bundle.ZonePenetration)
	assert.Nil(t, bundle.DisplacementOriginAnchor)
	assert.Nil(t, bundle.PriceTraversalVelocity)
	assert.Nil(t, bundle.TraversalCompactness)
	assert.Nil(t, bundle.CentralTendencyDeviation)
	assert.Nil(t, bundle.StructuralAbsenceDuration)
	assert.Nil(t, bundle.TraversalVoidSpan)
	assert.Nil(t, bundle.EventNonOccurrenceCounter)
	assert.Nil(t, bundle.RestingSizeAtPrice)
	assert.Nil(t, bundle.OrderConsumption)
	assert.Nil(t, bundle.AbsorptionEvent)
	assert.Nil(t, bundle.RefillEvent)
	assert.Nil(t, bundle.LiquidationDensity)
	assert.Nil(t, bundle.DirectionalContinuity)
	assert.Nil(t, bundle.TradeBurst)
	assert.Nil(t, bundle.StructuralPersistenceDuration)
	assert.Nil(t, bundle.PriceAcceptanceRatio)
}

func TestComputeAll_PopulatesFromStraightRunView(t *testing.T) {
	bundle := ComputeAll(straightRunView())

	assert.NotNil(t, bundle.PriceTraversalVelocity)
	assert.NotNil(t, bundle.TraversalCompactness)
	assert.NotNil(t, bundle.DirectionalContinuity)
}
