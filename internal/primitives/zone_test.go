package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksiaz/obscore/internal/continuity"
	"github.com/ksiaz/obscore/internal/temporal"
	"github.com/ksiaz/obscore/internal/types"
)

func TestZonePenetration_NoneOutsideAnyBand(t *testing.T) {
	n := &continuity.Node{PriceCenter: 50000, PriceBand: 25}
	v := View{
		ActiveNodes: []*continuity.Node{n},
		Recent:      []temporal.Sample{{Timestamp: 0, Price: 51000}},
	}
	assert.Nil(t, ZonePenetration(v))
}

func TestZonePenetration_ReportsApproachDirection(t *testing.T) {
	n := &continuity.Node{PriceCenter: 50000, PriceBand: 25}
	v := View{
		ActiveNodes: []*continuity.Node{n},
		Recent: []temporal.Sample{
			{Timestamp: 0, Price: 49980},
			{Timestamp: 1, Price: 49990},
		},
	}
	got := ZonePenetration(v)
	require.NotNil(t, got)
	assert.Equal(t, types.DirectionUp, got.Direction)
	assert.Equal(t, 49990.0, got.Price)
}

func TestCentralTendencyDeviation_WeightsByStrength(t *testing.T) {
	n1 := &continuity.Node{PriceCenter: 49000, Strength: 1.0}
	n2 := &continuity.Node{PriceCenter: 51000, Strength: 0.0}
	v := View{
		ActiveNodes: []*continuity.Node{n1, n2},
		Recent:      []temporal.Sample{{Timestamp: 0, Price: 50000}},
	}
	got := CentralTendencyDeviation(v)
	require.NotNil(t, got)
	assert.Equal(t, 49000.0, got.CentralPrice)
	assert.Equal(t, 1000.0, got.Deviation)
}

func TestCentralTendencyDeviation_NoneWhenAllWeightsZero(t *testing.T) {
	n := &continuity.Node{PriceCenter: 50000, Strength: 0}
	v := View{
		ActiveNodes: []*continuity.Node{n},
		Recent:      []temporal.Sample{{Timestamp: 0, Price: 50000}},
	}
	assert.Nil(t, CentralTendencyDeviation(v))
}
