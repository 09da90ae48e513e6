package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksiaz/obscore/internal/continuity"
	"github.com/ksiaz/obscore/internal/temporal"
)

func viewWithNode(n *continuity.Node, price float64) View {
	return View{
		Symbol:      "BTC-PERP",
		Now:         100,
		ActiveNodes: []*continuity.Node{n},
		AllNodes:    []*continuity.Node{n},
		Recent:      []temporal.Sample{{Timestamp: 100, Price: price}},
	}
}

func TestRestingSizeAtPrice_NoneWithoutOrderbookTouch(t *testing.T) {
	n := &continuity.Node{PriceCenter: 50000, PriceBand: 25}
	assert.Nil(t, RestingSizeAtPrice(viewWithNode(n, 50000)))
}

func TestRestingSizeAtPrice_ReportsTouchedNode(t *testing.T) {
	n := &continuity.Node{PriceCenter: 50000, PriceBand: 25, RestingSizeBid: 10, RestingSizeAsk: 5, LastOrderbookUpdateTS: 99}
	got := RestingSizeAtPrice(viewWithNode(n, 50000))
	require.NotNil(t, got)
	assert.Equal(t, 10.0, got.SizeBid)
	assert.Equal(t, 5.0, got.SizeAsk)
}

func TestOrderConsumption_DetectsBidReduction(t *testing.T) {
	n := &continuity.Node{
		PriceCenter:               50000,
		PreviousRestingSizeBid:    10,
		RestingSizeBid:            4,
		LastOrderbookUpdateTS:     100,
		PreviousOrderbookUpdateTS: 95,
	}
	got := OrderConsumption(viewWithNode(n, 50000))
	require.NotNil(t, got)
	assert.Equal(t, 10.0, got.InitialSize)
	assert.Equal(t, 6.0, got.ConsumedSize)
	assert.Equal(t, 4.0, got.RemainingSize)
	assert.Equal(t, 5.0, got.Duration)
}

func TestOrderConsumption_NoneWhenSizesGrow(t *testing.T) {
	n := &continuity.Node{
		PriceCenter:            50000,
		PreviousRestingSizeBid: 4,
		RestingSizeBid:         10,
		LastOrderbookUpdateTS:  100,
	}
	assert.Nil(t, OrderConsumption(viewWithNode(n, 50000)))
}

func TestAbsorptionEvent_FiresWithinStabilityBound(t *testing.T) {
	n := &continuity.Node{
		PriceCenter:               50000,
		PreviousRestingSizeBid:    10,
		RestingSizeBid:            2,
		LastOrderbookUpdateTS:     100,
		PreviousOrderbookUpdateTS: 95,
		TradeExecutionCount:       3,
	}
	v := viewWithNode(n, 50000)
	v.Windows.AbsorptionStabilityBoundTicks = 1
	v.Windows.TickSize = 1
	v.Recent = []temporal.Sample{{Timestamp: 95, Price: 50000}, {Timestamp: 100, Price: 50000}}

	got := AbsorptionEvent(v)
	require.NotNil(t, got)
	assert.Equal(t, 8.0, got.ConsumedSize)
	assert.Equal(t, 3, got.TradeCount)
}

func TestAbsorptionEvent_NoneWhenPriceMovesOutsideBound(t *testing.T) {
	n := &continuity.Node{
		PriceCenter:            50000,
		PreviousRestingSizeBid: 10,
		RestingSizeBid:         2,
		LastOrderbookUpdateTS:  100,
	}
	v := viewWithNode(n, 50000)
	v.Windows.AbsorptionStabilityBoundTicks = 1
	v.Windows.TickSize = 1
	v.Recent = []temporal.Sample{{Timestamp: 95, Price: 50000}, {Timestamp: 100, Price: 50050}}

	assert.Nil(t, AbsorptionEvent(v))
}

func TestRefillEvent_DetectsGrowthOnEitherSide(t *testing.T) {
	n := &continuity.Node{
		PriceCenter:               50000,
		PreviousRestingSizeAsk:    2,
		RestingSizeAsk:            9,
		LastOrderbookUpdateTS:     100,
		PreviousOrderbookUpdateTS: 90,
	}
	got := RefillEvent(viewWithNode(n, 50000))
	require.NotNil(t, got)
	assert.Equal(t, 7.0, got.RefillSize)
	assert.Equal(t, 10.0, got.Duration)
}

func TestLiquidationDensity_WorkedExample(t *testing.T) {
	n := &continuity.Node{PriceCenter: 50000, LiquidationVolume: 100, LiquidationCount: 1}
	got := LiquidationDensity(viewWithNode(n, 50000))
	require.NotNil(t, got)
	assert.Equal(t, 100.0, got.TotalVolume)
	assert.Equal(t, 1, got.LiquidationCount)
}
