package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksiaz/obscore/internal/temporal"
)

func TestPriceAcceptanceRatio_NoneWithoutClosedCandle(t *testing.T) {
	assert.Nil(t, PriceAcceptanceRatio(View{}))
}

func TestPriceAcceptanceRatio_NoneOnDegenerateRange(t *testing.T) {
	v := View{Candle: &temporal.Candle{Open: 100, High: 100, Low: 100, Close: 100}}
	assert.Nil(t, PriceAcceptanceRatio(v))
}

func TestPriceAcceptanceRatio_ComputesBodyRatio(t *testing.T) {
	v := View{Candle: &temporal.Candle{Open: 100, High: 110, Low: 90, Close: 105}}
	got := PriceAcceptanceRatio(v)
	require.NotNil(t, got)
	assert.InDelta(t, 0.25, got.BodyRatio, 1e-9)
}
