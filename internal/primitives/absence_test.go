package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksiaz/obscore/internal/config"
	"github.com/ksiaz/obscore/internal/continuity"
	"github.com/ksiaz/obscore/internal/temporal"
)

func TestStructuralAbsenceDuration_NoneWithoutActiveNodes(t *testing.T) {
	assert.Nil(t, StructuralAbsenceDuration(View{}))
}

func TestStructuralAbsenceDuration_ReportsLongestIdleSpan(t *testing.T) {
	n1 := &continuity.Node{LastInteractionTS: 0}
	n2 := &continuity.Node{LastInteractionTS: 900}
	v := View{
		Now:         1000,
		ActiveNodes: []*continuity.Node{n1, n2},
		Windows:     config.Default().Windows,
	}
	got := StructuralAbsenceDuration(v)
	require.NotNil(t, got)
	assert.Equal(t, 1000.0, got.AbsenceDuration)
	assert.Equal(t, 1000.0/3600.0, got.AbsenceRatio)
}

func TestEventNonOccurrenceCounter_CountsShortfallBelowExpected(t *testing.T) {
	v := View{
		Now:     120,
		Recent:  []temporal.Sample{{Timestamp: 119, Price: 50000}},
		Windows: config.WindowsConfig{NonOccurrenceWindowSec: 60, NonOccurrenceExpectedPerWindow: 3},
	}
	got := EventNonOccurrenceCounter(v)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.ExpectedCount)
	assert.Equal(t, 1, got.ObservedCount)
	assert.Equal(t, 2, got.NonOccurrenceCount)
}

func TestTradeBurst_FindsBusiestBucket(t *testing.T) {
	v := View{
		RecentTrades: []temporal.Sample{
			{Timestamp: 0, Price: 1},
			{Timestamp: 0.2, Price: 1},
			{Timestamp: 0.5, Price: 1},
			{Timestamp: 5, Price: 1},
		},
		Windows: config.WindowsConfig{BurstWindowSec: 1},
	}
	got := TradeBurst(v)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Count)
}

func TestTradeBurst_IgnoresLiquidationOnlySamples(t *testing.T) {
	// Recent (trade+liquidation) is busy, but RecentTrades (trade-only) is
	// empty — TradeBurst must read the latter and report nothing.
	v := View{
		Recent: []temporal.Sample{
			{Timestamp: 0, Price: 1},
			{Timestamp: 0.2, Price: 1},
			{Timestamp: 0.5, Price: 1},
		},
		Windows: config.WindowsConfig{BurstWindowSec: 1},
	}
	assert.Nil(t, TradeBurst(v))
}
