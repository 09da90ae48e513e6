package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksiaz/obscore/internal/config"
)

func TestPush_RejectsTimestampRegression(t *testing.T) {
	s := NewStore(config.Default())
	require.NoError(t, s.Push("BTC-PERP", 10, 50000))

	err := s.Push("BTC-PERP", 5, 50010)
	assert.Error(t, err)
}

func TestPush_AcceptsEqualTimestamp(t *testing.T) {
	s := NewStore(config.Default())
	require.NoError(t, s.Push("BTC-PERP", 10, 50000))
	require.NoError(t, s.Push("BTC-PERP", 10, 50005))

	assert.True(t, s.IsSorted("BTC-PERP"))
	price, ok := s.GetMostRecentPrice("BTC-PERP")
	require.True(t, ok)
	assert.Equal(t, 50005.0, price)
}

func TestTrim_EnforcesRingSizeAndMaxAge(t *testing.T) {
	cfg := config.Default()
	cfg.Temporal.RingSize = 3
	cfg.Temporal.MaxAgeSec = 1000
	s := NewStore(cfg)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Push("BTC-PERP", float64(i), 50000+float64(i)))
	}

	recent := s.GetRecentPrices("BTC-PERP", 0)
	require.Len(t, recent, 3)
	assert.Equal(t, 50002.0, recent[0].Price)
	assert.Equal(t, 50004.0, recent[2].Price)
}

func TestTrim_DropsSamplesOlderThanMaxAge(t *testing.T) {
	cfg := config.Default()
	cfg.Temporal.RingSize = 1024
	cfg.Temporal.MaxAgeSec = 10
	s := NewStore(cfg)

	require.NoError(t, s.Push("BTC-PERP", 0, 50000))
	require.NoError(t, s.Push("BTC-PERP", 20, 50010))

	recent := s.GetRecentPrices("BTC-PERP", 0)
	require.Len(t, recent, 1)
	assert.Equal(t, 50010.0, recent[0].Price)
}

func TestGetRecentPrices_CapsToMaxCount(t *testing.T) {
	s := NewStore(config.Default())
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Push("BTC-PERP", float64(i), 50000+float64(i)))
	}

	recent := s.GetRecentPrices("BTC-PERP", 3)
	require.Len(t, recent, 3)
	assert.Equal(t, 50007.0, recent[0].Price)
	assert.Equal(t, 50009.0, recent[2].Price)
}

func TestCandleBuilder_RotatesBucketAndTracksHighLow(t *testing.T) {
	b := NewCandleBuilder(1)

	b.PushTradePrice("BTC-PERP", 0.1, 100)
	b.PushTradePrice("BTC-PERP", 0.5, 105)
	b.PushTradePrice("BTC-PERP", 0.9, 95)

	_, ok := b.LastClosed("BTC-PERP")
	assert.False(t, ok, "bucket should still be open")

	b.PushTradePrice("BTC-PERP", 1.2, 102)

	closed, ok := b.LastClosed("BTC-PERP")
	require.True(t, ok)
	assert.Equal(t, 100.0, closed.Open)
	assert.Equal(t, 105.0, closed.High)
	assert.Equal(t, 95.0, closed.Low)
	assert.Equal(t, 95.0, closed.Close)
	assert.Equal(t, 0.0, closed.BucketStart)
	assert.Equal(t, 1.0, closed.BucketEnd)
}

func TestCandleBuilder_SeparateSymbolsAreIndependent(t *testing.T) {
	b := NewCandleBuilder(1)
	b.PushTradePrice("BTC-PERP", 0.1, 50000)
	b.PushTradePrice("ETH-PERP", 0.1, 3000)

	_, ok := b.LastClosed("ETH-PERP")
	assert.False(t, ok)
}
