package obsmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/ksiaz/obscore/internal/types"
)

func TestCounters_NilRegistererSkipsRegistration(t *testing.T) {
	c := NewCounters(nil)
	c.IncIngested("BTC-PERP")
	assert.NotPanics(t, func() { c.IncNormalizeFailure(types.EventTrade, "BTC-PERP") })
}

func TestCounters_RegistersAgainstProvidedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounters(reg)

	c.IncNormalizeFailure(types.EventTrade, "BTC-PERP")
	assert.Equal(t, int64(1), c.NormalizeFailures(types.EventTrade, "BTC-PERP"))

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCounters_SetHaltedRoundTrips(t *testing.T) {
	c := NewCounters(nil)
	assert.False(t, c.Halted())
	c.SetHalted(true)
	assert.True(t, c.Halted())
}
