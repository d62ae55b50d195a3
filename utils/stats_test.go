package utils

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsUpdate(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewStats(reg)

	s.Update(1, 100, 10*time.Millisecond)
	assert.Equal(t, 1, s.TotalGenerations)
	assert.InDelta(t, 100.0, s.GenerationsPerSecond, 1e-9)
	assert.Equal(t, 100.0, s.AveragePopulation)

	s.Update(2, 200, 0)
	assert.InDelta(t, 110.0, s.AveragePopulation, 1e-9)
	assert.Equal(t, 200, s.ActiveCells)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.generations))
	assert.Equal(t, 200.0, testutil.ToFloat64(s.population))

	count, err := testutil.GatherAndCount(reg, "quadlife_tick_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStatsRecordRestart(t *testing.T) {
	s := NewStats(nil)

	s.RecordRestart("extinction")
	s.RecordRestart("extinction")
	s.RecordRestart("stagnation")

	assert.Equal(t, 2.0, testutil.ToFloat64(s.restarts.WithLabelValues("extinction")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.restarts.WithLabelValues("stagnation")))
}
