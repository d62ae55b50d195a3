package utils

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "quadlife"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	ActiveCells          int
	BoundingBoxSize      int

	generations  prometheus.Counter
	population   prometheus.Gauge
	restarts     *prometheus.CounterVec
	tickDuration prometheus.Histogram
}

// NewStats creates stats whose collectors are registered on reg.
// A nil reg keeps the collectors unregistered.
func NewStats(reg prometheus.Registerer) *Stats {
	s := &Stats{
		StartTime: time.Now(),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Total generations simulated",
		}),
		population: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "living_cells",
			Help:      "Living cells in the current generation",
		}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "restarts_total",
			Help:      "World restarts by reason",
		}, []string{"reason"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent computing one generation",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
		}),
	}
	if reg != nil {
		reg.MustRegister(s.generations, s.population, s.restarts, s.tickDuration)
	}
	return s
}

// Update records a finished generation
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	s.ActiveCells = population
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}

	s.generations.Inc()
	s.population.Set(float64(population))
	s.tickDuration.Observe(duration.Seconds())
}

// RecordRestart counts a restart of the world
func (s *Stats) RecordRestart(reason string) {
	s.restarts.WithLabelValues(reason).Inc()
}

// Elapsed returns the wall time since the stats were created
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}
