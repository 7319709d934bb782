// Package metrics provides Prometheus metrics for the valuation engine.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every engine metric.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	projectionsBlended  prometheus.Counter
	projectionsExcluded prometheus.Counter

	lineupSolves        *prometheus.CounterVec
	lineupSolveDuration prometheus.Histogram

	waiverSuggestions prometheus.Counter
	tradeEvaluations  prometheus.Counter
	draftBoards       prometheus.Counter
	rosterVORP        prometheus.Gauge
	duplicateGroups   prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gridiron",
		histogramBuckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		enabled:          true,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.projectionsBlended = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "projections_blended_total",
		Help:        "Players that received a blended projection",
		ConstLabels: m.constLabels,
	})

	m.projectionsExcluded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "projections_excluded_total",
		Help:        "Players dropped because no configured source covered them",
		ConstLabels: m.constLabels,
	})

	m.lineupSolves = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "lineup_solves_total",
			Help:        "Lineup optimizations by solver path",
			ConstLabels: m.constLabels,
		},
		[]string{"path"},
	)

	m.lineupSolveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lineup_solve_duration_seconds",
		Help:        "Wall time of a lineup optimization including fallback",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.waiverSuggestions = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "waiver_suggestions_total",
		Help:        "Waiver suggestions emitted",
		ConstLabels: m.constLabels,
	})

	m.tradeEvaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "trade_evaluations_total",
		Help:        "Trades evaluated",
		ConstLabels: m.constLabels,
	})

	m.draftBoards = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "draft_boards_total",
		Help:        "Draft boards built",
		ConstLabels: m.constLabels,
	})

	m.rosterVORP = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "roster_vorp",
		Help:        "Total VORP of my roster at the last evaluation",
		ConstLabels: m.constLabels,
	})

	m.duplicateGroups = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicate_player_groups",
		Help:        "Athletes described by more than one player record in the last snapshot",
		ConstLabels: m.constLabels,
	})
}

// RecordBlend counts blended and excluded players.
func (m *Manager) RecordBlend(blended, excluded int) {
	if !m.enabled {
		return
	}
	m.projectionsBlended.Add(float64(blended))
	m.projectionsExcluded.Add(float64(excluded))
}

// RecordLineupSolve counts one optimization on path and observes its duration.
func (m *Manager) RecordLineupSolve(path string, d time.Duration) {
	if !m.enabled {
		return
	}
	m.lineupSolves.WithLabelValues(path).Inc()
	m.lineupSolveDuration.Observe(d.Seconds())
}

// RecordWaiverSuggestions counts emitted suggestions.
func (m *Manager) RecordWaiverSuggestions(n int) {
	if !m.enabled {
		return
	}
	m.waiverSuggestions.Add(float64(n))
}

// RecordTradeEvaluation counts one evaluated trade.
func (m *Manager) RecordTradeEvaluation() {
	if !m.enabled {
		return
	}
	m.tradeEvaluations.Inc()
}

// RecordDraftBoard counts one built board.
func (m *Manager) RecordDraftBoard() {
	if !m.enabled {
		return
	}
	m.draftBoards.Inc()
}

// SetRosterVORP records my roster's total VORP.
func (m *Manager) SetRosterVORP(v float64) {
	if !m.enabled {
		return
	}
	m.rosterVORP.Set(v)
}

// SetDuplicateGroups records how many athletes have duplicate records.
func (m *Manager) SetDuplicateGroups(n int) {
	if !m.enabled {
		return
	}
	m.duplicateGroups.Set(float64(n))
}

// Global returns the process-wide manager registered on GetRegistry.
func Global() *Manager {
	return globalManager
}

// RecordBlend records on the global manager.
func RecordBlend(blended, excluded int) { globalManager.RecordBlend(blended, excluded) }

// RecordLineupSolve records on the global manager.
func RecordLineupSolve(path string, d time.Duration) { globalManager.RecordLineupSolve(path, d) }

// RecordWaiverSuggestions records on the global manager.
func RecordWaiverSuggestions(n int) { globalManager.RecordWaiverSuggestions(n) }

// RecordTradeEvaluation records on the global manager.
func RecordTradeEvaluation() { globalManager.RecordTradeEvaluation() }

// RecordDraftBoard records on the global manager.
func RecordDraftBoard() { globalManager.RecordDraftBoard() }

// SetRosterVORP records on the global manager.
func SetRosterVORP(v float64) { globalManager.SetRosterVORP(v) }

// SetDuplicateGroups records on the global manager.
func SetDuplicateGroups(n int) { globalManager.SetDuplicateGroups(n) }

// GetRegistry returns the custom registry for metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps g in the node-exporter textfile format.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
