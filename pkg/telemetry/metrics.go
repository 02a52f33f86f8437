// Package telemetry exposes the engine's Prometheus metrics: tick
// cadence, active-session counts, combat rounds, command dispatch, and
// effect ticks.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus collector the engine registers.
type Metrics struct {
	tickDuration *prometheus.HistogramVec

	activeSessions prometheus.Gauge
	activeMobs     prometheus.Gauge

	combatRounds   prometheus.Counter
	combatHits     *prometheus.CounterVec
	commandDispatch *prometheus.CounterVec

	effectTicks   *prometheus.CounterVec
	effectExpires *prometheus.CounterVec

	serverStartTime prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers every collector with a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		tickDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "duskward_tick_duration_seconds",
				Help:    "Duration of one executor tick by phase",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"}, // "combat_round", "effect_drain"
		),

		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "duskward_sessions_active",
				Help: "Number of connected player sessions",
			},
		),

		activeMobs: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "duskward_mobs_active",
				Help: "Number of live mob entities across all dungeons",
			},
		),

		combatRounds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "duskward_combat_rounds_total",
				Help: "Total number of combat rounds resolved",
			},
		),

		combatHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "duskward_combat_hits_total",
				Help: "Total combat hit outcomes by result",
			},
			[]string{"result"}, // "hit", "miss", "crit", "lethal"
		),

		commandDispatch: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "duskward_command_dispatch_total",
				Help: "Total command dispatches by outcome",
			},
			[]string{"outcome"}, // "ok", "error"
		),

		effectTicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "duskward_effect_ticks_total",
				Help: "Total effect tick events by template",
			},
			[]string{"template_id"},
		),

		effectExpires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "duskward_effect_expires_total",
				Help: "Total effect expiration events by template",
			},
			[]string{"template_id"},
		),

		serverStartTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "duskward_server_start_time_seconds",
				Help: "Unix timestamp when the server started",
			},
		),

		registry: registry,
	}

	m.registry.MustRegister(
		m.tickDuration,
		m.activeSessions,
		m.activeMobs,
		m.combatRounds,
		m.combatHits,
		m.commandDispatch,
		m.effectTicks,
		m.effectExpires,
		m.serverStartTime,
	)

	m.serverStartTime.SetToCurrentTime()

	return m
}

// Handler returns an HTTP handler exposing the metrics in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          m.registry,
	})
}

// ObserveTick records the duration of one executor phase.
func (m *Metrics) ObserveTick(phase string, d time.Duration) {
	m.tickDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// SetActiveSessions updates the connected-session gauge.
func (m *Metrics) SetActiveSessions(count int) {
	m.activeSessions.Set(float64(count))
}

// SetActiveMobs updates the live-mob gauge.
func (m *Metrics) SetActiveMobs(count int) {
	m.activeMobs.Set(float64(count))
}

// RecordCombatRound increments the combat round counter.
func (m *Metrics) RecordCombatRound() {
	m.combatRounds.Inc()
}

// RecordCombatHit records one hit-resolution outcome.
func (m *Metrics) RecordCombatHit(result string) {
	m.combatHits.WithLabelValues(result).Inc()
}

// RecordCommandDispatch records one command dispatch outcome.
func (m *Metrics) RecordCommandDispatch(outcome string) {
	m.commandDispatch.WithLabelValues(outcome).Inc()
}

// RecordEffectTick records a DoT/HoT tick for a template.
func (m *Metrics) RecordEffectTick(templateID string) {
	m.effectTicks.WithLabelValues(templateID).Inc()
}

// RecordEffectExpire records an effect instance's expiration.
func (m *Metrics) RecordEffectExpire(templateID string) {
	m.effectExpires.WithLabelValues(templateID).Inc()
}
