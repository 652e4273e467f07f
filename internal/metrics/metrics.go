// Package metrics - Prometheus metrics for simulations and the HTTP API
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roaming-cost/core/types"
)

// Simulation outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNoOption = "no_countries"
	OutcomeError    = "error"
)

// Collector bundles the simulator's Prometheus metrics
type Collector struct {
	gatherer prometheus.Gatherer

	Simulations        *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	EstimateCount      prometheus.Histogram
	Alerts             *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDurations      *prometheus.HistogramVec
}

// NewCollector registers metrics against reg, defaulting to the global
// Prometheus registry when nil. Registering twice against the same
// registry returns the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	simulations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roaming_simulations_total",
		Help: "Total number of simulations, labeled by outcome.",
	}, []string{"outcome"}), "roaming_simulations_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roaming_simulation_duration_seconds",
		Help:    "Simulation latency in seconds.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}), "roaming_simulation_duration_seconds")
	if err != nil {
		return nil, err
	}

	estimates, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roaming_simulation_estimates",
		Help:    "Number of estimates produced per simulation.",
		Buckets: prometheus.LinearBuckets(1, 1, 8),
	}), "roaming_simulation_estimates")
	if err != nil {
		return nil, err
	}

	alerts, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roaming_alerts_total",
		Help: "Total number of trip alerts raised, labeled by severity.",
	}, []string{"severity"}), "roaming_alerts_total")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roaming_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by route and status code.",
	}, []string{"route", "code"}), "roaming_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roaming_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"}), "roaming_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		Simulations:        simulations,
		SimulationDuration: duration,
		EstimateCount:      estimates,
		Alerts:             alerts,
		HTTPRequests:       requests,
		HTTPDurations:      durations,
	}, nil
}

// ObserveSimulation records one finished simulation
func (c *Collector) ObserveSimulation(result *types.SimulationResult, elapsed time.Duration) {
	if c == nil || result == nil {
		return
	}

	outcome := OutcomeOK
	if result.BestIndex < 0 {
		outcome = OutcomeNoOption
	}
	c.Simulations.WithLabelValues(outcome).Inc()
	c.SimulationDuration.Observe(elapsed.Seconds())
	c.EstimateCount.Observe(float64(len(result.Estimates)))
	for _, a := range result.Alerts {
		c.Alerts.WithLabelValues(string(a.Severity)).Inc()
	}
}

// ObserveFailure records a simulation rejected before evaluation
func (c *Collector) ObserveFailure() {
	if c == nil {
		return
	}
	c.Simulations.WithLabelValues(OutcomeError).Inc()
}

// ObserveRequest records one handled HTTP request
func (c *Collector) ObserveRequest(route string, code int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	c.HTTPDurations.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler exposes a ready-to-use /metrics handler
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
