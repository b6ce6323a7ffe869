// Package metrics exposes Prometheus collectors for the assignment engine and HTTP layer.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "task_capacity"

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Auto-assign outcomes.
const (
	OutcomeAssigned      = "assigned"
	OutcomeNoneAvailable = "none_available"
	OutcomeNoMembers     = "no_members"
	OutcomeError         = "error"
)

// Metrics holds every collector the service records into.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requestTotal       *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	capacityWarnings   *prometheus.CounterVec
	autoAssignResults  *prometheus.CounterVec
	reassignMoves      *prometheus.CounterVec
	reassignDuration   prometheus.Histogram
	negotiationResults *prometheus.CounterVec
	activityPublished  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Collectors already registered with reg are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		capacityWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "capacity",
			Name:      "warnings_total",
			Help:      "Capacity warnings raised during evaluation",
		}, []string{"severity"}),
		autoAssignResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assignment",
			Name:      "auto_assign_total",
			Help:      "Auto-assign outcomes",
		}, []string{"outcome"}),
		reassignMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assignment",
			Name:      "reassign_tasks_total",
			Help:      "Tasks considered by bulk reassignment, by result",
		}, []string{"result"}),
		reassignDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "assignment",
			Name:      "reassign_duration_seconds",
			Help:      "Duration of a bulk reassignment run",
			Buckets:   histogramBuckets,
		}),
		negotiationResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "negotiation",
			Name:      "results_total",
			Help:      "Negotiation submissions and decisions",
		}, []string{"result"}),
		activityPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activity",
			Name:      "published_total",
			Help:      "Activity events handed to the event stream",
		}, []string{"kind", "status"}),
	}

	var err error
	m.requestTotal, err = registerCounterVec(reg, m.requestTotal)
	if err != nil {
		return nil, err
	}
	m.requestDuration, err = registerHistogramVec(reg, m.requestDuration)
	if err != nil {
		return nil, err
	}
	for _, cv := range []**prometheus.CounterVec{
		&m.capacityWarnings, &m.autoAssignResults, &m.reassignMoves, &m.negotiationResults, &m.activityPublished,
	} {
		if *cv, err = registerCounterVec(reg, *cv); err != nil {
			return nil, err
		}
	}
	if err := reg.Register(m.reassignDuration); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		if existing, ok := already.ExistingCollector.(prometheus.Histogram); ok {
			m.reassignDuration = existing
		}
	}

	return m, nil
}

func registerCounterVec(reg prometheus.Registerer, cv *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(cv); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return cv, nil
}

func registerHistogramVec(reg prometheus.Registerer, hv *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	if err := reg.Register(hv); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return hv, nil
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestTotal.With(labels).Inc()
	m.requestDuration.With(labels).Observe(duration.Seconds())
}

// CapacityWarning records a warning of the given severity.
func (m *Metrics) CapacityWarning(severity string) {
	if m == nil {
		return
	}
	m.capacityWarnings.WithLabelValues(severity).Inc()
}

// AutoAssign records an auto-assign outcome.
func (m *Metrics) AutoAssign(outcome string) {
	if m == nil {
		return
	}
	m.autoAssignResults.WithLabelValues(outcome).Inc()
}

// Reassignment records the result of one bulk reassignment run.
func (m *Metrics) Reassignment(moved, skipped, unresolved int, duration time.Duration) {
	if m == nil {
		return
	}
	m.reassignMoves.WithLabelValues("moved").Add(float64(moved))
	m.reassignMoves.WithLabelValues("skipped").Add(float64(skipped))
	m.reassignMoves.WithLabelValues("unresolved").Add(float64(unresolved))
	m.reassignDuration.Observe(duration.Seconds())
}

// Negotiation records a negotiation step (created, warned, confirm, auto_assign, cancel, none_available).
func (m *Metrics) Negotiation(result string) {
	if m == nil {
		return
	}
	m.negotiationResults.WithLabelValues(result).Inc()
}

// ActivityPublished records an activity publish attempt.
func (m *Metrics) ActivityPublished(kind string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.activityPublished.WithLabelValues(kind, status).Inc()
}
