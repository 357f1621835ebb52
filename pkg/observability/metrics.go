package observability

import (
	"sync"
	"time"

	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics turns engine events into Prometheus series.
type Metrics struct {
	nodeExecutions *prometheus.CounterVec
	runs           *prometheus.CounterVec
	runDuration    prometheus.Histogram
	logEvents      *prometheus.CounterVec
	active         prometheus.Gauge

	mu      sync.Mutex
	started map[string]time.Time
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		nodeExecutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdflow_node_executions_total",
				Help: "Node executions by kind and outcome",
			},
			[]string{"kind", "status"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdflow_runs_total",
				Help: "Finished runs by terminal state",
			},
			[]string{"state"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cmdflow_run_duration_seconds",
				Help:    "Wall time of finished runs",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
		),
		logEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdflow_log_events_total",
				Help: "Log events published by the engine, by severity",
			},
			[]string{"severity"},
		),
		active: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cmdflow_run_active",
				Help: "1 while a run is in progress",
			},
		),
		started: make(map[string]time.Time),
	}

	for _, c := range []prometheus.Collector{m.nodeExecutions, m.runs, m.runDuration, m.logEvents, m.active} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handle records one event. It is a Handler.
func (m *Metrics) Handle(ev domain.Event) {
	switch ev.Type {
	case domain.EventRunStarted:
		m.active.Set(1)
		m.mu.Lock()
		m.started[ev.RunID] = ev.Timestamp
		m.mu.Unlock()

	case domain.EventRunStopped:
		m.active.Set(0)
		m.runs.WithLabelValues(string(ev.State)).Inc()
		m.mu.Lock()
		start, ok := m.started[ev.RunID]
		delete(m.started, ev.RunID)
		m.mu.Unlock()
		if ok {
			m.runDuration.Observe(ev.Timestamp.Sub(start).Seconds())
		}

	case domain.EventNodeStatus:
		if ev.Node == nil {
			return
		}
		switch ev.Node.Status {
		case domain.StatusSucceeded, domain.StatusFailed:
			m.nodeExecutions.WithLabelValues(ev.Node.Kind, ev.Node.Status.String()).Inc()
		}

	case domain.EventLog:
		if ev.Log != nil {
			m.logEvents.WithLabelValues(string(ev.Log.Severity)).Inc()
		}
	}
}
