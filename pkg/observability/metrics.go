package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/terranova/density/pkg/domain"
)

// Metrics holds the Prometheus collectors of one engine.
type Metrics struct {
	registry *prometheus.Registry

	compiles        *prometheus.CounterVec
	compileDuration prometheus.Histogram
	evaluations     *prometheus.CounterVec
	gridPoints      prometheus.Counter
	gridFaults      prometheus.Counter
	gridDuration    prometheus.Histogram
	memo            *prometheus.CounterVec
}

// NewMetrics registers the engine collectors, plus the Go and process
// collectors, on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		compiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "density_compiles_total",
			Help: "Documents compiled, by result",
		}, []string{"result"}),
		compileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "density_compile_duration_seconds",
			Help:    "Duration of parse and resolve",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "density_point_evaluations_total",
			Help: "Single-point evaluations, by result",
		}, []string{"result"}),
		gridPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "density_grid_points_total",
			Help: "Points sampled by grid passes",
		}),
		gridFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "density_grid_faults_total",
			Help: "Grid points that failed to evaluate",
		}),
		gridDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "density_grid_duration_seconds",
			Help:    "Duration of grid passes",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		memo: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "density_memo_lookups_total",
			Help: "Cache node lookups, by outcome",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.compiles, m.compileDuration,
		m.evaluations,
		m.gridPoints, m.gridFaults, m.gridDuration,
		m.memo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, e.g. for tests or extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompile: func(_ context.Context, e *domain.CompileEvent) {
			m.compiles.WithLabelValues(result(e.Err)).Inc()
			m.compileDuration.Observe(e.Duration.Seconds())
		},
		OnEvaluate: func(_ context.Context, e *domain.EvaluateEvent) {
			m.evaluations.WithLabelValues(result(e.Err)).Inc()
		},
		OnGrid: func(_ context.Context, e *domain.GridEvent) {
			m.gridPoints.Add(float64(e.Points))
			m.gridFaults.Add(float64(e.Faults))
			m.gridDuration.Observe(e.Duration.Seconds())
		},
		OnSessionEnd: func(_ context.Context, e *domain.SessionEvent) {
			m.memo.WithLabelValues("hit").Add(float64(e.Stats.Hits))
			m.memo.WithLabelValues("miss").Add(float64(e.Stats.Misses))
		},
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
