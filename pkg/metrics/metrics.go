// Package metrics registers the Prometheus collectors for classification
// and scene evaluation and serves them over HTTP.
package metrics

import (
	"net/http"

	"github.com/chazu/enclose/pkg/locator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ClassificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enclose_classifications_total",
		Help: "Total point classifications by result",
	}, []string{"result"})
	RejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enclose_rejections_total",
		Help: "Classifications decided by a bounding volume before ray casting",
	}, []string{"volume"})
	RayCrossings = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "enclose_ray_crossings",
		Help:    "Triangle crossings counted per cast ray",
		Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 16},
	})
	ParallelTrianglesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enclose_parallel_triangles_total",
		Help: "Triangles skipped because the ray was parallel to them",
	})
	EvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enclose_evaluations_total",
		Help: "Scene evaluations by outcome",
	}, []string{"outcome"})
	EvaluationDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "enclose_evaluation_duration_ms",
		Help:    "Scene evaluation duration in milliseconds",
		Buckets: []float64{5, 10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	MeshTriangles = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "enclose_mesh_triangles",
		Help:    "Triangles per tessellated solid",
		Buckets: prometheus.ExponentialBuckets(64, 4, 8),
	})
)

func init() {
	prometheus.MustRegister(ClassificationsTotal)
	prometheus.MustRegister(RejectionsTotal)
	prometheus.MustRegister(RayCrossings)
	prometheus.MustRegister(ParallelTrianglesTotal)
	prometheus.MustRegister(EvaluationsTotal)
	prometheus.MustRegister(EvaluationDurationMs)
	prometheus.MustRegister(MeshTriangles)
}

// Observe records one classification. It has the locator.Tracer signature.
func Observe(ev locator.TraceEvent) {
	ClassificationsTotal.WithLabelValues(ev.Result.String()).Inc()
	if ev.Rejection != locator.NotRejected {
		RejectionsTotal.WithLabelValues(ev.Rejection.String()).Inc()
		return
	}
	RayCrossings.Observe(float64(ev.Crossings))
	if ev.Parallel > 0 {
		ParallelTrianglesTotal.Add(float64(ev.Parallel))
	}
}

// Handler serves the registered collectors for scraping at /metrics.
func Handler() http.Handler { return promhttp.Handler() }
