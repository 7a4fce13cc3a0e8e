package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	GeocodeRequests prometheus.Counter
	GeocodeErrors   prometheus.Counter

	PairwiseRequests prometheus.Counter
	PairwiseErrors   prometheus.Counter

	CacheHits   *prometheus.CounterVec // cache label: geocode|cost
	CacheMisses *prometheus.CounterVec

	Optimizations   *prometheus.CounterVec // objective, mode labels
	InfeasibleTours prometheus.Counter

	MatrixBuildDuration prometheus.Histogram
	SolverDuration      prometheus.Histogram

	EventsPublished    prometheus.Counter
	EventPublishErrs   prometheus.Counter
	PublisherConnected prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		GeocodeRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_geocode_requests_total",
			Help: "Total geocoding collaborator calls.",
		}),
		GeocodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_geocode_errors_total",
			Help: "Total failed geocoding collaborator calls.",
		}),
		PairwiseRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_pairwise_requests_total",
			Help: "Total pairwise routing collaborator calls.",
		}),
		PairwiseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_pairwise_errors_total",
			Help: "Total failed pairwise routing calls (stored as infinite edges).",
		}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "optimizer_cache_hits_total",
			Help: "Cache hits by cache kind.",
		}, []string{"cache"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "optimizer_cache_misses_total",
			Help: "Cache misses by cache kind.",
		}, []string{"cache"}),
		Optimizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "optimizer_optimizations_total",
			Help: "Completed optimizations by objective and transport mode.",
		}, []string{"objective", "mode"}),
		InfeasibleTours: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_infeasible_tours_total",
			Help: "Requests where no finite closed tour existed.",
		}),
		MatrixBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optimizer_matrix_build_duration_seconds",
			Help:    "Wall time to build the pairwise cost matrix.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		SolverDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optimizer_solver_duration_seconds",
			Help:    "Wall time of the exact tour search.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_events_published_total",
			Help: "Total result events published.",
		}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_event_publish_errors_total",
			Help: "Total result event publish errors.",
		}),
		PublisherConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "optimizer_publisher_connected",
			Help: "1 if the event broker connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		c.GeocodeRequests, c.GeocodeErrors,
		c.PairwiseRequests, c.PairwiseErrors,
		c.CacheHits, c.CacheMisses,
		c.Optimizations, c.InfeasibleTours,
		c.MatrixBuildDuration, c.SolverDuration,
		c.EventsPublished, c.EventPublishErrs, c.PublisherConnected,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
