package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the service's Prometheus metrics on a private registry.
type Manager struct {
	Registry             *prometheus.Registry
	ListingsCreatedTotal prometheus.Counter
	RequestLatency       *prometheus.HistogramVec
	APIErrorsTotal       *prometheus.CounterVec
}

func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	listingsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	})
	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of 5xx responses by route.",
	}, []string{"method", "route"})

	registry.MustRegister(
		listingsCreatedTotal,
		requestLatency,
		apiErrorsTotal,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:             registry,
		ListingsCreatedTotal: listingsCreatedTotal,
		RequestLatency:       requestLatency,
		APIErrorsTotal:       apiErrorsTotal,
	}
}

// StartServer exposes /metrics on its own port. An empty port disables it.
func StartServer(port string, log *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		log.Info("metrics server port not configured, not starting")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info("metrics server starting", zap.String("port", port))
	server := &http.Server{Addr: ":" + port, Handler: mux}
	return server.ListenAndServe()
}
