package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type BotMetrics struct {
	Events    *prometheus.CounterVec
	Errors    *prometheus.CounterVec
	Orders    prometheus.Counter
	LatencyMS *prometheus.HistogramVec
	gatherer  prometheus.Gatherer
}

// New registers the bot collectors on a fresh registry.
func New() *BotMetrics {
	reg := prometheus.NewRegistry()
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chatshop",
		Name:      "events_total",
		Help:      "Inbound chat events by kind and action.",
	}, []string{"kind", "action"})
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chatshop",
		Name:      "event_errors_total",
		Help:      "Events answered with a corrective message, by error kind.",
	}, []string{"error"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "chatshop",
		Name:      "orders_confirmed_total",
		Help:      "Confirmed orders.",
	})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chatshop",
		Name:      "event_duration_ms",
		Help:      "Event handling latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"kind"})

	reg.MustRegister(events, errs, orders, latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &BotMetrics{Events: events, Errors: errs, Orders: orders, LatencyMS: latency, gatherer: reg}
}

func (m *BotMetrics) ObserveEvent(kind, action string, d time.Duration) {
	m.Events.WithLabelValues(kind, action).Inc()
	m.LatencyMS.WithLabelValues(kind).Observe(float64(d.Microseconds()) / 1000)
}

func (m *BotMetrics) ObserveError(kind string) {
	m.Errors.WithLabelValues(kind).Inc()
}

func (m *BotMetrics) ObserveOrder() {
	m.Orders.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *BotMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
