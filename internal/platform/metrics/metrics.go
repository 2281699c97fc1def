package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "cat_registry"
	subsystem = "http"
)

// HTTP agrupa las métricas RED del API.
type HTTP struct {
	reg  *prometheus.Registry
	reqs *prometheus.CounterVec
	errs *prometheus.CounterVec
	durs *prometheus.HistogramVec
}

// NewHTTP registra las métricas en un registry propio (evita colisiones en tests).
func NewHTTP() *HTTP {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &HTTP{
		reg: reg,
		reqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Number of HTTP requests handled",
		}, []string{"method", "route", "code"}),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Number of HTTP requests answered with a 4xx/5xx status",
		}, []string{"method", "route", "code"}),
		durs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.reqs, m.errs, m.durs)
	return m
}

func (m *HTTP) Observe(method, route string, status int, took time.Duration) {
	code := strconv.Itoa(status)
	m.reqs.WithLabelValues(method, route, code).Inc()
	if status >= http.StatusBadRequest {
		m.errs.WithLabelValues(method, route, code).Inc()
	}
	m.durs.WithLabelValues(method, route).Observe(took.Seconds())
}

// Handler expone /metrics.
func (m *HTTP) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *HTTP) Registry() *prometheus.Registry { return m.reg }
