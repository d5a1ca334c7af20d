package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	renderDuration    *prom.HistogramVec
	renderResults     *prom.CounterVec
	httpDuration      *prom.HistogramVec
	exportDuration    *prom.HistogramVec
	liveReloadClients prom.Gauge
	contentReloads    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.renderDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "keepsake_site",
			Name:      "render_duration_seconds",
			Help:      "Duration of a single page render pass",
			Buckets:   prom.DefBuckets,
		}, []string{"page"})
		pr.renderResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "keepsake_site",
			Name:      "render_results_total",
			Help:      "Page render counts by result",
		}, []string{"page", "result"})
		pr.httpDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "keepsake_site",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and status",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "route", "status"})
		pr.exportDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "keepsake_site",
			Name:      "export_duration_seconds",
			Help:      "Static export duration",
			Buckets:   prom.DefBuckets,
		}, []string{"result"})
		pr.liveReloadClients = prom.NewGauge(prom.GaugeOpts{
			Namespace: "keepsake_site",
			Name:      "livereload_clients",
			Help:      "Connected live reload clients",
		})
		pr.contentReloads = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "keepsake_site",
			Name:      "content_reloads_total",
			Help:      "Content reloads by result",
		}, []string{"result"})
		reg.MustRegister(pr.renderDuration, pr.renderResults, pr.httpDuration, pr.exportDuration, pr.liveReloadClients, pr.contentReloads)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRenderDuration(page string, d time.Duration) {
	if p == nil || p.renderDuration == nil {
		return
	}
	p.renderDuration.WithLabelValues(page).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRenderResult(page string, result ResultLabel) {
	if p == nil || p.renderResults == nil {
		return
	}
	p.renderResults.WithLabelValues(page, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if p == nil || p.httpDuration == nil {
		return
	}
	p.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveExportDuration(d time.Duration, result ResultLabel) {
	if p == nil || p.exportDuration == nil {
		return
	}
	p.exportDuration.WithLabelValues(string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetLiveReloadClients(n int) {
	if p == nil || p.liveReloadClients == nil {
		return
	}
	p.liveReloadClients.Set(float64(n))
}

func (p *PrometheusRecorder) IncContentReload(result ResultLabel) {
	if p == nil || p.contentReloads == nil {
		return
	}
	p.contentReloads.WithLabelValues(string(result)).Inc()
}
