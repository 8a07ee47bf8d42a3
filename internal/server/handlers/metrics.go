package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-dashboard/internal/server/middlewares"
	"go.uber.org/zap"
)

// HTTPStatsSource supplies the request counters kept by the metrics
// middleware.
type HTTPStatsSource interface {
	HTTPStats() middlewares.HTTPStats
}

type providerMetrics struct {
	mutex  sync.RWMutex
	calls  map[string]int64
	errors map[string]int64
}

// MetricsHandler exposes HTTP and provider counters in the Prometheus text
// format. It doubles as the provider.CallRecorder for outbound calls.
type MetricsHandler struct {
	logger    *zap.Logger
	providers *providerMetrics
	http      HTTPStatsSource
}

func NewMetricsHandler(logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
		providers: &providerMetrics{
			calls:  make(map[string]int64),
			errors: make(map[string]int64),
		},
	}
}

// SetHTTPStatsSource attaches the middleware whose counters are exposed.
func (h *MetricsHandler) SetHTTPStatsSource(src HTTPStatsSource) {
	h.http = src
}

func (h *MetricsHandler) RecordProviderCall(ctx context.Context, provider string, success bool) {
	h.providers.mutex.Lock()
	defer h.providers.mutex.Unlock()

	h.providers.calls[provider]++
	if !success {
		h.providers.errors[provider]++
	}
}

func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	var b strings.Builder

	if h.http != nil {
		stats := h.http.HTTPStats()

		b.WriteString("# HELP http_requests_total Total number of HTTP requests\n")
		b.WriteString("# TYPE http_requests_total counter\n")
		for _, key := range sortedKeys(stats.RequestsTotal) {
			b.WriteString(`http_requests_total{route_status="` + key + `"} ` + strconv.FormatInt(stats.RequestsTotal[key], 10) + "\n")
		}

		b.WriteString("\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n")
		b.WriteString("# TYPE http_request_duration_seconds_avg gauge\n")
		b.WriteString("http_request_duration_seconds_avg " + strconv.FormatFloat(stats.AverageDuration, 'f', 6, 64) + "\n")

		b.WriteString("\n# HELP http_active_requests Number of active HTTP requests\n")
		b.WriteString("# TYPE http_active_requests gauge\n")
		b.WriteString("http_active_requests " + strconv.FormatInt(stats.ActiveRequests, 10) + "\n\n")
	}

	h.providers.mutex.RLock()
	b.WriteString("# HELP provider_calls_total Total outbound provider calls\n")
	b.WriteString("# TYPE provider_calls_total counter\n")
	for _, name := range sortedKeys(h.providers.calls) {
		b.WriteString(`provider_calls_total{provider="` + name + `"} ` + strconv.FormatInt(h.providers.calls[name], 10) + "\n")
	}

	b.WriteString("\n# HELP provider_errors_total Total failed outbound provider calls\n")
	b.WriteString("# TYPE provider_errors_total counter\n")
	for _, name := range sortedKeys(h.providers.errors) {
		b.WriteString(`provider_errors_total{provider="` + name + `"} ` + strconv.FormatInt(h.providers.errors[name], 10) + "\n")
	}
	h.providers.mutex.RUnlock()

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
