package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-analytics-api/internal/application/service"
	"github.com/sangkips/sales-analytics-api/internal/config"
	"github.com/sangkips/sales-analytics-api/internal/observability"
	"github.com/sangkips/sales-analytics-api/internal/presentation/http/handler"
	"github.com/sangkips/sales-analytics-api/internal/presentation/http/middleware"
	"github.com/sangkips/sales-analytics-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyAnalyzer struct{}

func (emptyAnalyzer) GetSalesAnalysis(context.Context) (*service.SalesAnalysis, error) {
	return &service.SalesAnalysis{
		Products:      []service.ProductSales{},
		Cities:        []service.CityDemand{},
		Trends:        []service.TrendPoint{},
		CustomerTypes: []service.CustomerSegment{},
		Cancellations: []service.Cancellation{},
	}, nil
}

func newRouter(t *testing.T, limit config.RateLimitConfig) (*gin.Engine, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	cfg := &config.Config{
		App:       config.AppConfig{Name: "sales-analytics-api"},
		RateLimit: limit,
	}
	limiter := NewRateLimiter(&cfg.RateLimit)
	t.Cleanup(limiter.Close)

	router := Setup(&Handlers{
		Analytics: handler.NewAnalyticsHandler(emptyAnalyzer{}),
	}, &Deps{
		Cfg:         cfg,
		Logger:      logger.NewWithWriter(&config.LogConfig{Format: "json"}, &logs),
		Metrics:     observability.NewMetrics(),
		RateLimiter: limiter,
	})
	return router, &logs
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	router, _ := newRouter(t, config.RateLimitConfig{Requests: 10, Duration: 60})

	rec := get(router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"sales-analytics-api"}`, rec.Body.String())
}

func TestSalesAnalysisRoute(t *testing.T) {
	router, logs := newRouter(t, config.RateLimitConfig{Requests: 10, Duration: 60})

	rec := get(router, "/api/v1/analytics/sales")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []any{}, body["products"])
	assert.Contains(t, logs.String(), `"path":"/api/v1/analytics/sales"`)
}

func TestRequestIDIsPropagated(t *testing.T) {
	router, _ := newRouter(t, config.RateLimitConfig{Requests: 10, Duration: 60})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimitExceeded(t *testing.T) {
	router, _ := newRouter(t, config.RateLimitConfig{Requests: 1, Duration: 3600})

	require.Equal(t, http.StatusOK, get(router, "/api/v1/analytics/sales").Code)

	rec := get(router, "/api/v1/analytics/sales")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.JSONEq(t,
		`{"message":"Rate limit exceeded. Please try again later.","error":"Rate limit exceeded. Please try again later."}`,
		rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newRouter(t, config.RateLimitConfig{Requests: 10, Duration: 60})

	rec := get(router, "/api/v1/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Resource not found","error":"Resource not found"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newRouter(t, config.RateLimitConfig{Requests: 10, Duration: 60})

	get(router, "/api/v1/analytics/sales")
	rec := get(router, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sales_analytics_http_requests_total{code="200",route="/api/v1/analytics/sales"} 1`)
}
