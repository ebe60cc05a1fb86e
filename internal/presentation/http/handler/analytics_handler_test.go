package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-analytics-api/internal/application/service"
	"github.com/sangkips/sales-analytics-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	report *service.SalesAnalysis
	err    error
}

func (s stubAnalyzer) GetSalesAnalysis(context.Context) (*service.SalesAnalysis, error) {
	return s.report, s.err
}

func serve(t *testing.T, analyzer SalesAnalyzer) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/analytics/sales", NewAnalyticsHandler(analyzer).GetSalesAnalysis)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/sales", nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetSalesAnalysisSuccess(t *testing.T) {
	report := &service.SalesAnalysis{
		Products:      []service.ProductSales{{ProductName: "Tent", Quantity: 3}},
		Cities:        []service.CityDemand{},
		Trends:        []service.TrendPoint{},
		CustomerTypes: []service.CustomerSegment{},
		Cancellations: []service.Cancellation{},
		Profitability: service.Profitability{TotalAmount: 100, AmountPaid: 60, UnpaidAmount: 40},
	}

	rec := serve(t, stubAnalyzer{report: report})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.ElementsMatch(t,
		[]string{"products", "cities", "trends", "profitability", "quotations", "customer_types", "cancellations"},
		keys(body))
	assert.JSONEq(t, `[{"productname":"Tent","quantity":3}]`, string(body["products"]))
	assert.JSONEq(t, `[]`, string(body["cities"]))
	assert.JSONEq(t, `{"total_amount":100,"amount_paid":60,"unpaid_amount":40}`, string(body["profitability"]))
}

func TestGetSalesAnalysisFailure(t *testing.T) {
	cause := errors.New(`sales analytics query "products": connection refused`)
	err := apperror.NewInternalError("Failed to compute sales analysis", cause)

	rec := serve(t, stubAnalyzer{err: err})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t,
		`{"message":"Failed to compute sales analysis","error":"sales analytics query \"products\": connection refused"}`,
		rec.Body.String())
}

func TestGetSalesAnalysisPlainError(t *testing.T) {
	rec := serve(t, stubAnalyzer{err: errors.New("boom")})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error","error":"boom"}`, rec.Body.String())
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
