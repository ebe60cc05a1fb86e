package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-analytics-api/internal/application/service"
	"github.com/sangkips/sales-analytics-api/internal/presentation/http/dto/response"
)

// SalesAnalyzer produces the consolidated sales report
type SalesAnalyzer interface {
	GetSalesAnalysis(ctx context.Context) (*service.SalesAnalysis, error)
}

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	analyzer SalesAnalyzer
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyzer SalesAnalyzer) *AnalyticsHandler {
	return &AnalyticsHandler{analyzer: analyzer}
}

// GetSalesAnalysis handles getting the consolidated sales report
func (h *AnalyticsHandler) GetSalesAnalysis(c *gin.Context) {
	report, err := h.analyzer.GetSalesAnalysis(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.OK(c, report)
}
