package handlers

import (
	"net/http"
	"strconv"

	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/analytics"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles HTTP requests for analytics reports
type AnalyticsHandler struct {
	service analytics.Service
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance
func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetSummary returns the caller's analytics report for the requested
// trailing window.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	windowDays, _ := strconv.Atoi(c.DefaultQuery("window_days", "7"))

	report, err := h.service.Summarize(c.Request.Context(), userID, windowDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build analytics report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
