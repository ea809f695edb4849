package handlers

import (
	"net/http"
	"strconv"

	"github.com/MurtazaJ53/allure-web-grace/internal/api/dto"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/activity"
	"github.com/gin-gonic/gin"
)

// ActivityHandler handles HTTP requests for the activity feed
type ActivityHandler struct {
	service activity.Service
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(service activity.Service) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// RecordActivity appends an entry to the caller's feed.
func (h *ActivityHandler) RecordActivity(c *gin.Context) {
	var req dto.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entry, err := h.service.Record(c.Request.Context(), userID, req.Type, req.Message, req.Icon)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToActivityResponse(entry))
}

// ListActivities returns the caller's most recent feed entries.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.service.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": dto.ToActivityListResponse(list)})
}
