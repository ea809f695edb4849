package handlers

import (
	"errors"
	"net/http"

	"github.com/MurtazaJ53/allure-web-grace/internal/api/dto"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/gamification"
	"github.com/gin-gonic/gin"
)

// GamificationHandler handles HTTP requests for points, achievements,
// levels, and daily challenges
type GamificationHandler struct {
	service gamification.Service
}

// NewGamificationHandler creates a new GamificationHandler instance
func NewGamificationHandler(service gamification.Service) *GamificationHandler {
	return &GamificationHandler{service: service}
}

// GetSummary returns the caller's full gamification view.
func (h *GamificationHandler) GetSummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Evaluate runs an evaluation pass over the caller's current tasks and
// habits, unlocking any newly satisfied achievements.
func (h *GamificationHandler) Evaluate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.service.Evaluate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "evaluation failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClaimChallenge claims a satisfied daily challenge's reward.
func (h *GamificationHandler) ClaimChallenge(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	challenge, points, err := h.service.ClaimChallenge(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, gamification.ErrChallengeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		return
	}
	if errors.Is(err, gamification.ErrChallengeNotSatisfied) {
		c.JSON(http.StatusConflict, gin.H{"error": "challenge target not reached"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to claim challenge"})
		return
	}

	c.JSON(http.StatusOK, dto.ClaimChallengeResponse{
		Challenge:     *challenge,
		PointsAwarded: points,
	})
}
