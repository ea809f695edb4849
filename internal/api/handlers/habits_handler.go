package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MurtazaJ53/allure-web-grace/internal/api/dto"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HabitsHandler handles HTTP requests for habit operations
type HabitsHandler struct {
	service habits.Service
}

// NewHabitsHandler creates a new HabitsHandler instance
func NewHabitsHandler(service habits.Service) *HabitsHandler {
	return &HabitsHandler{service: service}
}

// CreateHabit creates a habit owned by the authenticated user.
func (h *HabitsHandler) CreateHabit(c *gin.Context) {
	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	frequency := habits.Frequency(req.TargetFrequency)
	if req.TargetFrequency == "" {
		frequency = habits.FrequencyDaily
	}

	created, err := h.service.CreateHabit(c.Request.Context(), habits.CreateHabitInput{
		UserID:          userID,
		Name:            req.Name,
		TargetFrequency: frequency,
		Category:        req.Category,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToHabitResponse(created))
}

// ListHabits returns the authenticated user's habits.
func (h *HabitsHandler) ListHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter := habits.HabitFilter{UserID: &userID}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	list, total, err := h.service.ListHabits(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list habits"})
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitListResponse(list, total, filter.Page, filter.PageSize))
}

// GetHabit fetches one habit by id.
func (h *HabitsHandler) GetHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	found, err := h.service.GetHabit(c.Request.Context(), id)
	if errors.Is(err, habits.ErrHabitNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch habit"})
		return
	}

	userID, _ := middleware.GetUserID(c)
	if found.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitResponse(found))
}

// UpdateHabit applies a partial update to one habit.
func (h *HabitsHandler) UpdateHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := habits.UpdateHabitInput{
		Name:     req.Name,
		Category: req.Category,
	}
	if req.TargetFrequency != nil {
		frequency := habits.Frequency(*req.TargetFrequency)
		input.TargetFrequency = &frequency
	}

	updated, err := h.service.UpdateHabit(c.Request.Context(), id, input)
	if errors.Is(err, habits.ErrHabitNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitResponse(updated))
}

// DeleteHabit removes one habit.
func (h *HabitsHandler) DeleteHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	if err := h.service.DeleteHabit(c.Request.Context(), id); err != nil {
		if errors.Is(err, habits.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete habit"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTopStreaks returns the caller's habits with the longest streaks.
func (h *HabitsHandler) GetTopStreaks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	list, err := h.service.GetTopStreaks(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list top streaks"})
		return
	}

	items := make([]dto.HabitResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.ToHabitResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"habits": items})
}

// MarkHabitCompleted marks today's completion, advancing the streak.
func (h *HabitsHandler) MarkHabitCompleted(c *gin.Context) {
	h.toggleCompletion(c, h.service.MarkCompleted)
}

// UnmarkHabitCompleted reverts today's completion.
func (h *HabitsHandler) UnmarkHabitCompleted(c *gin.Context) {
	h.toggleCompletion(c, h.service.UnmarkCompleted)
}

func (h *HabitsHandler) toggleCompletion(c *gin.Context, op func(ctx context.Context, id, userID uuid.UUID) (*habits.Habit, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	updated, err := op(c.Request.Context(), id, userID)
	if errors.Is(err, habits.ErrHabitNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update habit completion"})
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitResponse(updated))
}
