package routes

import (
	"github.com/MurtazaJ53/allure-web-grace/internal/api/handlers"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type HabitsRoutes struct {
	handler   *handlers.HabitsHandler
	jwtSecret string
}

func NewHabitsRoutes(handler *handlers.HabitsHandler, jwtSecret string) *HabitsRoutes {
	return &HabitsRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all habit-related routes
func (r *HabitsRoutes) RegisterRoutes(router *gin.Engine) {
	habits := router.Group("/api/habits")
	habits.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	habits.GET("", gzip.Gzip(gzip.DefaultCompression), r.handler.ListHabits)
	habits.POST("", r.handler.CreateHabit)
	habits.GET("/top-streaks", r.handler.GetTopStreaks)
	habits.GET("/:id", r.handler.GetHabit)
	habits.PUT("/:id", r.handler.UpdateHabit)
	habits.DELETE("/:id", r.handler.DeleteHabit)

	// Habit completion routes
	habits.POST("/:id/complete", r.handler.MarkHabitCompleted)
	habits.POST("/:id/uncomplete", r.handler.UnmarkHabitCompleted)
}
