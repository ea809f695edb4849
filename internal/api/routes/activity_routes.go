package routes

import (
	"github.com/MurtazaJ53/allure-web-grace/internal/api/handlers"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type ActivityRoutes struct {
	handler   *handlers.ActivityHandler
	jwtSecret string
}

func NewActivityRoutes(handler *handlers.ActivityHandler, jwtSecret string) *ActivityRoutes {
	return &ActivityRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers activity feed routes
func (r *ActivityRoutes) RegisterRoutes(router *gin.Engine) {
	activities := router.Group("/api/activities")
	activities.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	activities.GET("", r.handler.ListActivities)
	activities.POST("", r.handler.RecordActivity)
}
