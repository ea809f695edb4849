package routes

import (
	"github.com/MurtazaJ53/allure-web-grace/internal/api/handlers"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type AnalyticsRoutes struct {
	handler   *handlers.AnalyticsHandler
	jwtSecret string
}

func NewAnalyticsRoutes(handler *handlers.AnalyticsHandler, jwtSecret string) *AnalyticsRoutes {
	return &AnalyticsRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers analytics routes
func (r *AnalyticsRoutes) RegisterRoutes(router *gin.Engine) {
	analytics := router.Group("/api/analytics")
	analytics.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	analytics.GET("/summary", gzip.Gzip(gzip.DefaultCompression), r.handler.GetSummary)
}
