package routes

import (
	"github.com/MurtazaJ53/allure-web-grace/internal/api/handlers"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type GamificationRoutes struct {
	handler   *handlers.GamificationHandler
	jwtSecret string
}

func NewGamificationRoutes(handler *handlers.GamificationHandler, jwtSecret string) *GamificationRoutes {
	return &GamificationRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers gamification routes
func (r *GamificationRoutes) RegisterRoutes(router *gin.Engine) {
	gamification := router.Group("/api/gamification")
	gamification.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	gamification.GET("/summary", gzip.Gzip(gzip.DefaultCompression), r.handler.GetSummary)
	gamification.POST("/evaluate", r.handler.Evaluate)
	gamification.POST("/challenges/:id/claim", r.handler.ClaimChallenge)
}
