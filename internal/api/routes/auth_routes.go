package routes

import (
	"github.com/MurtazaJ53/allure-web-grace/internal/api/handlers"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type AuthRoutes struct {
	handler   *handlers.AuthHandler
	jwtSecret string
}

func NewAuthRoutes(handler *handlers.AuthHandler, jwtSecret string) *AuthRoutes {
	return &AuthRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers authentication routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	auth.POST("/register", r.handler.Register)
	auth.POST("/login", r.handler.Login)

	auth.GET("/me", middleware.NewAuthMiddleware(r.jwtSecret), r.handler.Me)
}
