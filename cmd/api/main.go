package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/api/handlers"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/middleware"
	"github.com/MurtazaJ53/allure-web-grace/internal/api/routes"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/activity"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/analytics"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/gamification"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/task"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/user"
	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/cache"
	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/persistence/postgres/connection"
	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/persistence/postgres/migrations"
	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/scheduler"
	"github.com/MurtazaJ53/allure-web-grace/pkg/config"
	"github.com/MurtazaJ53/allure-web-grace/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Encoding",
			"Content-Type",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	taskRepo := task.NewRepository(db)
	habitsRepo := habits.NewRepository(db)
	activityRepo := activity.NewRepository(db)
	gamificationRepo := gamification.NewRepository(db)
	userRepo := user.NewRepository(db)

	// Initialize services
	taskService := task.NewService(taskRepo, redisClient, log.Logger)
	habitsService := habits.NewService(habitsRepo, redisClient, log.Logger)
	activityService := activity.NewService(activityRepo, log.Logger)
	userService := user.NewService(userRepo, cfg.Auth, log.Logger)
	gamificationService, err := gamification.NewService(
		gamification.NewEngineConfig(),
		gamificationRepo,
		taskService,
		habitsService,
		redisClient,
		log.Logger,
	)
	if err != nil {
		log.Fatal("Failed to initialize gamification service", zap.Error(err))
	}
	analyticsService := analytics.NewService(taskService, habitsService, redisClient, log.Logger)

	// Initialize and start the scheduler
	habitScheduler := scheduler.NewScheduler(habitsService, log)
	habitScheduler.Start()
	defer habitScheduler.Stop()
	log.Info("Habit scheduler started successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	habitsHandler := handlers.NewHabitsHandler(habitsService)
	activityHandler := handlers.NewActivityHandler(activityService)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Register routes
	routes.SetupHealthRoutes(router, redisClient)
	routes.NewAuthRoutes(authHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewHabitsRoutes(habitsHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewActivityRoutes(activityHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewGamificationRoutes(gamificationHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewAnalyticsRoutes(analyticsHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered API routes")

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
