package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindline/booking-api/internal/api/handler"
	"github.com/mindline/booking-api/internal/api/middleware"
	"github.com/mindline/booking-api/internal/core/domain"
	"github.com/mindline/booking-api/internal/core/service"
	"github.com/mindline/booking-api/internal/infrastructure/config"
	mongodb "github.com/mindline/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mindline/booking-api/internal/infrastructure/db/redis"
	"github.com/mindline/booking-api/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier *queue.Notifier, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Dependencies ---
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	scheduleRepo := mongodb.NewScheduleRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	cache := redisdb.NewScheduleCache(rdb, cfg.Redis.CacheTTL, log)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	bookingService := service.NewBookingService(appointmentRepo, scheduleRepo, userRepo, notifier, cache, log)
	scheduleService := service.NewScheduleService(appointmentRepo, scheduleRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	providerHandler := handler.NewProviderHandler(scheduleService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.POST("/appointments", bookingHandler.Create, middleware.RequireRole(domain.RoleClient))
	v1.POST("/appointments/:id/accept", bookingHandler.Accept, middleware.RequireRole(domain.RolePsychologist))

	v1.GET("/providers/:provider_id/schedule/day", providerHandler.DaySchedule)
	v1.GET("/providers/:provider_id/availability/month", providerHandler.MonthAvailability)

	v1.PUT("/me/schedule", providerHandler.SetAvailability, middleware.RequireRole(domain.RolePsychologist))

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
