package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cafehub/gateway/internal/api/handler"
	"github.com/cafehub/gateway/internal/api/middleware"
	"github.com/cafehub/gateway/internal/core/ports"
)

// Deps carries everything the router needs to wire the gateway surface.
type Deps struct {
	Aggregator  ports.Aggregator
	Credentials ports.CredentialService
	Redis       *redis.Client // nil when the denylist is disabled
	TokenTTL    time.Duration
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gateway"))
	e.Use(middleware.CredentialAuth(deps.Credentials))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Aggregator, deps.Credentials, deps.TokenTTL)
	feedHandler := handler.NewFeedHandler(deps.Aggregator)
	cafeHandler := handler.NewCafeHandler(deps.Aggregator)
	profileHandler := handler.NewProfileHandler(deps.Aggregator)
	reviewHandler := handler.NewReviewHandler(deps.Aggregator)
	reservationHandler := handler.NewReservationHandler(deps.Aggregator)

	// --- Health and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Public routes ---
	e.GET("/v1/feed", feedHandler.Home)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/cafes/:id", cafeHandler.Detail)

	// --- Authenticated routes ---
	authed := e.Group("/v1", middleware.RequireAuth())
	authed.POST("/cafes", cafeHandler.Create)
	authed.GET("/profile/:username", profileHandler.Bundle)
	authed.PUT("/profile", profileHandler.Update)
	authed.POST("/reviews", reviewHandler.Submit)
	authed.PUT("/reviews/:id", reviewHandler.Edit)
	authed.DELETE("/reviews/:id", reviewHandler.Delete)
	authed.POST("/reservations", reservationHandler.Make)
	authed.POST("/reservations/status", reservationHandler.UpdateStatus)

	return e
}
