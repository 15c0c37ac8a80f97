package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mitrahub/auth-api/docs"
	"github.com/mitrahub/auth-api/internal/api/handler"
	"github.com/mitrahub/auth-api/internal/api/middleware"
	"github.com/mitrahub/auth-api/internal/core/ports"
	"github.com/mitrahub/auth-api/internal/infrastructure/config"
	"github.com/mitrahub/auth-api/internal/metrics"
)

// Dependencies is everything the HTTP layer needs. Services are built in main.
type Dependencies struct {
	Config  *config.Config
	Log     zerolog.Logger
	Version string

	AuthService    ports.AuthService
	PartnerService ports.PartnerService
	UserService    ports.UserService

	// Probes are checked by GET /health/ready, keyed by dependency name.
	Probes map[string]handler.Probe
	// RateLimitStore defaults to an in-memory store when nil.
	RateLimitStore echomiddleware.RateLimiterStore
	// Registry receives HTTP and domain metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry

	Dev DevDependencies
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	cfg := deps.Config

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}

	limiter := deps.RateLimitStore
	if limiter == nil {
		limiter = middleware.NewMemoryRateLimitStore(cfg.RateLimit.Max, cfg.RateLimit.Window)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		HSTSMaxAge:         31536000,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.BodyLimit("10M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.RateLimit(limiter))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	partnerHandler := handler.NewPartnerHandler(deps.PartnerService)
	userHandler := handler.NewUserHandler(deps.UserService)
	healthHandler := handler.NewHealthHandler(cfg.Env, deps.Version, deps.Probes)

	requireAuth := middleware.Auth(deps.AuthService)
	requireAdmin := middleware.RequireAdmin()

	// --- Operational endpoints (no auth required) ---
	e.GET("/", index(cfg.Env, deps.Version))
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh, requireAuth)
	authGroup.POST("/logout", authHandler.Logout, requireAuth)
	authGroup.GET("/profile", authHandler.Profile, requireAuth)
	authGroup.GET("/admin-test", authHandler.AdminTest, requireAuth, requireAdmin)
	if cfg.IsDevelopment() {
		registerDevRoutes(authGroup, deps)
	}

	// --- Partner management (admin only) ---
	partners := e.Group("/partners", requireAuth, requireAdmin)
	partners.GET("", partnerHandler.List)
	partners.POST("", partnerHandler.Create)
	partners.GET("/:id", partnerHandler.Get)
	partners.PUT("/:id", partnerHandler.Update)
	partners.DELETE("/:id", partnerHandler.Delete)
	partners.POST("/:id/staff", partnerHandler.AttachStaff)
	partners.DELETE("/:id/staff/:user_id", partnerHandler.DetachStaff)

	// --- User directory (admin only) ---
	users := e.Group("/users", requireAuth, requireAdmin)
	users.GET("", userHandler.List)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("remote_ip", v.RemoteIP).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

type indexResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Timestamp   time.Time         `json:"timestamp"`
	Endpoints   map[string]string `json:"endpoints"`
}

func index(env, version string) echo.HandlerFunc {
	endpoints := map[string]string{
		"auth":     "/auth",
		"partners": "/partners",
		"users":    "/users",
		"health":   "/health",
		"metrics":  "/metrics",
		"docs":     "/swagger/index.html",
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, indexResponse{
			Success:     true,
			Message:     "Mitra auth API",
			Version:     version,
			Environment: env,
			Timestamp:   time.Now().UTC(),
			Endpoints:   endpoints,
		})
	}
}
