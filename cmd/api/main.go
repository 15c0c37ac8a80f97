// @title                       Mitra Auth API
// @version                     1.0
// @description                 Authentication, partner and user administration backend.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mitrahub/auth-api/internal/api"
	"github.com/mitrahub/auth-api/internal/api/handler"
	"github.com/mitrahub/auth-api/internal/auth"
	"github.com/mitrahub/auth-api/internal/core/service"
	"github.com/mitrahub/auth-api/internal/infrastructure/config"
	redisdb "github.com/mitrahub/auth-api/internal/infrastructure/db/redis"
	"github.com/mitrahub/auth-api/internal/infrastructure/queue"
	"github.com/mitrahub/auth-api/pkg/logger"
)

const serviceName = "mitra-auth-api"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, nil)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || cfg.IsDevelopment(),
		Service: serviceName,
	})

	// The pool outlives the signal context so in-flight logins can finish
	// during graceful shutdown.
	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	pool := queue.NewPool(cfg.Auth.HashWorkers, log)
	pool.Start(poolCtx)
	log.Info().Int("workers", pool.Workers()).Msg("hash pool started")

	passwords, err := auth.NewBcryptVerifier(auth.PasswordConfig{Cost: cfg.Auth.BcryptCost}, pool, log)
	if err != nil {
		return err
	}
	tokens, err := auth.NewJWTService(auth.TokenConfig{Secret: cfg.Auth.JWTSecret, TTL: cfg.Auth.JWTExpiresIn}, log)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}()
	log.Info().Str("driver", cfg.DB.Driver).Msg("store ready")

	if _, err := service.SeedSuperadmin(ctx, st.users, passwords, service.SeedAdmin{
		Email:    cfg.Seed.Email,
		Username: cfg.Seed.Username,
		Password: cfg.Seed.Password,
	}, log); err != nil {
		return err
	}

	probes := map[string]handler.Probe{"database": st.ping}

	var limiter echomiddleware.RateLimiterStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Timeout: 5 * time.Second})
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = redisdb.NewRateLimitStore(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window, log)
		probes["redis"] = redisdb.Ping(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis rate limiting enabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	authService := service.NewAuthService(st.users, passwords, tokens, log)
	partnerService := service.NewPartnerService(st.partners, st.users, st.tx, log)
	userService := service.NewUserService(st.users, log)

	e, err := api.NewRouter(api.Dependencies{
		Config:         cfg,
		Log:            log,
		Version:        version,
		AuthService:    authService,
		PartnerService: partnerService,
		UserService:    userService,
		Probes:         probes,
		RateLimitStore: limiter,
		Registry:       reg,
		Dev:            devDependencies(st.users, passwords, log),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("version", version).Msg("http server listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
