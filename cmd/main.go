package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/duynhne/pkg/logger/zerolog"

	"github.com/duynhne/booking-service/config"
	database "github.com/duynhne/booking-service/internal/core"
	"github.com/duynhne/booking-service/internal/core/domain"
	"github.com/duynhne/booking-service/internal/core/repository"
	logicv1 "github.com/duynhne/booking-service/internal/logic/v1"
	v1 "github.com/duynhne/booking-service/internal/web/v1"
	"github.com/duynhne/booking-service/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Configuration load failed: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("Configuration validation failed: " + err.Error())
	}

	// Initialize Zerolog with LOG_LEVEL from config
	zerolog.Setup(cfg.Logging.Level)

	log.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("env", cfg.Service.Env).
		Str("port", cfg.Service.Port).
		Msg("Service starting")

	// Initialize OpenTelemetry tracing
	var tp interface{ Shutdown(context.Context) error }
	if cfg.Tracing.Enabled {
		provider, err := middleware.InitTracing(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize tracing")
		} else {
			tp = provider
			log.Info().
				Str("endpoint", cfg.Tracing.Endpoint).
				Float64("sample_rate", cfg.Tracing.SampleRate).
				Msg("Tracing initialized")
		}
	} else {
		log.Info().Msg("Tracing disabled (TRACING_ENABLED=false)")
	}

	// Initialize Pyroscope profiling
	if cfg.Profiling.Enabled {
		if err := middleware.InitProfiling(cfg); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize profiling")
		} else {
			log.Info().
				Str("endpoint", cfg.Profiling.Endpoint).
				Msg("Profiling initialized")
			defer middleware.StopProfiling()
		}
	} else {
		log.Info().Msg("Profiling disabled (PROFILING_ENABLED=false)")
	}

	// Initialize stores
	var (
		users    domain.UserRepository
		sessions domain.SessionRepository
		teachers domain.TeacherRepository
		closeDB  = func() {}
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := repository.NewMemoryStore()
		users, sessions, teachers = store.Users, store.Sessions, store.Teachers
		log.Warn().Msg("Using in-memory store, data is lost on restart")
	default:
		pool, err := database.Connect(context.Background(), cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		closeDB = pool.Close
		log.Info().Msg("Database connection pool established")

		if cfg.Database.Migrate {
			if err := database.Migrate(pool); err != nil {
				log.Fatal().Err(err).Msg("Failed to run migrations")
			}
			log.Info().Msg("Database migrations applied")
		}

		users = repository.NewUserRepository(pool)
		sessions = repository.NewSessionRepository(pool)
		teachers = repository.NewTeacherRepository(pool)
	}

	// Wire services
	tokens := logicv1.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
	handler := v1.NewHandler(
		logicv1.NewAuthService(users, tokens, logicv1.BcryptHasher{}),
		tokens,
		logicv1.NewSessionService(sessions, users, teachers),
		logicv1.NewUserService(users),
		logicv1.NewTeacherService(teachers),
	)

	if cfg.Service.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	var isShuttingDown atomic.Bool

	// Tracing middleware
	r.Use(middleware.TracingMiddleware())

	// Logging middleware
	r.Use(middleware.LoggingMiddleware())

	// Prometheus middleware
	r.Use(middleware.PrometheusMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness check
	// Returns 503 once shutdown has started, to drain traffic before HTTP shutdown.
	r.GET("/ready", func(c *gin.Context) {
		if isShuttingDown.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Booking API (paths kept compatible with the existing front end)
	handler.RegisterRoutes(r.Group("/api"))

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Service.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.Service.ReadHeaderTimeout,
		WriteTimeout:      cfg.Service.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Service.Port).Msg("Starting booking service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	// Fail readiness first and wait for propagation (best practice for K8s rollout).
	isShuttingDown.Store(true)
	drainDelay := cfg.Shutdown.ReadinessDrainDelay
	if drainDelay > 0 {
		log.Info().Dur("delay", drainDelay).Msg("Readiness drain delay started")
		time.Sleep(drainDelay)
		log.Info().Dur("delay", drainDelay).Msg("Readiness drain delay completed")
	}

	// Shutdown context with configurable timeout
	shutdownTimeout := cfg.Shutdown.Timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Dur("timeout", shutdownTimeout).Msg("Shutting down server...")

	// 1. Shutdown HTTP server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		log.Info().Msg("HTTP server shutdown complete")
	}

	// 2. Close database connections
	closeDB()
	log.Info().Msg("Database pool closed")

	// 3. Shutdown tracer
	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Tracer shutdown error")
		} else {
			log.Info().Msg("Tracer shutdown complete")
		}
	}

	log.Info().Msg("Graceful shutdown complete")
}
