package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hie/agent/internal/config"
	"github.com/hie/agent/internal/domain/hie"
	"github.com/hie/agent/internal/domain/monitor"
	"github.com/hie/agent/internal/domain/rti"
	"github.com/hie/agent/internal/domain/stroke"
	"github.com/hie/agent/internal/platform/auth"
	"github.com/hie/agent/internal/platform/db"
	"github.com/hie/agent/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agent-server",
		Short: "Hospital reporting gateway",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the reporting gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	ds := db.NewPoolDatasource(pool)
	gate := auth.NewGate(cfg.APIKey, cfg.HospCode, cfg.AllowedIPs())

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.HTTPErrorHandler = middleware.ErrorHandler(logger, !cfg.IsProduction())

	// API groups
	apiV1 := e.Group("/api/v1")
	hie.NewHandler(gate, ds).RegisterRoutes(apiV1.Group("/hie"))
	stroke.NewHandler(gate, ds).RegisterRoutes(apiV1.Group("/stroke"))
	rti.NewHandler(gate, ds).RegisterRoutes(apiV1.Group("/rti"))
	monitor.NewHandler(ds).RegisterRoutes(apiV1.Group("/monitor"))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":   "ok",
			"app":      cfg.AppName,
			"hospcode": cfg.HospCode,
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("hospcode", cfg.HospCode).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
