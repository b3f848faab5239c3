package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medimind/emr-admin/internal/config"
	"github.com/medimind/emr-admin/internal/domain/cashregister"
	"github.com/medimind/emr-admin/internal/domain/coverage"
	"github.com/medimind/emr-admin/internal/domain/department"
	"github.com/medimind/emr-admin/internal/domain/medicaldata"
	"github.com/medimind/emr-admin/internal/domain/terminology"
	"github.com/medimind/emr-admin/internal/domain/visit"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
	"github.com/medimind/emr-admin/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emr-admin",
		Short: "Hospital EMR admin gateway",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin gateway",
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

	// Upstream FHIR resource server
	client := fhirclient.New(cfg.FHIRBaseURL, cfg.FHIRToken,
		time.Duration(cfg.FHIRTimeoutSeconds)*time.Second, logger)
	logger.Info().Str("base_url", cfg.FHIRBaseURL).Msg("resource server client ready")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")

	// -- Register Domain Handlers --

	terminologySvc := terminology.NewService(client, logger)
	terminology.NewHandler(terminologySvc).RegisterRoutes(apiV1)

	departmentSvc := department.NewService(client, logger)
	department.NewHandler(departmentSvc).RegisterRoutes(apiV1)

	cashRegisterSvc := cashregister.NewService(client, logger)
	cashregister.NewHandler(cashRegisterSvc).RegisterRoutes(apiV1)

	medicalDataSvc := medicaldata.NewService(client, logger)
	medicaldata.NewHandler(medicalDataSvc).RegisterRoutes(apiV1)

	coverageSvc := coverage.NewService(client, logger)
	coverage.NewHandler(coverageSvc).RegisterRoutes(apiV1)

	visitSvc := visit.NewService(client, coverageSvc, logger)
	visit.NewHandler(visitSvc).RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
