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

	"yieldvault/internal/clients/gemini"
	"yieldvault/internal/clock"
	"yieldvault/internal/config"
	"yieldvault/internal/database"
	"yieldvault/internal/insight"
	"yieldvault/internal/logger"
	"yieldvault/internal/metrics"
	"yieldvault/internal/scheduler"
	"yieldvault/internal/server"
	"yieldvault/internal/validator"

	"github.com/gin-gonic/gin"
)

// @title           YieldVault API
// @version         1.0
// @description     YieldVault tracks fixed-term investments: product catalog, expected returns, maturity, portfolio analytics and advisory insights.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

//go:generate swag init --dir ../.. --generalInfo cmd/api/main.go --output ../../internal/docs

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	collector := metrics.New()

	engine, err := newInsightEngine(ctx, appConfig, collector)
	if err != nil {
		return err
	}

	opts := server.Options{
		DB:          dbManager.DB(),
		Engine:      engine,
		Clock:       clock.System{},
		Metrics:     collector,
		AdminAPIKey: appConfig.AdminAPIKey,
	}
	svc := server.NewServices(opts)
	router := server.NewRouter(opts, svc)

	if appConfig.AdminAPIKey == "" {
		log.Warn("ADMIN_API_KEY is not set, catalog management endpoints are disabled")
	}

	// Background jobs
	sched := scheduler.New(log)
	retention := scheduler.NewLogRetentionJob(svc.Logs, appConfig.LogRetentionDays, clock.System{}, log)
	if err := sched.AddJob(appConfig.LogPurgeSchedule, retention); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", retention.Name(), err)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting YieldVault server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

// newInsightEngine builds the insight engine. Without an API key the engine
// answers from its local rules only.
func newInsightEngine(ctx context.Context, cfg *config.Config, collector *metrics.Collector) (*insight.Engine, error) {
	opts := []insight.Option{
		insight.WithTimeout(cfg.AITimeout),
		insight.WithLogger(logger.Named("insight")),
		insight.WithRecorder(collector),
	}
	if !cfg.AIEnabled() {
		logger.Get().Info("GOOGLE_AI_API_KEY is not set, insights use local rules")
		return insight.New(nil, opts...), nil
	}

	client, err := gemini.NewClient(ctx, cfg.GoogleAIAPIKey,
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithLogger(logger.Named("gemini")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	logger.Get().Infow("Generative insights enabled", "model", client.Model())
	return insight.New(client, opts...), nil
}
