package main

import (
	"alcyxob/exercise-tracker/internal/api"
	"alcyxob/exercise-tracker/internal/config"
	"alcyxob/exercise-tracker/internal/logging"
	"alcyxob/exercise-tracker/internal/observability"
	"alcyxob/exercise-tracker/internal/repository/mongo"
	"alcyxob/exercise-tracker/internal/service"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// serve runs the HTTP server until SIGINT or SIGTERM.
func serve(parent context.Context, configDir string) error {
	// --- Configuration ---
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.Log)
	logger.WithFields(logrus.Fields{"version": Version, "commit": CommitSHA}).Info("Starting exercise tracker")

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		logger.Info("Disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.WithField("database", cfg.Database.Name).Info("Database connection established")

	// --- Ensure Indexes ---
	indexCtx, cancelIndex := context.WithTimeout(ctx, time.Minute)
	if err := mongo.EnsureUserIndexes(indexCtx, appDB.Collection(mongo.UsersCollection)); err != nil {
		// Registration still works, only the duplicate-username race is unguarded
		logger.WithError(err).Warn("Could not ensure user indexes")
	}
	cancelIndex()

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3, logger)
		if err != nil {
			return fmt.Errorf("init S3 storage: %w", err)
		}
	} else {
		logger.Info("No S3 bucket configured, log export disabled")
	}

	// --- Initialize Services ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	userService := service.NewUserService(userRepo, logger, metrics)
	exerciseService := service.NewExerciseService(userRepo, logger, metrics)
	exportService := service.NewExportService(userService, fileStorage, cfg.S3.PresignExpiry, logger, metrics)

	// --- Initialize Gin Engine ---
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.SetupRoutes(router, api.Dependencies{
		UserService:     userService,
		ExerciseService: exerciseService,
		ExportService:   exportService,
		Logger:          logger,
		Metrics:         metrics,
		Gatherer:        registry,
		PublicDir:       cfg.Server.StaticDir,
		ViewsDir:        cfg.Server.ViewsDir,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.ListenAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("address", server.Addr).Info("Your app is listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("Shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exiting")
	return nil
}
