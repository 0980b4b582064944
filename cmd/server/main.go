package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legalaid-backend/config"
	"legalaid-backend/handlers"
	"legalaid-backend/logging"
	"legalaid-backend/repository"
	"legalaid-backend/service"
	"legalaid-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	dotenv := config.LoadDotEnv(".env", "../../.env")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if !dotenv {
		logger.Info("No .env file found, using environment variables")
	}

	ctx := context.Background()
	opts := []service.AnalysisServiceOption{service.WithLogger(logger)}

	// Initialize Gemini client
	generator, err := service.NewGeminiGenerator(ctx, cfg.Gemini.APIKey,
		service.GeminiWithModel(cfg.Gemini.Model),
		service.GeminiWithLogger(logger),
	)
	if err != nil {
		logger.Warn("Gemini disabled, model-backed routes will return 503", zap.Error(err))
	} else {
		defer generator.Close()
		opts = append(opts, service.WithGenerator(generator))
		logger.Info("Gemini client initialized", zap.String("model", generator.Model()))
	}

	// Initialize database connection
	if cfg.PersistenceEnabled() {
		db, err := initPostgres(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal("Failed to initialize Postgres", zap.Error(err))
		}
		defer db.Close()
		opts = append(opts, service.WithAnalysisRepository(repository.NewAnalysisRepository(db)))
		logger.Info("Postgres connection established")
	} else {
		logger.Info("DATABASE_URL not set, analyses will not be stored")
	}

	// Initialize archive storage
	if cfg.ArchiveEnabled() {
		archive, err := storage.NewStorage(cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
		opts = append(opts, service.WithArchive(archive))
		logger.Info("Storage initialized", zap.String("type", string(cfg.Storage.Type)))
	}

	analysisService := service.NewAnalysisService(opts...)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, logger)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(analysisHandler, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
