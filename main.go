package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"blog_analyzer/internal/api"
	"blog_analyzer/internal/config"
	"blog_analyzer/internal/nodes"
	"blog_analyzer/internal/services"
	"blog_analyzer/internal/session"
	"blog_analyzer/internal/storage"
	"blog_analyzer/src"
	"blog_analyzer/src/llm"
	"blog_analyzer/src/llm/blog"
	"blog_analyzer/src/logger"
	"blog_analyzer/src/model"
	"blog_analyzer/src/nlp"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using process environment")
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Invalid configuration")
	}

	if err := logger.InitLogger(cfg.LogConfig); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatal().Err(err).Msg("❌ Server stopped with error")
	}
}

// loadConfig reads the environment and layers config.yaml over it
func loadConfig() (*src.Config, error) {
	cfg, err := src.LoadConfig()
	if err != nil {
		return nil, err
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = config.DefaultPath
	}
	overlay, err := config.LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if err := config.Apply(overlay, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *src.Config) error {
	log := logger.With("main")

	chatModel, err := llm.NewChatModel(ctx, cfg.LLMConfig)
	if err != nil {
		return err
	}
	extractor, err := blog.NewDetailsExtractor(ctx, chatModel)
	if err != nil {
		return err
	}
	summarizer, err := blog.NewSummarizer(ctx, chatModel)
	if err != nil {
		return err
	}

	pipeline, err := nodes.NewPipeline(nodes.PipelineConfig{
		Extractor:     extractor,
		Summarizer:    summarizer,
		Keywords:      nlp.NewExtractor(nlp.NewProseTagger(), cfg.AnalysisConfig.KeywordTopN),
		MaxInputChars: cfg.AnalysisConfig.MaxInputChars,
	})
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	store, redisClient, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	db, err := storage.OpenPostgres(ctx, cfg.DatabaseConfig)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}(db)

	service := services.NewAnalysisService(
		session.NewManager(pipeline, store),
		storage.NewPostgresAnalysisRepository(db),
	)

	gin.SetMode(cfg.ServerConfig.Mode)
	server := &http.Server{
		Addr:         ":" + cfg.ServerConfig.Port,
		Handler:      api.NewRouter(service),
		ReadTimeout:  cfg.ServerConfig.ReadTimeout,
		WriteTimeout: cfg.ServerConfig.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("provider", cfg.LLMConfig.Provider).
			Str("model", cfg.LLMConfig.Model).
			Str("session_backend", cfg.SessionConfig.Backend).
			Msg("🚀 Blog analyzer listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerConfig.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// newSessionStore picks the configured backend
func newSessionStore(ctx context.Context, cfg *src.Config) (storage.SessionStore, *redis.Client, error) {
	switch cfg.SessionConfig.Backend {
	case model.SessionBackendRedis:
		client, err := storage.NewRedisClient(ctx, cfg.RedisConfig.URL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisSessionStore(client, cfg.SessionConfig.TTL), client, nil
	default:
		return storage.NewMemorySessionStore(cfg.SessionConfig.TTL), nil, nil
	}
}
