package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campaign-speeches/backend/internal/adapter"
	"campaign-speeches/backend/internal/analysis"
	"campaign-speeches/backend/internal/graph"
	"campaign-speeches/backend/internal/lexicon"
	"campaign-speeches/backend/internal/server"
	"campaign-speeches/backend/internal/speech"
	"campaign-speeches/backend/pkg/config"
	"campaign-speeches/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	srv, cleanup, err := setup(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to prepare server", zap.Error(err))
	}
	defer cleanup()

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// setup loads the dataset, runs the analysis once and builds the HTTP
// server around the result. cleanup closes the graph store when one is
// configured.
func setup(ctx context.Context, cfg *config.Config, log *zap.Logger) (*http.Server, func(), error) {
	cleanup := func() {}

	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		return nil, cleanup, err
	}

	speeches, summary, err := speech.Load(cfg.DataPath)
	if err != nil {
		return nil, cleanup, err
	}
	log.Info("Dataset loaded",
		zap.String("path", cfg.DataPath),
		zap.Int("rows", summary.Rows),
		zap.Int("invalid_dates", summary.InvalidDates),
	)

	opts := analysis.Options{
		Lexicon: lex,
		TopN:    cfg.TopN,
	}
	if cfg.LLMEnabled() {
		opts.Summarizer = adapter.NewLLMAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	}

	res, err := analysis.Run(ctx, speeches, opts)
	if err != nil {
		return nil, cleanup, err
	}
	log.Info("Analysis ready", zap.String("run_id", res.RunID), zap.Strings("top", res.Top))

	var store server.MentionStore
	if cfg.GraphEnabled() {
		driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, cleanup, err
		}
		repo := graph.NewRepository(driver)
		store = repo
		cleanup = func() {
			if err := repo.Close(); err != nil {
				log.Warn("Failed to close Neo4j driver", zap.Error(err))
			}
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(res, speeches, store).Router(),
	}
	return srv, cleanup, nil
}
