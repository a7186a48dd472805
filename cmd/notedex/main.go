package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/config"
	"github.com/kailas-cloud/notedex/internal/db"
	dbMemory "github.com/kailas-cloud/notedex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/notedex/internal/db/redis"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
	logpkg "github.com/kailas-cloud/notedex/internal/logger"
	"github.com/kailas-cloud/notedex/internal/metrics"
	"github.com/kailas-cloud/notedex/internal/repository/features"
	notesrepo "github.com/kailas-cloud/notedex/internal/repository/notes"
	chiTransport "github.com/kailas-cloud/notedex/internal/transport/chi"
	openaiSim "github.com/kailas-cloud/notedex/internal/transport/openai"
	healthuc "github.com/kailas-cloud/notedex/internal/usecase/health"
	notesuc "github.com/kailas-cloud/notedex/internal/usecase/notes"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
	"github.com/kailas-cloud/notedex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting notedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Note store, by driver.
	var store db.Store
	switch cfg.Database.Driver {
	case "memory":
		store = dbMemory.NewStore()
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to note store")

	// Register search metrics explicitly (no init()).
	metrics.RegisterSearchMetrics()

	// Semantic tagger, with optional embedding-based gap fill.
	var similarity semantic.Similarity
	var similarityChecker healthuc.SimilarityChecker
	if cfg.Semantic.APIKey != "" {
		scorer := openaiSim.NewScorer(&openaiSim.Config{
			APIKey:  cfg.Semantic.APIKey,
			BaseURL: cfg.Semantic.BaseURL,
			Model:   cfg.Semantic.Model,
			Timeout: time.Duration(cfg.Semantic.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		similarity = scorer
		similarityChecker = scorer
		logger.Info("Similarity scorer enabled", zap.String("model", cfg.Semantic.Model))
	} else {
		logger.Info("Similarity scorer disabled, lexical-only tagging")
	}
	tagger := semantic.NewTagger(semantic.DefaultVocabulary(), similarity, logger)

	// Repositories and the note feature cache.
	repo := notesrepo.New(store, cfg.Database.KeyPrefix)
	cache := features.New(tagger, metrics.FeatureCacheTotal)

	// Use case services.
	notesSvc := notesuc.New(logger, repo, cache, cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	searchSvc := searchuc.New(logger, repo, cache, tagger, cfg.Search.ResultLimit)
	healthSvc := healthuc.New(store, similarityChecker)

	server := chiTransport.NewServer(notesSvc, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	if len(cfg.HTTP.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.HTTP.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a
// plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates
// X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
