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

	chirouter "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/config"
	"github.com/kaira-health/medkb/internal/db"
	dbRedis "github.com/kaira-health/medkb/internal/db/redis"
	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/knowledge"
	logpkg "github.com/kaira-health/medkb/internal/logger"
	"github.com/kaira-health/medkb/internal/metrics"
	"github.com/kaira-health/medkb/internal/repository/corpus"
	"github.com/kaira-health/medkb/internal/repository/embcache"
	chiTransport "github.com/kaira-health/medkb/internal/transport/chi"
	openaiOracle "github.com/kaira-health/medkb/internal/transport/openai"
	"github.com/kaira-health/medkb/internal/version"

	chunkinguc "github.com/kaira-health/medkb/internal/usecase/chunking"
	documentuc "github.com/kaira-health/medkb/internal/usecase/document"
	embeddinguc "github.com/kaira-health/medkb/internal/usecase/embedding"
	healthuc "github.com/kaira-health/medkb/internal/usecase/health"
	queryuc "github.com/kaira-health/medkb/internal/usecase/query"
	reasoninguc "github.com/kaira-health/medkb/internal/usecase/reasoning"
	searchuc "github.com/kaira-health/medkb/internal/usecase/search"
	timelineuc "github.com/kaira-health/medkb/internal/usecase/timeline"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting medkb API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("oracle_enabled", cfg.Oracle.Enabled()),
		zap.Bool("cache_enabled", len(cfg.Cache.Addrs) > 0),
	)

	metrics.RegisterOracleMetrics()

	// Optional embedding cache
	var store db.Store
	if len(cfg.Cache.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(context.Background(), 10*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache")
	}

	// Optional oracle
	var oracle *openaiOracle.Oracle
	if cfg.Oracle.Enabled() {
		oracle = openaiOracle.New(&openaiOracle.Config{
			APIKey:         cfg.Oracle.APIKey,
			BaseURL:        cfg.Oracle.BaseURL,
			EmbeddingModel: cfg.Oracle.EmbeddingModel,
			ChatModel:      cfg.Oracle.ChatModel,
			Timeout:        time.Duration(cfg.Oracle.TimeoutSec) * time.Second,
			Logger:         logger,
		})
		logger.Info("Oracle enabled",
			zap.String("embedding_model", cfg.Oracle.EmbeddingModel),
			zap.String("chat_model", cfg.Oracle.ChatModel),
		)
	}

	// Embedder chain: oracle -> budget -> cache -> resilient fallback
	var oracleEmb domain.Embedder
	if oracle != nil {
		oracleEmb = oracle
		if cfg.Oracle.DailyTokenBudget > 0 || cfg.Oracle.MonthlyTokenBudget > 0 {
			tracker := embeddinguc.NewBudgetTracker(
				cfg.Oracle.DailyTokenBudget,
				cfg.Oracle.MonthlyTokenBudget,
				embeddinguc.BudgetAction(cfg.Oracle.BudgetAction),
				logger,
			)
			if store != nil {
				tracker.WithStore(context.Background(), store)
			}
			oracleEmb = embeddinguc.NewBudgeted(oracleEmb, tracker, logger)
		}
		if store != nil {
			ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
			oracleEmb = embcache.New(oracleEmb, store, ttl, metrics.EmbeddingCacheTotal, logger)
		}
	}
	embedder := embeddinguc.NewResilient(oracleEmb, logger)

	// Clinical reference tables
	ref := knowledge.Default()
	if cfg.Knowledge.Path != "" {
		ref, err = knowledge.Load(cfg.Knowledge.Path)
		if err != nil {
			logger.Fatal("Failed to load knowledge tables", zap.Error(err))
		}
		logger.Info("Loaded knowledge tables", zap.String("path", cfg.Knowledge.Path))
	}

	// Shared stateless services
	var events timelineuc.EventGenerator
	var pairs reasoninguc.PairChecker
	var text reasoninguc.TextGenerator
	var answerText queryuc.TextGenerator
	if oracle != nil {
		events = oracle
		pairs = oracle
		text = oracle
		answerText = oracle
	}
	timelineSvc := timelineuc.New(events, logger).WithMaxConcurrency(cfg.Engine.MaxConcurrency)
	reasoningSvc := reasoninguc.New(ref, pairs, text, logger)

	// Per-session service bundles around fresh corpora
	factory := func() *chiTransport.Session {
		c := corpus.New()
		searchSvc := searchuc.New(c, embedder)
		return &chiTransport.Session{
			Documents: documentuc.New(chunkinguc.New(), embedder, c, logger).
				WithMaxConcurrency(cfg.Engine.MaxConcurrency),
			Search: searchSvc,
			Query: queryuc.New(searchSvc, timelineSvc, answerText, logger).
				WithTopK(cfg.Engine.TopK),
			Source: c,
		}
	}

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	var oracleChecker healthuc.OracleChecker
	if oracle != nil {
		oracleChecker = oracle
	}
	healthSvc := healthuc.New(cachePinger, oracleChecker)

	server := chiTransport.NewServer(factory, timelineSvc, reasoningSvc, healthSvc, logger)

	r := chirouter.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
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

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
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
