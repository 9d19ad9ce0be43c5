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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/lexora-cloud/lexsearch/internal/config"
	logpkg "github.com/lexora-cloud/lexsearch/internal/logger"
	"github.com/lexora-cloud/lexsearch/internal/metrics"
	"github.com/lexora-cloud/lexsearch/internal/repository/embcache"
	searchrepo "github.com/lexora-cloud/lexsearch/internal/repository/search"
	chiTransport "github.com/lexora-cloud/lexsearch/internal/transport/chi"
	"github.com/lexora-cloud/lexsearch/internal/transport/imagevec"
	openaiProv "github.com/lexora-cloud/lexsearch/internal/transport/openai"
	exploreuc "github.com/lexora-cloud/lexsearch/internal/usecase/explore"
	guardrailuc "github.com/lexora-cloud/lexsearch/internal/usecase/guardrail"
	healthuc "github.com/lexora-cloud/lexsearch/internal/usecase/health"
	intentuc "github.com/lexora-cloud/lexsearch/internal/usecase/intent"
	orchestrateuc "github.com/lexora-cloud/lexsearch/internal/usecase/orchestrate"
	"github.com/lexora-cloud/lexsearch/internal/usecase/querybuilder"
	supportuc "github.com/lexora-cloud/lexsearch/internal/usecase/supportanswer"
	"github.com/lexora-cloud/lexsearch/internal/version"
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

	logger.Info("Starting lexsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("retrieval_addrs", cfg.Retrieval.Addresses),
		zap.String("product_index", cfg.Retrieval.ProductIndex),
		zap.String("support_index", cfg.Retrieval.SupportIndex),
	)

	// Register provider metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	// Retrieval backend
	repo, err := searchrepo.New(searchrepo.Config{
		Addresses:    cfg.Retrieval.Addresses,
		Username:     cfg.Retrieval.Username,
		Password:     cfg.Retrieval.Password,
		ProductIndex: cfg.Retrieval.ProductIndex,
		SupportIndex: cfg.Retrieval.SupportIndex,
		Timeout:      time.Duration(cfg.Retrieval.RequestTimeout) * time.Second,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("Failed to create retrieval repository", zap.Error(err))
	}

	// Embedding provider, optionally wrapped in a cache
	baseEmbedder := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.RequestTimeout) * time.Second,
		Logger:     logger,
	})

	var embedder interface {
		Embed(ctx context.Context, text string) ([]float32, error)
	} = baseEmbedder

	var cachePinger healthuc.RetrievalPinger
	if len(cfg.Cache.Addrs) > 0 {
		cacheClient, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress: cfg.Cache.Addrs,
			Password:    cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to connect to embedding cache", zap.Error(err))
		}
		defer cacheClient.Close()

		cached := embcache.New(
			baseEmbedder,
			cacheClient,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.EmbeddingCacheTotal,
			logger,
		)
		embedder = cached
		cachePinger = cached
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Completion provider for intent classification, guardrails, answers
	completer := openaiProv.NewCompleter(&openaiProv.CompleterConfig{
		APIKey:      cfg.Completion.APIKey,
		BaseURL:     cfg.Completion.BaseURL,
		Model:       cfg.Completion.Model,
		Temperature: cfg.Completion.Temperature,
		Timeout:     time.Duration(cfg.Completion.RequestTimeout) * time.Second,
		Logger:      logger,
	})

	// Image vectorizer
	imageEmbedder := imagevec.New(
		cfg.Embedding.ImageEndpoint,
		cfg.Embedding.ImageDims,
		time.Duration(cfg.Embedding.RequestTimeout)*time.Second,
	)

	// Use case services
	classifier := intentuc.NewRouter(completer)
	guardrails := guardrailuc.New(completer)
	builder := querybuilder.New(embedder, searchrepo.TextVectorField)
	explorer := exploreuc.New(builder, repo, cfg.Search.DefaultPageSize)
	synthesizer := supportuc.New(embedder, repo, completer, cfg.Search.KnowledgeTopK)
	orchestrator := orchestrateuc.New(
		classifier, guardrails, builder, repo, explorer, synthesizer,
		cfg.Search.DefaultPageSize,
	)
	healthSvc := healthuc.New(repo, cachePinger)

	server := chiTransport.NewServer(
		orchestrator, imageEmbedder, repo, healthSvc,
		cfg.Search.DefaultPageSize, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Post("/v1/query", server.HandleQuery)
	r.Post("/v1/search/image", server.HandleImageSearch)
	r.Get("/healthz", server.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

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
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
