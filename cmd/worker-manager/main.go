// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"product-image-workers/internal/backend/chat"
	"product-image-workers/internal/backend/translate"
	"product-image-workers/internal/common/camunda"
	"product-image-workers/internal/common/config"
	"product-image-workers/internal/common/database"
	"product-image-workers/internal/common/logger"
	"product-image-workers/internal/common/observability"
	"product-image-workers/internal/history"
	"product-image-workers/internal/style/engine"

	il "product-image-workers/internal/workers/product-image/interpret-layout"
	mvp "product-image-workers/internal/workers/product-image/merge-vision-prompt"
	op "product-image-workers/internal/workers/product-image/optimize-prompt"
	rs "product-image-workers/internal/workers/product-image/resolve-style"
)

// workerHandler is the lifecycle every product-image worker exposes.
type workerHandler interface {
	Register() error
	Close()
	HealthCheck(ctx context.Context) error
	GetTaskType() string
	IsEnabled() bool
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("scenario", cfg.Engine.Scenario),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
			RetryConfig:            camunda.DefaultRetryConfig,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Redis (translation cache, optional) ---
	var rdb *database.RedisClient
	var translationCache redis.Cmdable
	if cfg.Engine.TranslationCacheTTL > 0 {
		rdb = database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return rdb.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")
		if err != nil {
			// the translator degrades to uncached calls
			zapLog.Warn("redis unreachable, translation cache disabled", zap.Error(err))
			rdb.Close()
			rdb = nil
		} else {
			translationCache = rdb.GetClient()
			defer rdb.Close()
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- PostgreSQL (history journal, optional) ---
	var pg *database.PostgresClient
	var recorder history.Recorder
	if cfg.Engine.HistoryEnabled {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		store := history.NewStore(pg)
		if err := store.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("history schema migration failed", zap.Error(err))
		}
		recorder = store
		zapLog.Info("PostgreSQL connected successfully, history enabled")
	}

	// --- Chat backend & engine ---
	chatClient, err := chat.New(cfg.APIs.Chat.ClientConfig(), log)
	if err != nil {
		zapLog.Fatal("chat client init failed", zap.Error(err))
	}

	translator := translate.New(chatClient, translationCache,
		config.GetDuration(cfg.Engine.TranslationCacheTTL), log)

	styleEngine := engine.New(chatClient, translator, engineOptions(cfg), log)
	zapLog.Info("Style engine ready", zap.String("model", chatClient.Model()))

	// --- Workers ---
	handlers, err := buildHandlers(cfg, zeebe, styleEngine, recorder, obs, log)
	if err != nil {
		zapLog.Fatal("worker construction failed", zap.Error(err))
	}

	registered := 0
	for _, h := range handlers {
		if err := h.Register(); err != nil {
			zapLog.Fatal("worker registration failed", zap.String("taskType", h.GetTaskType()), zap.Error(err))
		}
		if h.IsEnabled() {
			registered++
		}
	}
	zapLog.Info("Workers registered", zap.Int("enabled", registered), zap.Int("total", len(handlers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		}
		code := http.StatusOK
		fail := func(name string, err error) {
			checks[name] = err.Error()
			checks["status"] = "not ready"
			code = http.StatusServiceUnavailable
		}

		if err := zeebe.HealthCheck(checkCtx); err != nil {
			fail("camunda", err)
		}
		if rdb != nil {
			if err := rdb.Ping(checkCtx); err != nil {
				fail("redis", err)
			}
		}
		if pg != nil {
			if err := pg.Ping(checkCtx); err != nil {
				fail("postgres", err)
			}
		}
		writeStatus(w, code, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, h := range handlers {
		h.Close()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing otel metrics", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func buildHandlers(
	cfg *config.Config,
	zeebe *camunda.Client,
	styleEngine *engine.Engine,
	recorder history.Recorder,
	obs *observability.Observability,
	log logger.Logger,
) ([]workerHandler, error) {
	resolve, err := rs.NewHandler(rs.HandlerOptions{
		AppConfig:     cfg,
		Camunda:       zeebe,
		Logger:        log,
		Engine:        styleEngine,
		History:       recorder,
		Observability: obs,
	})
	if err != nil {
		return nil, err
	}

	merge, err := mvp.NewHandler(mvp.HandlerOptions{
		AppConfig:     cfg,
		Camunda:       zeebe,
		Logger:        log,
		Engine:        styleEngine,
		History:       recorder,
		Observability: obs,
	})
	if err != nil {
		return nil, err
	}

	layout, err := il.NewHandler(il.HandlerOptions{
		AppConfig:     cfg,
		Camunda:       zeebe,
		Logger:        log,
		Engine:        styleEngine,
		Observability: obs,
	})
	if err != nil {
		return nil, err
	}

	optimize, err := op.NewHandler(op.HandlerOptions{
		AppConfig:     cfg,
		Camunda:       zeebe,
		Logger:        log,
		Engine:        styleEngine,
		History:       recorder,
		Observability: obs,
	})
	if err != nil {
		return nil, err
	}

	return []workerHandler{resolve, merge, layout, optimize}, nil
}

func engineOptions(cfg *config.Config) engine.Options {
	toInstructions := func(s config.PromptScenario) engine.Instructions {
		return engine.Instructions{
			Layout:   s.AnalyzeLayoutSystem,
			Optimize: s.OptimizePromptSystem,
		}
	}

	scenarios := make(map[string]engine.Instructions, len(cfg.Prompts))
	for name, s := range cfg.Prompts {
		scenarios[name] = toInstructions(s)
	}

	return engine.Options{
		MaxWait:   config.GetDuration(cfg.APIs.Chat.Timeout),
		Default:   toInstructions(cfg.Scenario(cfg.Engine.Scenario)),
		Scenarios: scenarios,
	}
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
