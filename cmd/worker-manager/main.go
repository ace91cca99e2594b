// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"talent-match-workers/internal/catalog"
	"talent-match-workers/internal/collaborators/embedding"
	"talent-match-workers/internal/collaborators/knowledgegraph"
	"talent-match-workers/internal/common/camunda"
	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/database"
	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/observability"
	"talent-match-workers/internal/matching"

	asg "talent-match-workers/internal/workers/matching/analyze-skill-gaps"
	cms "talent-match-workers/internal/workers/matching/calculate-match-score"
	rjm "talent-match-workers/internal/workers/matching/rank-job-matches"
	vcp "talent-match-workers/internal/workers/matching/validate-candidate-profile"
	srn "talent-match-workers/internal/workers/notification/send-review-notification"
)

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

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         30 * time.Second,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
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
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Taxonomy, catalog and collaborators ---
	taxonomy, err := matching.LoadTaxonomy(cfg.Taxonomy.Path)
	if err != nil {
		zapLog.Fatal("taxonomy load failed", zap.Error(errors.NewTaxonomyLoadFailedError(err)))
	}

	store := catalog.NewStore(pg.DB, redis.Client, cfg.Catalog, log)
	if _, err := store.Load(ctx); err != nil {
		// Workers can still resolve single jobs by ID, so a cold start
		// without a snapshot is survivable.
		zapLog.Warn("initial catalog load failed, continuing without snapshot", zap.Error(err))
	}

	search := catalog.NewSearch(esClient, cfg.Database.Elasticsearch.JobsIndex, log)
	embedClient := embedding.NewClient(cfg.Embedding, redis.Client, log)
	analyzer := knowledgegraph.NewAnalyzer(taxonomy, log)

	engine := matching.NewEngine(cfg.Matching, taxonomy, embedClient, analyzer, log)
	zapLog.Info("Match engine initialized")

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker
	register := func(taskType string, handler camunda.JobHandler) {
		wcfg := cfg.Workers[taskType]
		workers = append(workers, camunda.NewWorker(zeebeClient, taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       time.Duration(wcfg.Timeout) * time.Millisecond,
		}, handler, zapLog))
	}

	if config.IsWorkerEnabled(cfg, vcp.TaskType) {
		vcpConfig := vcp.LoadConfig()
		if wcfg := cfg.Workers[vcp.TaskType]; wcfg.Timeout > 0 {
			vcpConfig.Timeout = time.Duration(wcfg.Timeout) * time.Millisecond
		}
		handler := vcp.NewHandler(vcpConfig, taxonomy, log)
		register(vcp.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, cms.TaskType) {
		cmsConfig := cms.LoadConfig()
		if wcfg := cfg.Workers[cms.TaskType]; wcfg.Timeout > 0 {
			cmsConfig.Timeout = time.Duration(wcfg.Timeout) * time.Millisecond
		}
		handler := cms.NewHandler(cmsConfig, engine, store, log).WithRecorder(obs)
		register(cms.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, rjm.TaskType) {
		rjmConfig := rjm.LoadConfig()
		if wcfg := cfg.Workers[rjm.TaskType]; wcfg.Timeout > 0 {
			rjmConfig.Timeout = time.Duration(wcfg.Timeout) * time.Millisecond
		}
		handler := rjm.NewHandler(rjmConfig, engine, store, search, log)
		register(rjm.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, asg.TaskType) {
		asgConfig := asg.LoadConfig()
		if wcfg := cfg.Workers[asg.TaskType]; wcfg.Timeout > 0 {
			asgConfig.Timeout = time.Duration(wcfg.Timeout) * time.Millisecond
		}
		handler := asg.NewHandler(asgConfig, analyzer, taxonomy, log)
		register(asg.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, srn.TaskType) {
		notifConfig := srn.FromNotificationConfig(cfg.Notifications)
		if wcfg := cfg.Workers[srn.TaskType]; wcfg.Timeout > 0 {
			notifConfig.Timeout = time.Duration(wcfg.Timeout) * time.Millisecond
		}
		handler, err := srn.NewHandler(notifConfig, log)
		if err != nil {
			zapLog.Fatal("failed to create send-review-notification handler", zap.Error(err))
		}
		register(srn.TaskType, handler)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			status := "healthy"
			code := http.StatusOK
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				status = "zeebe unreachable"
				code = http.StatusServiceUnavailable
			}
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			status := "ready"
			code := http.StatusOK
			if store.Snapshot() == nil {
				status = "no catalog snapshot"
				code = http.StatusServiceUnavailable
			}
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
