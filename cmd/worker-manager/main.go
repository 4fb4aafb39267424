// cmd/worker-manager/main.go
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

	awsclient "mission-analyzer/internal/common/aws"
	"mission-analyzer/internal/common/camunda"
	"mission-analyzer/internal/common/config"
	"mission-analyzer/internal/common/database"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/common/observability"
	"mission-analyzer/internal/paywall"
	"mission-analyzer/internal/report"
	"mission-analyzer/internal/store"
	"mission-analyzer/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkaccess "mission-analyzer/internal/workers/access/check-analysis-access"
	grantaccess "mission-analyzer/internal/workers/access/grant-unlimited-access"
	compareversions "mission-analyzer/internal/workers/analysis/compare-versions"
	saveanalysis "mission-analyzer/internal/workers/analysis/save-analysis"
	scoremission "mission-analyzer/internal/workers/analysis/score-mission"
	sendreport "mission-analyzer/internal/workers/communication/send-analysis-report"
	generatemission "mission-analyzer/internal/workers/workshop/generate-mission"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewFromOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}).WithFields(map[string]interface{}{"service": "worker-manager"})

	if err := config.ValidateForWorkers(cfg); err != nil {
		log.Error("invalid configuration", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	log.Info("Starting worker manager...", map[string]interface{}{"environment": cfg.Environment()})

	obs := observability.New("worker-manager", log)
	defer obs.Shutdown()

	ctx := context.Background()

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		log.Error("failed to load activity registry", map[string]interface{}{"path": cfg.Registry.Path, "error": err})
		os.Exit(1)
	}
	if err := reg.Validate(); err != nil {
		log.Error("activity registry is invalid", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	// --- Zeebe ---
	var zeebeClient zbc.Client
	err = database.RetryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		log.Error("zeebe client failed after retries", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	log.Info("Zeebe client connected successfully", nil)

	// --- Datastores ---
	conns, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Error("datastores unavailable", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	defer conns.Close()

	db := conns.Postgres.DB
	rdb := conns.Redis.Client

	var indexer saveanalysis.Indexer
	if conns.Elasticsearch != nil {
		indexer = store.NewAnalysisIndex(conns.Elasticsearch.Client, cfg.Database.Elasticsearch.Index)
	}

	// --- AWS delivery ---
	awsCfg := cfg.Integrations.AWS
	sender := report.NewSender(nil, "", log)
	if awsCfg.SES.Enabled {
		ses, err := awsclient.NewSESClient(ctx, awsCfg.Region)
		if err != nil {
			log.Error("failed to create SES client", map[string]interface{}{"error": err})
			os.Exit(1)
		}
		sender = report.NewSender(ses, awsCfg.SES.FromEmail, log)
	}

	var publisher paywall.EventPublisher
	if awsCfg.SNS.Enabled {
		sns, err := awsclient.NewSNSClient(ctx, awsCfg.Region)
		if err != nil {
			log.Error("failed to create SNS client", map[string]interface{}{"error": err})
			os.Exit(1)
		}
		publisher = store.NewPurchasePublisher(sns, awsCfg.SNS.PurchaseTopicARN)
	}

	// --- Workers ---
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}
	start := func(taskType string, handler camunda.HandlerFunc) *camunda.Worker {
		return camunda.StartWorker(zeebeClient, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log)
	}

	var workers []*camunda.Worker

	score := scoremission.NewHandler(&scoremission.Config{
		Timeout:       timeout(scoremission.TaskType),
		Profile:       cfg.Scoring.Profile,
		Aggregation:   cfg.Scoring.Aggregation,
		MinTextLength: cfg.Paywall.MinTextLength,
		MaxTextLength: cfg.Paywall.MaxTextLength,
		CacheTTL:      config.GetDuration(cfg.Scoring.CacheTTL),
		InputSchema:   reg.InputSchema(scoremission.TaskType),
	}, rdb, obs, log)
	workers = append(workers, start(scoremission.TaskType, score.Handle))

	compare := compareversions.NewHandler(&compareversions.Config{
		Timeout:     timeout(compareversions.TaskType),
		InputSchema: reg.InputSchema(compareversions.TaskType),
	}, log)
	workers = append(workers, start(compareversions.TaskType, compare.Handle))

	generate := generatemission.NewHandler(&generatemission.Config{
		Timeout:     timeout(generatemission.TaskType),
		Profile:     cfg.Scoring.Profile,
		InputSchema: reg.InputSchema(generatemission.TaskType),
	}, log)
	workers = append(workers, start(generatemission.TaskType, generate.Handle))

	save := saveanalysis.NewHandler(&saveanalysis.Config{
		Timeout:     timeout(saveanalysis.TaskType),
		InputSchema: reg.InputSchema(saveanalysis.TaskType),
	}, db, indexer, log)
	workers = append(workers, start(saveanalysis.TaskType, save.Handle))

	access := checkaccess.NewHandler(&checkaccess.Config{
		Timeout:     timeout(checkaccess.TaskType),
		Paywall:     cfg.Paywall,
		InputSchema: reg.InputSchema(checkaccess.TaskType),
	}, rdb, log)
	workers = append(workers, start(checkaccess.TaskType, access.Handle))

	grant := grantaccess.NewHandler(&grantaccess.Config{
		Timeout:     timeout(grantaccess.TaskType),
		Paywall:     cfg.Paywall,
		InputSchema: reg.InputSchema(grantaccess.TaskType),
	}, rdb, publisher, log)
	workers = append(workers, start(grantaccess.TaskType, grant.Handle))

	send := sendreport.NewHandler(&sendreport.Config{
		Timeout:     timeout(sendreport.TaskType),
		InputSchema: reg.InputSchema(sendreport.TaskType),
	}, db, sender, log)
	workers = append(workers, start(sendreport.TaskType, send.Handle))

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	checks := conns.Checks()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		for name, check := range checks {
			if err := check(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "failed": name})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"addr": metricsServer.Addr})
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	for _, w := range workers {
		w.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping metrics server", map[string]interface{}{"error": err})
	}
	if err := zeebeClient.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
