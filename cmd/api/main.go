// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mission-analyzer/internal/api"
	awsclient "mission-analyzer/internal/common/aws"
	"mission-analyzer/internal/common/camunda"
	"mission-analyzer/internal/common/config"
	"mission-analyzer/internal/common/database"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/common/observability"
	"mission-analyzer/internal/paywall"
	"mission-analyzer/internal/report"
	"mission-analyzer/internal/store"

	"github.com/gin-gonic/gin"
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
	}).WithFields(map[string]interface{}{"service": "api"})

	if err := config.ValidateForAPI(cfg); err != nil {
		log.Error("invalid configuration", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	if cfg.Environment() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	obs := observability.New("mission-api", log)
	defer obs.Shutdown()

	ctx := context.Background()
	conns, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Error("datastores unavailable", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	defer conns.Close()

	db := conns.Postgres.DB
	rdb := conns.Redis.Client

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

	deps := api.Deps{
		Analyses: store.NewAnalysisRepository(db),
		Users:    store.NewUserRepository(db),
		Captures: store.NewEmailCaptureRepository(db),
		Paywall: paywall.NewService(cfg.Paywall, store.NewRedisAccessStore(rdb),
			store.NewUsageCounter(rdb, cfg.Paywall.UsageTTL()), publisher, log),
		Reports: sender,
		Obs:     obs,
		Checks:  conns.Checks(),
	}
	if conns.Elasticsearch != nil {
		deps.Search = store.NewAnalysisIndex(conns.Elasticsearch.Client, cfg.Database.Elasticsearch.Index)
	}

	if cfg.Camunda.ReportProcessID != "" && cfg.Camunda.BrokerAddress != "" {
		zeebe, err := camunda.NewClient(cfg.Camunda.BrokerAddress)
		if err != nil {
			log.Warn("zeebe unavailable, reports are sent directly", map[string]interface{}{"error": err})
		} else {
			defer zeebe.Close()
			deps.Processes = zeebe
			deps.Checks["zeebe"] = zeebe.HealthCheck
		}
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.New(cfg, deps, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("API server failed", map[string]interface{}{"error": err})
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, draining requests...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping API server", map[string]interface{}{"error": err})
	}
	log.Info("API stopped gracefully", nil)
}
