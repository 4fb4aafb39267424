// internal/workers/access/grant-unlimited-access/handler.go
package grantunlimitedaccess

import (
	"context"

	"mission-analyzer/internal/common/camunda"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/paywall"
	"mission-analyzer/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "grant-unlimited-access"
)

type Handler struct {
	config  *Config
	paywall *paywall.Service
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

// NewHandler builds the worker. publisher may be nil when purchase events
// are not published.
func NewHandler(config *Config, redis *redis.Client, publisher paywall.EventPublisher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		paywall: paywall.NewService(
			config.Paywall,
			store.NewRedisAccessStore(redis),
			store.NewUsageCounter(redis, config.Paywall.UsageTTL()),
			publisher,
			log,
		),
		errors: errors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, h.config.InputSchema, &input); err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	camunda.CompleteJob(ctx, client, job, output, h.logger)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.paywall.ApplyPurchase(ctx, *input)
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.NewAccessCheckFailedError(err)
	}

	h.logger.Info("purchase webhook applied", map[string]interface{}{
		"granted":   result.Granted,
		"orderId":   input.SaleID,
		"published": result.MessageID != "",
	})
	return &Output{PurchaseResult: *result}, nil
}
