// internal/workers/access/check-analysis-access/handler.go
package checkanalysisaccess

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
	TaskType = "check-analysis-access"
)

type Handler struct {
	config  *Config
	paywall *paywall.Service
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, redis *redis.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		paywall: paywall.NewService(
			config.Paywall,
			store.NewRedisAccessStore(redis),
			store.NewUsageCounter(redis, config.Paywall.UsageTTL()),
			nil,
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

// Execute returns the caller's access status. A caller over the free limit
// fails with ANALYSIS_LIMIT_REACHED, which the process handles as a BPMN error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	status, err := h.paywall.Check(ctx, input.Email, input.ClientID, input.Consume)
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.NewAccessCheckFailedError(err)
	}

	h.logger.Info("analysis access checked", map[string]interface{}{
		"unlimited":    status.HasUnlimitedAccess,
		"analysesUsed": status.AnalysesUsed,
		"limit":        status.AnalysesLimit,
	})
	return &Output{AccessStatus: *status}, nil
}
