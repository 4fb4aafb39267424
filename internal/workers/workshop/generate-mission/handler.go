// internal/workers/workshop/generate-mission/handler.go
package generatemission

import (
	"context"

	"mission-analyzer/internal/common/camunda"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/common/metrics"
	"mission-analyzer/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-mission"
)

type Handler struct {
	config *Config
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
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
	if !input.Answers.Complete() {
		return nil, errors.NewWorkshopIncompleteError()
	}

	profile, err := scoring.ProfileByName(h.config.Profile)
	if err != nil {
		return nil, errors.NewInvalidArgumentError(err.Error())
	}

	text := scoring.GenerateMission(input.Answers, scoring.ParseIndustry(input.Industry))
	report := scoring.Score(text, profile)
	metrics.ObserveScore(profile.Name, report.Overall)

	h.logger.Info("mission generated", map[string]interface{}{
		"industry":  scoring.ParseIndustry(input.Industry),
		"wordCount": report.WordCount,
		"overall":   report.Overall,
	})

	return &Output{MissionText: text, Report: report}, nil
}
