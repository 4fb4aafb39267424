// internal/workers/analysis/compare-versions/handler.go
package compareversions

import (
	"context"

	"mission-analyzer/internal/common/camunda"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compare-versions"
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

// Execute scores drafts that arrive without scores, using the mean
// aggregation, then ranks them. Fewer than two usable drafts complete with
// comparable=false unless the process requires a result.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	versions := scoring.FillScores(input.Versions)
	comparison := scoring.CompareVersions(versions)
	if comparison == nil && input.RequireResult {
		return nil, errors.NewInsufficientVersionsError(countScored(versions))
	}

	fields := map[string]interface{}{
		"versions":   len(versions),
		"comparable": comparison != nil,
	}
	if comparison != nil {
		fields["winner"] = comparison.Winner
		fields["winnerScore"] = comparison.WinnerScore
	}
	h.logger.Info("versions compared", fields)

	return &Output{
		Comparable: comparison != nil,
		Comparison: comparison,
		Versions:   versions,
	}, nil
}

func countScored(versions []scoring.Version) int {
	n := 0
	for _, v := range versions {
		if v.Usable() {
			n++
		}
	}
	return n
}
