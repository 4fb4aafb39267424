// internal/workers/analysis/save-analysis/handler.go
package saveanalysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"mission-analyzer/internal/common/camunda"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/scoring"
	"mission-analyzer/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-analysis"
)

// Indexer is satisfied by store.AnalysisIndex.
type Indexer interface {
	Index(ctx context.Context, doc models.AnalysisDocument) error
}

type Handler struct {
	config   *Config
	analyses *store.AnalysisRepository
	index    Indexer
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

// NewHandler builds the worker. index may be nil when search is not configured.
func NewHandler(config *Config, db *sql.DB, index Indexer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		analyses: store.NewAnalysisRepository(db),
		index:    index,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
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

// Execute stores the analysis and indexes it for search. Missing scores are
// computed with the simple profile. Indexing failures are logged only.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.MissionText) == "" {
		return nil, errors.NewInvalidArgumentError("missionText is required")
	}

	a := &models.Analysis{
		UserID:          input.UserID,
		MissionText:     input.MissionText,
		Industry:        string(scoring.ParseIndustry(input.Industry)),
		WordCount:       scoring.WordCount(input.MissionText),
		FullAnalysis:    input.FullAnalysis,
		Recommendations: input.Recommendations,
		Alternatives:    input.Alternatives,
		IsAIAnalysis:    input.IsAIAnalysis,
	}

	if input.Scores != nil {
		a.SetScores(*input.Scores)
	} else {
		report := scoring.Score(input.MissionText, scoring.SimpleProfile)
		a.SetScores(report.Scores)
		if len(a.FullAnalysis) == 0 {
			if data, err := json.Marshal(report); err == nil {
				a.FullAnalysis = data
			}
		}
	}

	if err := h.analyses.Create(ctx, a); err != nil {
		return nil, err
	}

	indexed := false
	if h.index != nil {
		if err := h.index.Index(ctx, a.Document()); err != nil {
			h.logger.Warn("failed to index analysis", map[string]interface{}{
				"analysisId": a.ID,
				"error":      err,
			})
		} else {
			indexed = true
		}
	}

	h.logger.Info("analysis saved", map[string]interface{}{
		"analysisId": a.ID,
		"industry":   a.Industry,
		"overall":    a.OverallScore,
		"indexed":    indexed,
	})

	return &Output{
		AnalysisID: a.ID,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		Indexed:    indexed,
	}, nil
}
