// internal/workers/analysis/score-mission/handler.go
package scoremission

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"mission-analyzer/internal/common/camunda"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/common/metrics"
	"mission-analyzer/internal/common/observability"
	"mission-analyzer/internal/common/validation"
	"mission-analyzer/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "score-mission"

	cacheKeyPrefix = "mission:score:"
)

type Handler struct {
	config *Config
	redis  *redis.Client
	obs    *observability.Observability
	errors *errors.ErrorHandler
	logger logger.Logger
}

// NewHandler builds the worker. redis and obs may be nil.
func NewHandler(config *Config, redis *redis.Client, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		redis:  redis,
		obs:    obs,
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

// Execute scores the mission text and attaches suggestions, rewrites and the
// industry benchmark. Reports are cached by profile, aggregation and text.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	text, err := scoring.TextFrom(input.MissionText)
	if err != nil {
		return nil, errors.NewInvalidArgumentError(err.Error())
	}
	if err := validation.CheckMissionText(text, h.config.MinTextLength, h.config.MaxTextLength); err != nil {
		return nil, err
	}

	profile, agg, err := h.resolveProfile(input)
	if err != nil {
		return nil, errors.NewInvalidArgumentError(err.Error())
	}

	start := time.Now()
	key := cacheKey(profile.Name, agg, text)
	report, cached := h.cachedReport(ctx, key)
	if !cached {
		report = scoring.ScoreWith(text, profile, agg)
		h.cacheReport(ctx, key, report)
	}

	metrics.ObserveScore(profile.Name, report.Overall)
	h.obs.RecordAnalysis(ctx, profile.Name, "worker", time.Since(start))

	h.logger.Info("mission scored", map[string]interface{}{
		"profile":   profile.Name,
		"wordCount": report.WordCount,
		"overall":   report.Overall,
		"cached":    cached,
	})

	return &Output{
		Result: *scoring.Assemble(report, text, scoring.Industry(input.Industry)),
		Cached: cached,
	}, nil
}

func (h *Handler) resolveProfile(input *Input) (scoring.Profile, scoring.Aggregation, error) {
	name := input.Profile
	if name == "" {
		name = h.config.Profile
	}
	profile, err := scoring.ProfileByName(name)
	if err != nil {
		return scoring.Profile{}, "", err
	}

	aggName := input.Aggregation
	if aggName == "" {
		aggName = h.config.Aggregation
	}
	agg, err := scoring.ParseAggregation(aggName)
	if err != nil {
		return scoring.Profile{}, "", err
	}
	return profile, agg, nil
}

func cacheKey(profile string, agg scoring.Aggregation, text string) string {
	sum := sha256.Sum256([]byte(profile + "|" + string(agg) + "|" + text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (h *Handler) cachedReport(ctx context.Context, key string) (*scoring.Report, bool) {
	if h.redis == nil {
		return nil, false
	}
	val, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			h.logger.Warn("score cache read failed", map[string]interface{}{"error": err})
		}
		return nil, false
	}
	var report scoring.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, false
	}
	return &report, true
}

func (h *Handler) cacheReport(ctx context.Context, key string, report *scoring.Report) {
	if h.redis == nil || h.config.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("score cache write failed", map[string]interface{}{"error": err})
	}
}
