// internal/workers/communication/send-analysis-report/handler.go
package sendanalysisreport

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"mission-analyzer/internal/common/camunda"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/common/validation"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/report"
	"mission-analyzer/internal/scoring"
	"mission-analyzer/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-analysis-report"
)

type Handler struct {
	config   *Config
	captures *store.EmailCaptureRepository
	sender   *report.Sender
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, db *sql.DB, sender *report.Sender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		captures: store.NewEmailCaptureRepository(db),
		sender:   sender,
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

// Execute renders and mails the report. A delivered report marks the email
// capture as sent; a missing capture or a failed update is only logged so a
// retry never mails the report twice.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !validation.IsValidEmail(input.Email) {
		return nil, errors.NewInvalidArgumentError("Valid email address is required")
	}
	if strings.TrimSpace(input.MissionText) == "" {
		return nil, errors.NewInvalidArgumentError("Mission text and scores are required")
	}

	email := validation.NormalizeEmail(input.Email)
	n, err := h.sender.SendReport(ctx, email, h.reportData(input))
	if err != nil {
		return nil, err
	}

	sent := n.Status == models.StatusSent
	if sent {
		if err := h.captures.MarkReportSent(ctx, email, n.SentAt); err != nil {
			fields := map[string]interface{}{"notificationId": n.ID, "error": err}
			if stderrors.Is(err, store.ErrNotFound) {
				h.logger.Info("no email capture to mark", fields)
			} else {
				h.logger.Warn("failed to mark report sent", fields)
			}
		}
	}

	return &Output{
		NotificationID: n.ID,
		Status:         n.Status,
		MessageID:      n.MessageID,
		ReportSent:     sent,
		SentAt:         n.SentAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) reportData(input *Input) report.Data {
	d := report.Data{
		FirstName:       input.FirstName,
		Company:         input.Company,
		MissionText:     input.MissionText,
		Industry:        scoring.ParseIndustry(input.Industry),
		Scores:          input.Scores,
		Recommendations: input.Recommendations,
		GeneratedAt:     time.Now().UTC(),
	}
	if input.Alternatives != nil {
		d.Alternatives = *input.Alternatives
	}
	return report.WithDefaults(d)
}
