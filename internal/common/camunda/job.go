// internal/common/camunda/job.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/common/metrics"
	"mission-analyzer/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// DecodeVariables checks the job variables against schema, when one is
// given, and decodes them into v. Failures are INVALID_ARGUMENT errors.
func DecodeVariables(job entities.Job, schema map[string]interface{}, v interface{}) error {
	raw := []byte(job.Variables)
	result, err := validation.ValidateJSON(schema, raw)
	if err != nil {
		return errors.NewInvalidArgumentError(err.Error())
	}
	if !result.Valid {
		return errors.NewInvalidArgumentError(result.Error()).WithMetadata("validationErrors", result.Errors)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.NewInvalidArgumentError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}

// CompleteJob completes job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(job.Type).Inc()
	log.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
}
