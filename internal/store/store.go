// Package store persists analyses, users and email captures in Postgres,
// paywall state in Redis and a searchable copy of analyses in Elasticsearch.
package store

import (
	"context"
	stderrors "errors"
	"math"

	"mission-analyzer/internal/common/errors"
)

// ErrNotFound is returned when a lookup matches no row or key.
var ErrNotFound = stderrors.New("not found")

// queryError classifies a failed query. Deadline errors are retryable
// timeouts, everything else is an execution failure.
func queryError(queryType string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(queryType)
	}
	return errors.NewQueryExecutionFailedError(queryType, err)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
