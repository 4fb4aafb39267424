package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		RequestTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   2 * time.Millisecond,
		},
	}}
}

func TestExecuteWithRetry_RetriesTransientErrors(t *testing.T) {
	c := createTestClient(3)
	calls := 0

	result, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, stderrors.New("rpc error: code = Unavailable")
		}
		return "ok", nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_PermanentErrorNotRetried(t *testing.T) {
	c := createTestClient(3)
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("process definition not found")
	}, "create-instance:report")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeResourceNotFound, stdErr.Code)
}

func TestExecuteWithRetry_ExhaustsRetries(t *testing.T) {
	c := createTestClient(2)
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("context deadline exceeded")
	}, "publish")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTimeout, stdErr.Code)
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		code errors.ErrorCode
	}{
		{"connection refused", errors.ErrCodeExternalService},
		{"deadline exceeded", errors.ErrCodeTimeout},
		{"resource not found", errors.ErrCodeResourceNotFound},
		{"instance already exists", errors.ErrCodeBusinessRule},
		{"permission denied", errors.ErrCodeAuthentication},
		{"something odd", errors.ErrCodeExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			stdErr, ok := errors.As(mapZeebeError(stderrors.New(tt.msg), "op", 0))
			require.True(t, ok)
			assert.Equal(t, tt.code, stdErr.Code)
		})
	}
}

func TestInstrument(t *testing.T) {
	const taskType = "instrument-test"
	called := false

	h := Instrument(taskType, nil, func(client worker.JobClient, job entities.Job) {
		called = true
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	})
	h(nil, entities.Job{})

	assert.True(t, called)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}
