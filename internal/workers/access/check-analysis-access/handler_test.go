// internal/workers/access/check-analysis-access/handler_test.go
package checkanalysisaccess

import (
	"context"
	"testing"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupHandler(t *testing.T) (*Handler, *redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewHandler(LoadConfig(), client, logger.NewTestLogger(t)), client, mr
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	stdErr, ok := errors.As(err)
	require.True(t, ok, "expected StandardError, got %v", err)
	assert.Equal(t, code, stdErr.Code)
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_AnonymousGetsOneAnalysis(t *testing.T) {
	h, _, mr := setupHandler(t)
	ctx := context.Background()

	out, err := h.Execute(ctx, &Input{ClientID: "client-1", Consume: true})
	require.NoError(t, err)
	assert.True(t, out.Allowed)
	assert.Equal(t, 1, out.AnalysesUsed)
	assert.Equal(t, 1, out.AnalysesLimit)
	assert.True(t, mr.Exists("usage:client-1"))

	_, err = h.Execute(ctx, &Input{ClientID: "client-1", Consume: true})
	requireCode(t, err, errors.ErrCodeAnalysisLimitReached)

	count, err := mr.Get("usage:client-1")
	require.NoError(t, err)
	assert.Equal(t, "1", count, "rejected attempt must not stay counted")
}

func TestExecute_CheckWithoutConsuming(t *testing.T) {
	h, _, mr := setupHandler(t)

	out, err := h.Execute(context.Background(), &Input{ClientID: "client-2"})
	require.NoError(t, err)
	assert.True(t, out.Allowed)
	assert.Equal(t, 0, out.AnalysesUsed)
	assert.False(t, mr.Exists("usage:client-2"))
}

func TestExecute_EmailRaisesLimit(t *testing.T) {
	h, _, _ := setupHandler(t)
	ctx := context.Background()
	input := &Input{Email: "Jane@Example.com", ClientID: "client-3", Consume: true}

	for i := 1; i <= 2; i++ {
		out, err := h.Execute(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, i, out.AnalysesUsed)
		assert.Equal(t, 2, out.AnalysesLimit)
	}

	_, err := h.Execute(ctx, input)
	requireCode(t, err, errors.ErrCodeAnalysisLimitReached)
}

func TestExecute_UnlimitedAccess(t *testing.T) {
	h, client, _ := setupHandler(t)
	ctx := context.Background()

	require.NoError(t, store.NewRedisAccessStore(client).Grant(ctx, models.AccessGrant{
		Email:        "buyer@example.com",
		OrderID:      "sale-9",
		PurchaseDate: "2026-04-01T00:00:00Z",
		Active:       true,
	}))

	for i := 0; i < 5; i++ {
		out, err := h.Execute(ctx, &Input{Email: "BUYER@example.com", ClientID: "client-4", Consume: true})
		require.NoError(t, err)
		assert.True(t, out.Allowed)
		assert.True(t, out.HasUnlimitedAccess)
		assert.Equal(t, "sale-9", out.OrderID)
	}
}

func TestExecute_MissingIdentity(t *testing.T) {
	h, _, _ := setupHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	requireCode(t, err, errors.ErrCodeInvalidArgument)
}

func TestExecute_RedisUnavailable(t *testing.T) {
	h, _, mr := setupHandler(t)
	mr.Close()

	_, err := h.Execute(context.Background(), &Input{ClientID: "client-5"})
	requireCode(t, err, errors.ErrCodeAccessCheckFailed)
}
