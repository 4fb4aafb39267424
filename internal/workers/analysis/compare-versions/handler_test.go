// internal/workers/analysis/compare-versions/handler_test.go
package compareversions

import (
	"context"
	"testing"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func scoresOf(overall int) *scoring.Scores {
	return &scoring.Scores{
		Clarity: overall, Specificity: overall, Impact: overall,
		Authenticity: overall, Memorability: overall, Overall: overall,
	}
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_ScoresMissingVersionsWithMean(t *testing.T) {
	h := createTestHandler(t)
	a := "To accelerate the world's transition to sustainable energy."
	b := "We are committed to excellence and innovative solutions."

	out, err := h.Execute(context.Background(), &Input{Versions: []scoring.Version{
		{ID: "a", Text: a},
		{ID: "b", Text: b},
	}})
	require.NoError(t, err)
	require.True(t, out.Comparable)
	require.Len(t, out.Versions, 2)

	wantA := scoring.ScoreWith(a, scoring.SimpleProfile, scoring.AggregationMean).Scores
	wantB := scoring.ScoreWith(b, scoring.SimpleProfile, scoring.AggregationMean).Scores
	assert.Equal(t, wantA, *out.Versions[0].Scores)
	assert.Equal(t, wantB, *out.Versions[1].Scores)

	want := scoring.CompareVersions(out.Versions)
	assert.Equal(t, want, out.Comparison)
}

func TestExecute_KeepsProvidedScores(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Versions: []scoring.Version{
		{ID: "low", Text: "Anything at all here", Scores: scoresOf(40)},
		{ID: "high", Text: "Anything else here too", Scores: scoresOf(90)},
	}})
	require.NoError(t, err)
	require.True(t, out.Comparable)
	assert.Equal(t, "high", out.Comparison.Winner)
	assert.Equal(t, 90, out.Comparison.WinnerScore)
	assert.Equal(t, 40, out.Versions[0].Scores.Overall)
}

func TestExecute_NotEnoughData(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name     string
		versions []scoring.Version
	}{
		{name: "none", versions: nil},
		{name: "one", versions: []scoring.Version{{ID: "a", Text: "We feed hungry children every day."}}},
		{name: "one blank", versions: []scoring.Version{
			{ID: "a", Text: "We feed hungry children every day."},
			{ID: "b", Text: "   "},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &Input{Versions: tt.versions})
			require.NoError(t, err)
			assert.False(t, out.Comparable)
			assert.Nil(t, out.Comparison)
		})
	}
}

func TestExecute_RequireResult(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Versions: []scoring.Version{
			{ID: "a", Text: "We feed hungry children every day."},
			{ID: "b", Text: ""},
		},
		RequireResult: true,
	})
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInsufficientVersions, stdErr.Code)
	assert.Equal(t, "1 valid version(s) supplied", stdErr.Details)
}

func TestExecute_RequireResult_BlankScoredDraftNotCounted(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Versions: []scoring.Version{
			{ID: "a", Text: "We feed hungry children every day."},
			{ID: "b", Text: " \ufeff ", Scores: scoresOf(80)},
		},
		RequireResult: true,
	})
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInsufficientVersions, stdErr.Code)
	assert.Equal(t, "1 valid version(s) supplied", stdErr.Details)
}
