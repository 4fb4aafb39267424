// internal/workers/workshop/generate-mission/handler_test.go
package generatemission

import (
	"context"
	"testing"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAnswers() scoring.WorkshopAnswers {
	return scoring.WorkshopAnswers{
		Purpose:    "affordable solar power",
		Audience:   "rural families",
		ActionVerb: "empower",
		Impact:     "energy independence",
	}
}

func TestExecute_GeneratesAndScores(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	answers := createTestAnswers()

	out, err := h.Execute(context.Background(), &Input{Answers: answers, Industry: "energy"})
	require.NoError(t, err)

	want := scoring.GenerateMission(answers, scoring.IndustryEnergy)
	assert.Equal(t, want, out.MissionText)
	assert.NotEmpty(t, out.MissionText)
	assert.Equal(t, scoring.Score(want, scoring.SimpleProfile), out.Report)
}

func TestExecute_TechnologyTemplate(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{Answers: createTestAnswers(), Industry: "technology"})
	require.NoError(t, err)
	assert.Equal(t, scoring.GenerateMission(createTestAnswers(), scoring.IndustryTechnology), out.MissionText)
}

func TestExecute_IncompleteAnswers(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewNoOpLogger())

	for _, mutate := range []func(*scoring.WorkshopAnswers){
		func(a *scoring.WorkshopAnswers) { a.Purpose = "" },
		func(a *scoring.WorkshopAnswers) { a.Audience = "" },
		func(a *scoring.WorkshopAnswers) { a.ActionVerb = "" },
	} {
		answers := createTestAnswers()
		mutate(&answers)

		_, err := h.Execute(context.Background(), &Input{Answers: answers})
		stdErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeWorkshopIncomplete, stdErr.Code)
	}
}
