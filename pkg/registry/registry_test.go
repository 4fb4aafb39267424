package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{
				ID:          "score-mission",
				DisplayName: "Score Mission Statement",
				Category:    "analysis",
				TaskType:    "score-mission",
				Timeout:     "10s",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"missionText"},
				},
			},
		},
	}
}

func TestShippedRegistryIsValid(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{
		"score-mission", "compare-versions", "generate-mission", "save-analysis",
		"check-analysis-access", "grant-unlimited-access", "send-analysis-report",
	} {
		assert.NotEmpty(t, reg.InputSchema(taskType), taskType)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ActivityRegistry)
		wantErr string
	}{
		{name: "valid", mutate: func(*ActivityRegistry) {}},
		{
			name:    "empty",
			mutate:  func(r *ActivityRegistry) { r.Activities = nil },
			wantErr: "no activities",
		},
		{
			name:    "duplicate id",
			mutate:  func(r *ActivityRegistry) { r.Activities = append(r.Activities, r.Activities[0]) },
			wantErr: "duplicate activity ID",
		},
		{
			name:    "missing task type",
			mutate:  func(r *ActivityRegistry) { r.Activities[0].TaskType = "" },
			wantErr: "TaskType",
		},
		{
			name:    "bad timeout",
			mutate:  func(r *ActivityRegistry) { r.Activities[0].Timeout = "soon" },
			wantErr: "invalid timeout",
		},
		{
			name: "bad schema",
			mutate: func(r *ActivityRegistry) {
				r.Activities[0].InputSchema = map[string]interface{}{"type": 12}
			},
			wantErr: "invalid input schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := createTestRegistry()
			tt.mutate(reg)
			err := reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUpdateAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "registry.json")
	reg := createTestRegistry()

	require.NoError(t, reg.Update("score-mission", "status", "verified"))
	require.NoError(t, reg.Update("score-mission", "retries", "2"))
	assert.Error(t, reg.Update("score-mission", "status", "shipped"))
	assert.Error(t, reg.Update("missing", "status", "verified"))
	assert.Error(t, reg.Update("score-mission", "owner", "x"))

	require.NoError(t, Save(reg, path))
	loaded, err := LoadRegistry(path)
	require.NoError(t, err)

	a, ok := loaded.Find("score-mission")
	require.True(t, ok)
	assert.Equal(t, "verified", a.ImplementationStatus)
	assert.Equal(t, 2, a.Retries)
	assert.NotEmpty(t, loaded.LastUpdated)

	_, ok = loaded.Find("nope")
	assert.False(t, ok)
}

func TestAdd(t *testing.T) {
	reg := createTestRegistry()

	require.NoError(t, reg.Add(Activity{ID: "rank-drafts", DisplayName: "Rank Drafts", Category: "analysis", TaskType: "rank-drafts"}))
	a, ok := reg.Find("rank-drafts")
	require.True(t, ok)
	assert.Equal(t, "planned", a.ImplementationStatus)

	assert.Error(t, reg.Add(Activity{ID: "rank-drafts", TaskType: "other"}))
	assert.Error(t, reg.Add(Activity{ID: "other", TaskType: "score-mission"}))
	assert.Error(t, reg.Add(Activity{ID: "x", TaskType: "x", ImplementationStatus: "shipped"}))
}
