// internal/workers/analysis/save-analysis/models.go
package saveanalysis

import (
	"encoding/json"

	"mission-analyzer/internal/scoring"
)

type Input struct {
	UserID          *string         `json:"userId"`
	MissionText     string          `json:"missionText"`
	Industry        string          `json:"industry"`
	Scores          *scoring.Scores `json:"scores"`
	FullAnalysis    json.RawMessage `json:"fullAnalysis"`
	Recommendations json.RawMessage `json:"recommendations"`
	Alternatives    json.RawMessage `json:"alternatives"`
	IsAIAnalysis    bool            `json:"isAiAnalysis"`
}

type Output struct {
	AnalysisID string `json:"analysisId"`
	CreatedAt  string `json:"createdAt"` // ISO 8601
	Indexed    bool   `json:"indexed"`
}
