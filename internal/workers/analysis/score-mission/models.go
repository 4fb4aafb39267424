// internal/workers/analysis/score-mission/models.go
package scoremission

import "mission-analyzer/internal/scoring"

type Input struct {
	// MissionText is decoded loosely so a non-string value is reported as
	// an invalid argument rather than a parse failure.
	MissionText interface{} `json:"missionText"`
	Industry    string      `json:"industry"`
	Profile     string      `json:"profile"`
	Aggregation string      `json:"aggregation"`
}

type Output struct {
	scoring.Result
	Cached bool `json:"cached"`
}
