// internal/workers/workshop/generate-mission/models.go
package generatemission

import "mission-analyzer/internal/scoring"

type Input struct {
	Answers  scoring.WorkshopAnswers `json:"answers"`
	Industry string                  `json:"industry"`
}

type Output struct {
	MissionText string          `json:"missionText"`
	Report      *scoring.Report `json:"report"`
}
