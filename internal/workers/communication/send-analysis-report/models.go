// internal/workers/communication/send-analysis-report/models.go
package sendanalysisreport

import "mission-analyzer/internal/scoring"

type Input struct {
	Email           string                   `json:"email"`
	FirstName       string                   `json:"firstName"`
	Company         string                   `json:"company"`
	MissionText     string                   `json:"missionText"`
	Industry        string                   `json:"industry"`
	Scores          scoring.Scores           `json:"scores"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
	Alternatives    *scoring.Alternatives    `json:"alternatives"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	MessageID      string `json:"messageId,omitempty"`
	ReportSent     bool   `json:"reportSent"`
	SentAt         string `json:"sentAt"` // ISO 8601
}
