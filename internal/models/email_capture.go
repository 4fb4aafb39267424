// internal/models/email_capture.go
package models

import "time"

// EmailCapture records a visitor who asked for the emailed report.
type EmailCapture struct {
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName,omitempty"`
	Company      string     `json:"company,omitempty"`
	MissionText  string     `json:"missionText,omitempty"`
	OverallScore *int       `json:"overallScore,omitempty"`
	Industry     string     `json:"industry,omitempty"`
	ReportSent   bool       `json:"reportSent"`
	ReportSentAt *time.Time `json:"reportSentAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
