// internal/models/notification.go
package models

import "time"

// Notification records one delivery of the analysis report.
type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Type      string    `json:"type"`    // "analysis_report"
	Channel   string    `json:"channel"` // "email"
	Status    string    `json:"status"`  // "sent", "failed", "disabled"
	MessageID string    `json:"messageId,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	SentAt    time.Time `json:"sentAt"`
}

const (
	NotificationTypeReport = "analysis_report"
	ChannelEmail           = "email"

	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
