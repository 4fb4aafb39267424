// internal/workers/access/check-analysis-access/models.go
package checkanalysisaccess

import "mission-analyzer/internal/models"

type Input struct {
	Email    string `json:"email"`
	ClientID string `json:"clientId"`
	// Consume counts the analysis against the free allowance when allowed.
	Consume bool `json:"consume"`
}

type Output struct {
	models.AccessStatus
}
