// internal/workers/access/grant-unlimited-access/models.go
package grantunlimitedaccess

import (
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/paywall"
)

// Input is the checkout webhook payload, passed through as process variables.
type Input = models.PurchaseWebhook

type Output struct {
	paywall.PurchaseResult
}
