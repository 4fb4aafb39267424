// internal/models/access.go
package models

import "time"

// AccessGrant is the unlimited-analysis entitlement bought through the
// checkout webhook, keyed by lower-cased purchaser email.
type AccessGrant struct {
	Email        string `json:"email"`
	OrderID      string `json:"orderId"`
	ProductID    string `json:"productId,omitempty"`
	PurchaseDate string `json:"purchaseDate"`
	Active       bool   `json:"active"`
}

// PurchaseWebhook is the subset of the checkout provider's sale payload we read.
type PurchaseWebhook struct {
	ProductPermalink string `json:"product_permalink"`
	ProductID        string `json:"product_id"`
	SaleID           string `json:"sale_id"`
	PurchaserEmail   string `json:"purchaser_email"`
	CreatedAt        string `json:"created_at"`
}

// AccessStatus answers "may this caller run another analysis".
type AccessStatus struct {
	HasUnlimitedAccess bool   `json:"hasUnlimitedAccess"`
	PurchaseDate       string `json:"purchaseDate,omitempty"`
	OrderID            string `json:"orderId,omitempty"`
	AnalysesUsed       int    `json:"analysesUsed"`
	AnalysesLimit      int    `json:"analysesLimit"`
	Allowed            bool   `json:"allowed"`
}

// PurchaseEvent is published when access is granted.
type PurchaseEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Email     string    `json:"email"`
	OrderID   string    `json:"orderId"`
	ProductID string    `json:"productId,omitempty"`
	GrantedAt time.Time `json:"grantedAt"`
}

const EventAccessGranted = "access.granted"
