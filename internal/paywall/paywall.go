// Package paywall decides whether a caller may run another analysis and
// applies purchases that unlock unlimited analyses.
package paywall

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"mission-analyzer/internal/common/config"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/common/metrics"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/store"
)

const (
	MessageAccessGranted = "Unlimited access granted"
	MessageNoAction      = "Webhook processed (no action needed)"
	MessageNoEmail       = "No purchaser email found"
)

type AccessStore interface {
	Grant(ctx context.Context, g models.AccessGrant) error
	Get(ctx context.Context, email string) (*models.AccessGrant, error)
}

type UsageCounter interface {
	Count(ctx context.Context, clientID string) (int, error)
	Increment(ctx context.Context, clientID string) (int, error)
	Decrement(ctx context.Context, clientID string) (int, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, g models.AccessGrant) (*models.PurchaseEvent, string, error)
}

type Service struct {
	cfg       config.PaywallConfig
	access    AccessStore
	usage     UsageCounter
	publisher EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

// NewService wires the paywall. publisher may be nil.
func NewService(cfg config.PaywallConfig, access AccessStore, usage UsageCounter, publisher EventPublisher, log logger.Logger) *Service {
	return &Service{
		cfg:       cfg,
		access:    access,
		usage:     usage,
		publisher: publisher,
		logger:    log.WithFields(map[string]interface{}{"component": "paywall"}),
		now:       time.Now,
	}
}

// Status returns the unlimited-access record for email, if any.
func (s *Service) Status(ctx context.Context, email string) (*models.AccessStatus, error) {
	status := &models.AccessStatus{}
	grant, err := s.access.Get(ctx, strings.ToLower(strings.TrimSpace(email)))
	if stderrors.Is(err, store.ErrNotFound) {
		return status, nil
	}
	if err != nil {
		return nil, err
	}
	status.HasUnlimitedAccess = grant.Active
	status.PurchaseDate = grant.PurchaseDate
	status.OrderID = grant.OrderID
	return status, nil
}

// Check allows unlimited-access holders outright. Other callers are allowed
// while their free-analysis count is below the limit (higher when an email
// was captured). When consume is set the increment itself is the gate, so
// concurrent checks for one client cannot all pass; a rejected increment is
// given back. A caller over the limit gets ANALYSIS_LIMIT_REACHED.
func (s *Service) Check(ctx context.Context, email, clientID string, consume bool) (*models.AccessStatus, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		status, err := s.Status(ctx, email)
		if err != nil {
			return nil, err
		}
		if status.HasUnlimitedAccess {
			status.Allowed = true
			return status, nil
		}
	}

	key := clientID
	if key == "" {
		key = email
	}
	if key == "" {
		return nil, errors.NewInvalidArgumentError("clientId or email is required")
	}

	limit := s.cfg.Limit(email != "")
	if !consume {
		used, err := s.usage.Count(ctx, key)
		if err != nil {
			return nil, err
		}
		if used >= limit {
			return nil, errors.NewAnalysisLimitReachedError(used, limit)
		}
		return &models.AccessStatus{AnalysesUsed: used, AnalysesLimit: limit, Allowed: true}, nil
	}

	used, err := s.usage.Increment(ctx, key)
	if err != nil {
		return nil, err
	}
	if used > limit {
		if _, err := s.usage.Decrement(ctx, key); err != nil {
			s.logger.Warn("failed to release rejected analysis", map[string]interface{}{
				"clientId": key,
				"error":    err,
			})
		}
		return nil, errors.NewAnalysisLimitReachedError(used-1, limit)
	}
	return &models.AccessStatus{AnalysesUsed: used, AnalysesLimit: limit, Allowed: true}, nil
}

// PurchaseResult is the outcome of a checkout webhook.
type PurchaseResult struct {
	Granted   bool                  `json:"granted"`
	Email     string                `json:"email,omitempty"`
	Message   string                `json:"message"`
	Event     *models.PurchaseEvent `json:"event,omitempty"`
	MessageID string                `json:"messageId,omitempty"`
}

// ApplyPurchase grants unlimited access for a sale of the configured product.
// Other products are acknowledged without action. Event publishing is best
// effort.
func (s *Service) ApplyPurchase(ctx context.Context, w models.PurchaseWebhook) (*PurchaseResult, error) {
	if w.ProductPermalink != s.cfg.ProductPermalink || w.SaleID == "" {
		metrics.AccessGrants.WithLabelValues("ignored").Inc()
		return &PurchaseResult{Message: MessageNoAction}, nil
	}

	email := strings.ToLower(strings.TrimSpace(w.PurchaserEmail))
	if email == "" {
		metrics.AccessGrants.WithLabelValues("invalid").Inc()
		return nil, errors.NewWebhookInvalidError(MessageNoEmail)
	}

	purchaseDate := w.CreatedAt
	if purchaseDate == "" {
		purchaseDate = s.now().UTC().Format(time.RFC3339)
	}
	grant := models.AccessGrant{
		Email:        email,
		OrderID:      w.SaleID,
		ProductID:    w.ProductID,
		PurchaseDate: purchaseDate,
		Active:       true,
	}
	if err := s.access.Grant(ctx, grant); err != nil {
		metrics.AccessGrants.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.AccessGrants.WithLabelValues("granted").Inc()
	s.logger.Info("unlimited access granted", map[string]interface{}{"orderId": grant.OrderID})

	result := &PurchaseResult{Granted: true, Email: email, Message: MessageAccessGranted}
	if s.publisher != nil {
		event, id, err := s.publisher.Publish(ctx, grant)
		if err != nil {
			s.logger.Warn("failed to publish purchase event", map[string]interface{}{
				"orderId": grant.OrderID,
				"error":   err,
			})
		} else {
			result.Event = event
			result.MessageID = id
		}
	}
	return result, nil
}
