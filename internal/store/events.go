// internal/store/events.go
package store

import (
	"context"
	"time"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/models"

	"github.com/google/uuid"
)

// JSONPublisher is satisfied by aws.SNSClient.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, topicARN, subject string, payload interface{}, attributes map[string]string) (string, error)
}

// PurchasePublisher announces granted access on an SNS topic.
type PurchasePublisher struct {
	publisher JSONPublisher
	topicARN  string
}

func NewPurchasePublisher(p JSONPublisher, topicARN string) *PurchasePublisher {
	return &PurchasePublisher{publisher: p, topicARN: topicARN}
}

// Publish returns the event and the provider message id.
func (p *PurchasePublisher) Publish(ctx context.Context, g models.AccessGrant) (*models.PurchaseEvent, string, error) {
	event := &models.PurchaseEvent{
		EventID:   uuid.NewString(),
		EventType: models.EventAccessGranted,
		Email:     g.Email,
		OrderID:   g.OrderID,
		ProductID: g.ProductID,
		GrantedAt: time.Now().UTC(),
	}

	id, err := p.publisher.PublishJSON(ctx, p.topicARN, "Unlimited access granted", event, map[string]string{
		"eventType": event.EventType,
	})
	if err != nil {
		return nil, "", errors.NewEventPublishFailedError(p.topicARN, err)
	}
	return event, id, nil
}
