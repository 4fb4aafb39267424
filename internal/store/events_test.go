package store

import (
	"context"
	"testing"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	PublishJSONFunc func(ctx context.Context, topicARN, subject string, payload interface{}, attributes map[string]string) (string, error)
}

func (m *mockPublisher) PublishJSON(ctx context.Context, topicARN, subject string, payload interface{}, attributes map[string]string) (string, error) {
	return m.PublishJSONFunc(ctx, topicARN, subject, payload, attributes)
}

func TestPurchasePublisher_Publish(t *testing.T) {
	var gotTopic string
	var gotAttrs map[string]string
	pub := NewPurchasePublisher(&mockPublisher{
		PublishJSONFunc: func(_ context.Context, topicARN, _ string, _ interface{}, attributes map[string]string) (string, error) {
			gotTopic, gotAttrs = topicARN, attributes
			return "msg-1", nil
		},
	}, "arn:topic")

	event, id, err := pub.Publish(context.Background(), models.AccessGrant{Email: "jane@example.com", OrderID: "sale-1"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "arn:topic", gotTopic)
	assert.Equal(t, models.EventAccessGranted, gotAttrs["eventType"])
	assert.Equal(t, "jane@example.com", event.Email)
	assert.NotEmpty(t, event.EventID)
}

func TestPurchasePublisher_Error(t *testing.T) {
	pub := NewPurchasePublisher(&mockPublisher{
		PublishJSONFunc: func(context.Context, string, string, interface{}, map[string]string) (string, error) {
			return "", assert.AnError
		},
	}, "arn:topic")

	_, _, err := pub.Publish(context.Background(), models.AccessGrant{Email: "jane@example.com"})
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeEventPublishFailed, stdErr.Code)
}
