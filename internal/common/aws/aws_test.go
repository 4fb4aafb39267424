package aws

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params)
}

type mockSNS struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput) (*sns.PublishOutput, error)
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params)
}

func TestSESClient_Send(t *testing.T) {
	var captured *ses.SendEmailInput
	client := NewSESClientWithAPI(&mockSES{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: awssdk.String("msg-1")}, nil
		},
	})

	id, err := client.Send(context.Background(), Email{
		From:    "reports@example.com",
		To:      "jane@example.com",
		Subject: "Your report",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})

	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "reports@example.com", awssdk.ToString(captured.Source))
	assert.Equal(t, []string{"jane@example.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, "Your report", awssdk.ToString(captured.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", awssdk.ToString(captured.Message.Body.Html.Data))
	assert.Equal(t, "hi", awssdk.ToString(captured.Message.Body.Text.Data))
}

func TestSESClient_Send_Error(t *testing.T) {
	client := NewSESClientWithAPI(&mockSES{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
			return nil, stderrors.New("throttled")
		},
	})

	_, err := client.Send(context.Background(), Email{To: "a@b.c"})
	assert.EqualError(t, err, "throttled")
}

func TestSNSClient_PublishJSON(t *testing.T) {
	var captured *sns.PublishInput
	client := NewSNSClientWithAPI(&mockSNS{
		PublishFunc: func(_ context.Context, params *sns.PublishInput) (*sns.PublishOutput, error) {
			captured = params
			return &sns.PublishOutput{MessageId: awssdk.String("sns-1")}, nil
		},
	})

	id, err := client.PublishJSON(context.Background(), "arn:aws:sns:us-east-1:1:purchases", "purchase",
		map[string]string{"email": "jane@example.com"}, map[string]string{"eventType": "access.granted"})

	require.NoError(t, err)
	assert.Equal(t, "sns-1", id)
	assert.Equal(t, "arn:aws:sns:us-east-1:1:purchases", awssdk.ToString(captured.TopicArn))
	assert.Equal(t, "purchase", awssdk.ToString(captured.Subject))

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(awssdk.ToString(captured.Message)), &body))
	assert.Equal(t, "jane@example.com", body["email"])
	assert.Equal(t, "access.granted", awssdk.ToString(captured.MessageAttributes["eventType"].StringValue))
}
