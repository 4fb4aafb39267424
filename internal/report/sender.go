// internal/report/sender.go
package report

import (
	"context"
	"time"

	"mission-analyzer/internal/common/aws"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/models"

	"github.com/google/uuid"
)

// EmailSender is satisfied by aws.SESClient.
type EmailSender interface {
	Send(ctx context.Context, e aws.Email) (string, error)
}

// Sender renders reports and hands them to SES. A Sender without an
// EmailSender records deliveries as disabled.
type Sender struct {
	email  EmailSender
	from   string
	logger logger.Logger
}

func NewSender(email EmailSender, from string, log logger.Logger) *Sender {
	return &Sender{
		email:  email,
		from:   from,
		logger: log.WithFields(map[string]interface{}{"component": "report"}),
	}
}

// Enabled reports whether reports are actually delivered.
func (s *Sender) Enabled() bool {
	return s != nil && s.email != nil && s.from != ""
}

// SendReport renders d and mails it to recipient. The returned notification
// has status "sent" or "disabled"; failures are returned as errors.
func (s *Sender) SendReport(ctx context.Context, recipient string, d Data) (*models.Notification, error) {
	rendered, err := Render(d)
	if err != nil {
		return nil, errors.NewReportRenderFailedError(err)
	}

	n := &models.Notification{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Type:      models.NotificationTypeReport,
		Channel:   models.ChannelEmail,
		Subject:   rendered.Subject,
		SentAt:    time.Now().UTC(),
	}

	if !s.Enabled() {
		s.logger.Info("email delivery disabled, report not sent", map[string]interface{}{
			"notificationId": n.ID,
		})
		n.Status = models.StatusDisabled
		return n, nil
	}

	messageID, err := s.email.Send(ctx, aws.Email{
		From:    s.from,
		To:      recipient,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
	if err != nil {
		s.logger.Error("failed to send report", map[string]interface{}{
			"notificationId": n.ID,
			"error":          err,
		})
		return nil, errors.NewEmailSendFailedError(err)
	}

	n.Status = models.StatusSent
	n.MessageID = messageID
	s.logger.Info("report sent", map[string]interface{}{
		"notificationId": n.ID,
		"messageId":      messageID,
		"overallScore":   d.Scores.Overall,
	})
	return n, nil
}
