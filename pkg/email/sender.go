package email

import (
	"context"
	"fmt"

	"github.com/subtrackhq/subtrack/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// Sender delivers a single email. The queue consumer only depends on this
// interface so tests can swap in a recorder.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridSender(cfg *config.EmailConfig) Sender {
	return &sendGridSender{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

func (s *sendGridSender) Send(ctx context.Context, to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "<p>"+body+"</p>")

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	logrus.WithFields(logrus.Fields{
		"to":     to,
		"status": response.StatusCode,
	}).Debug("Email sent")
	return nil
}

// NopSender is used when email delivery is disabled in config.
type NopSender struct{}

func (NopSender) Send(ctx context.Context, to, subject, body string) error {
	logrus.WithField("to", to).Debug("Email delivery disabled, dropping message")
	return nil
}
