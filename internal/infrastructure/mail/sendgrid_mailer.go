package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"crm-admin.backend/internal/config"
	"crm-admin.backend/internal/domain/entities"
	domainRepos "crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/logger"
)

type sendClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer delivers mail through the SendGrid v3 API
type SendGridMailer struct {
	client sendClient
	from   *sgmail.Email
}

// NewSendGridMailer creates a SendGrid backed mailer
func NewSendGridMailer(apiKey, fromName, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromEmail),
	}
}

// NewMailer picks SendGrid when a key is configured, otherwise a log-only mailer
func NewMailer(cfg config.MailConfig) domainRepos.Mailer {
	if cfg.SendGridAPIKey == "" {
		return LogMailer{}
	}
	return NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromName, cfg.FromEmail)
}

// Send dispatches one message
func (m *SendGridMailer) Send(ctx context.Context, msg *entities.MailMessage) error {
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
	message := sgmail.NewSingleEmail(m.from, msg.Subject, to, msg.PlainText, msg.HTML)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send mail: sendgrid status %d", resp.StatusCode)
	}

	logger.Debug(ctx, "Mail sent", zap.String("to", msg.ToEmail), zap.Int("status", resp.StatusCode))
	return nil
}

// LogMailer records the dispatch without sending. Bodies are not logged.
type LogMailer struct{}

// Send logs the recipient and subject
func (LogMailer) Send(ctx context.Context, msg *entities.MailMessage) error {
	logger.Info(ctx, "Mail delivery disabled, message dropped",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}
