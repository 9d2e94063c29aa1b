package usecases

import (
	"context"
	"fmt"
	"html"

	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/logger"
)

// Notifier sends account mails. Delivery is best effort.
type Notifier struct {
	mailer       repositories.Mailer
	supportEmail string
}

// NewNotifier creates a new notifier. A nil mailer drops every message.
func NewNotifier(mailer repositories.Mailer, supportEmail string) *Notifier {
	return &Notifier{mailer: mailer, supportEmail: supportEmail}
}

// SendWelcome mails a new sales person the generated password
func (n *Notifier) SendWelcome(ctx context.Context, user *entities.User, password string) {
	body := fmt.Sprintf("Hello %s,\n\nYour account has been created.\nEmail: %s\nPassword: %s\n\nPlease sign in and keep this password private.%s",
		user.FullName, user.Email, password, n.supportLine())
	n.send(ctx, user, subjectSalesPersonWelcome, body)
}

// SendPasswordReset mails a user the newly generated password
func (n *Notifier) SendPasswordReset(ctx context.Context, user *entities.User, password string) {
	body := fmt.Sprintf("Hello %s,\n\nYour password has been reset.\nNew password: %s%s",
		user.FullName, password, n.supportLine())
	n.send(ctx, user, subjectPasswordReset, body)
}

func (n *Notifier) supportLine() string {
	if n.supportEmail == "" {
		return ""
	}
	return fmt.Sprintf("\n\nQuestions? Contact %s.", n.supportEmail)
}

func (n *Notifier) send(ctx context.Context, user *entities.User, subject, body string) {
	if n == nil || n.mailer == nil {
		return
	}
	msg := &entities.MailMessage{
		ToName:    user.FullName,
		ToEmail:   user.Email,
		Subject:   subject,
		PlainText: body,
		HTML:      "<pre>" + html.EscapeString(body) + "</pre>",
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		logger.Warn(ctx, "Failed to send mail",
			zap.Int64("user_id", user.ID),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
