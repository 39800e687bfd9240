package mail

import (
	"context"
	"log/slog"

	"inventory/internal/domain/service"
)

// logMailer records that a message would have been sent. The body is never
// logged since reset mails carry live tokens.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer for local development.
func NewLogMailer(logger *slog.Logger) service.Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	m.logger.InfoContext(ctx, "[LogMailer] Email suppressed",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}
