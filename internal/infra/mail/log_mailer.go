package mail

import (
	"context"
	"log/slog"

	"finsync/internal/domain/service"
)

// logMailer writes mail to the log instead of sending it. Development only:
// the body contains a live verification link.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a Mailer that logs every message.
func NewLogMailer(logger *slog.Logger) service.Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	m.logger.InfoContext(ctx, "[LogMailer] Mail not sent, logging instead",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)

	return nil
}
