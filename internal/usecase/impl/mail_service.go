package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "finsync/internal/delivery/context"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/service"
	"finsync/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type mailService struct {
	templates service.MailTemplates
	mailer    service.Mailer
	logger    *slog.Logger
}

// MailServiceParams holds dependencies for MailService, injected by Fx.
type MailServiceParams struct {
	fx.In

	Templates service.MailTemplates
	Mailer    service.Mailer
	Logger    *slog.Logger
}

// NewMailService creates the usecase behind the mail worker.
func NewMailService(params MailServiceParams) usecase.MailUsecase {
	return &mailService{
		templates: params.Templates,
		mailer:    params.Mailer,
		logger:    params.Logger,
	}
}

func (srv *mailService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// DeliverVerification renders and sends the verification mail.
// Malformed events are rejected permanently so the transport does not redeliver them.
func (srv *mailService) DeliverVerification(ctx context.Context, event *service.VerificationEvent) error {
	if event == nil || strings.TrimSpace(event.Email) == "" || strings.TrimSpace(event.VerifyURL) == "" {
		return domainerrors.NewValidationError("verification event is missing email or verify url")
	}

	logger := srv.log(ctx).With(
		slog.String("event_id", event.EventID),
		slog.String("account_id", event.AccountID),
	)

	msg, err := srv.templates.VerificationMail(event)
	if err != nil {
		logger.Error("Failed to render verification mail", slog.Any("error", err))

		return errors.Wrap(err, "failed to render verification mail")
	}

	if err := srv.mailer.Send(ctx, msg); err != nil {
		logger.Warn("Failed to send verification mail",
			slog.Bool("retryable", errors.Is(err, service.ErrMailUnavailable)),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to send verification mail")
	}

	logger.Info("Verification mail sent")

	return nil
}
