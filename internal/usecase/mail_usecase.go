package usecase

import (
	"context"

	"finsync/internal/domain/service"
)

// MailUsecase turns notifier events into delivered mail.
type MailUsecase interface {
	// DeliverVerification renders and sends the verification mail for event.
	// Errors wrapping service.ErrMailUnavailable are worth retrying.
	DeliverVerification(ctx context.Context, event *service.VerificationEvent) error
}
