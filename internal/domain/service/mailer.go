package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrMailUnavailable marks delivery failures worth retrying: the transport
// could not be reached or answered with a temporary error.
var ErrMailUnavailable = errors.New("mail transport unavailable")

// MailMessage is a rendered plain-text mail.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers rendered mail.
type Mailer interface {
	Send(ctx context.Context, msg *MailMessage) error
}

// MailTemplates renders the mails the service sends.
type MailTemplates interface {
	// VerificationMail renders the "verify your email" message for event.
	VerificationMail(event *VerificationEvent) (*MailMessage, error)
}
