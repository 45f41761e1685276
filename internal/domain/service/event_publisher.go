package service

import (
	"context"
	"time"
)

// VerificationEvent asks the notification side to email a verification link.
type VerificationEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventID    string    `json:"event_id"`
	AccountID  string    `json:"account_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Token      string    `json:"token"` // URL-encoded
	VerifyURL  string    `json:"verify_url"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher hands verification events to the configured transport.
type EventPublisher interface {
	// PublishVerificationRequested publishes a verification event for async delivery
	PublishVerificationRequested(ctx context.Context, event *VerificationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
