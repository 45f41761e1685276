// Package pubsub hands verification events to the mail worker over the configured transport.
package pubsub

import (
	"context"
	"log/slog"

	"finsync/config"
	"finsync/internal/domain/constants"
	"finsync/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	// AttrEventID carries the event id on every transport.
	AttrEventID = "event_id"
	// AttrAccountID carries the account the event is about.
	AttrAccountID = "account_id"
	// AttrRequestID carries the originating HTTP request id, if any.
	AttrRequestID = "request_id"
)

// eventAttributes never includes the token; attributes are visible to brokers and dashboards.
func eventAttributes(event *service.VerificationEvent) map[string]string {
	attributes := map[string]string{
		AttrEventID:   event.EventID,
		AttrAccountID: event.AccountID,
	}
	if event.RequestID != "" {
		attributes[AttrRequestID] = event.RequestID
	}

	return attributes
}

// noopPublisher is used when no transport is configured. Verification mail is then never sent.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishVerificationRequested(ctx context.Context, event *service.VerificationEvent) error {
	p.logger.WarnContext(ctx, "[NoopPubSub] Event publishing disabled, verification mail not sent",
		slog.String(AttrEventID, event.EventID),
		slog.String(AttrAccountID, event.AccountID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	publisher, err := newPublisher(params.Ctx, params.Config.PubSub, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

func newPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for Pub/Sub", slog.String("endpoint", cfg.LocalEndpoint))

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	case constants.PubSubProviderNATS:
		if cfg.NATSURL == "" {
			return nil, errors.New("NATS URL is required for nats provider")
		}
		if cfg.NATSSubject == "" {
			return nil, errors.New("NATS subject is required for nats provider")
		}
		logger.Info("Using NATS publisher",
			slog.String("url", cfg.NATSURL),
			slog.String("subject", cfg.NATSSubject),
		)

		return NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
