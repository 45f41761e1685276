package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"finsync/internal/domain/service"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// FlushWithContext refuses contexts without a deadline.
const natsFlushTimeout = 5 * time.Second

// natsPublisher publishes verification events as core NATS messages.
type natsPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSPublisher connects to url and publishes on subject.
func NewNATSPublisher(url, subject string, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("finsync-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", slog.Any("error", err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "connect to NATS")
	}

	return &natsPublisher{conn: conn, subject: subject, logger: logger}, nil
}

// PublishVerificationRequested publishes and flushes, so a dead connection surfaces as an error.
func (p *natsPublisher) PublishVerificationRequested(ctx context.Context, event *service.VerificationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	for key, value := range eventAttributes(event) {
		msg.Header.Set(key, value)
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		return errors.Wrap(err, "publish verification event")
	}
	flushCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		flushCtx, cancel = context.WithTimeout(ctx, natsFlushTimeout)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(flushCtx); err != nil {
		return errors.Wrap(err, "flush verification event")
	}

	p.logger.InfoContext(ctx, "[NATS] Event published",
		slog.String(AttrEventID, event.EventID),
		slog.String("subject", p.subject),
	)

	return nil
}

// Close drains pending messages before closing the connection.
func (p *natsPublisher) Close() error {
	if p.conn == nil {
		return nil
	}

	return errors.WithStack(p.conn.Drain())
}
