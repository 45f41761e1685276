package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"finsync/config"
	"finsync/internal/delivery"
	"finsync/internal/delivery/worker/handler"
	"finsync/internal/domain/constants"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// messageTimeout bounds the handling of a single NATS message.
const messageTimeout = 30 * time.Second

// natsSubscriber consumes verification events from a NATS queue group.
type natsSubscriber struct {
	cfg     *config.PubSubConfig
	logger  *slog.Logger
	handler *handler.PushHandler

	mu       sync.Mutex
	conn     *nats.Conn
	done     chan struct{}
	stopOnce sync.Once
}

// NATSSubscriberParams holds dependencies for the NATS subscriber
type NATSSubscriberParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	PushHandler *handler.PushHandler
}

// NewNATSSubscriber creates the NATS delivery. It idles when the nats provider is not selected.
func NewNATSSubscriber(params NATSSubscriberParams) delivery.Delivery {
	sub := &natsSubscriber{
		cfg:     params.Cfg.PubSub,
		logger:  params.Logger,
		handler: params.PushHandler,
		done:    make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: sub.stop,
	})

	return sub
}

// Serve subscribes and blocks until the subscriber is stopped.
func (s *natsSubscriber) Serve(ctx context.Context) error {
	if s.cfg == nil || s.cfg.Provider != constants.PubSubProviderNATS {
		s.logger.Info("NATS provider not selected, subscriber idle")

		return nil
	}

	conn, err := nats.Connect(s.cfg.NATSURL,
		nats.Name("finsync-mailworker"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				s.logger.Warn("NATS disconnected", slog.Any("error", err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			s.logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return errors.Wrap(err, "connect to NATS")
	}

	if _, err := conn.QueueSubscribe(s.cfg.NATSSubject, s.cfg.NATSQueue, s.onMessage(ctx)); err != nil {
		conn.Close()

		return errors.Wrap(err, "subscribe to verification events")
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	s.logger.Info("Consuming verification events from NATS",
		slog.String("subject", s.cfg.NATSSubject),
		slog.String("queue", s.cfg.NATSQueue),
	)

	<-s.done

	return nil
}

func (s *natsSubscriber) onMessage(ctx context.Context) nats.MsgHandler {
	return func(msg *nats.Msg) {
		msgCtx, cancel := context.WithTimeout(ctx, messageTimeout)
		defer cancel()

		attributes := make(map[string]string, len(msg.Header))
		for key := range msg.Header {
			attributes[key] = msg.Header.Get(key)
		}

		// Core NATS has no redelivery, so a retryable failure is only logged.
		if err := s.handler.HandleMessage(msgCtx, msg.Data, attributes); err != nil {
			s.logger.Warn("[NATS] Verification event dropped",
				slog.String("subject", msg.Subject),
				slog.Bool("retryable", errors.Is(err, handler.ErrRetryable)),
			)
		}
	}
}

func (s *natsSubscriber) stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil
	}

	s.logger.Info("Draining NATS subscription")

	return errors.WithStack(conn.Drain())
}
