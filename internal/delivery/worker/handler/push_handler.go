package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"finsync/config"
	deliverycontext "finsync/internal/delivery/context"
	"finsync/internal/domain/constants"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/service"
	"finsync/internal/infra/metrics"
	"finsync/internal/infra/pubsub"
	"finsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// ErrRetryable marks failures the transport should redeliver.
var ErrRetryable = errors.New("retryable")

// ErrMalformedEvent marks payloads that can never be delivered.
var ErrMalformedEvent = errors.New("malformed verification event")

// tokenValidator checks a Google-signed OIDC token for the given audience.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler turns verification events into mail, whether they arrive as
// Pub/Sub push requests or as NATS messages.
type PushHandler struct {
	verifyPushAuth bool
	validateToken  tokenValidator
	logger         *slog.Logger
	mailUC         usecase.MailUsecase
	metrics        *metrics.Metrics
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	MailUC  usecase.MailUsecase
	Metrics *metrics.Metrics
}

// NewPushHandler creates a new verification event handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only real Google push subscriptions carry an OIDC token.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		validateToken:  idtoken.Validate,
		logger:         params.Logger,
		mailUC:         params.MailUC,
		metrics:        params.Metrics,
	}
}

// HandlePush handles a Pub/Sub push request. Retryable failures answer 503 so
// Pub/Sub redelivers; everything else is acknowledged with 200 to stop retries.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.WarnContext(ctx, "[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.ErrorContext(ctx, "[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.ErrorContext(ctx, "[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	err = h.HandleMessage(ctx, data, pushMsg.Message.Attributes)
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, ErrMalformedEvent):
		return c.NoContent(http.StatusBadRequest)
	case errors.Is(err, ErrRetryable):
		return c.NoContent(http.StatusServiceUnavailable)
	default:
		return c.NoContent(http.StatusOK)
	}
}

// HandleMessage decodes one event and delivers its mail. The returned error
// wraps ErrMalformedEvent or ErrRetryable when the caller should treat it so.
func (h *PushHandler) HandleMessage(ctx context.Context, data []byte, attributes map[string]string) error {
	var event service.VerificationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.ErrorContext(ctx, "[Worker] Failed to parse verification event", slog.Any("error", err))

		return errors.Wrap(ErrMalformedEvent, err.Error())
	}

	requestID := extractRequestID(ctx, attributes, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.InfoContext(ctx, "[Worker] Processing verification event",
		slog.String("event_id", event.EventID),
		slog.String("account_id", event.AccountID),
	)

	err := h.mailUC.DeliverVerification(ctx, &event)
	h.metrics.MailDelivery(err)
	if err == nil {
		reqLogger.InfoContext(ctx, "[Worker] Verification mail sent", slog.String("event_id", event.EventID))

		return nil
	}

	retryable := errors.Is(err, service.ErrMailUnavailable)
	reqLogger.ErrorContext(ctx, "[Worker] Failed to deliver verification mail",
		slog.String("event_id", event.EventID),
		slog.Any("error", err),
		slog.Bool("retryable", retryable),
	)

	switch {
	case retryable:
		return errors.Wrap(ErrRetryable, err.Error())
	case domainerrors.KindOf(err) == domainerrors.KindValidation:
		return errors.Wrap(ErrMalformedEvent, err.Error())
	default:
		return errors.WithStack(err)
	}
}

// extractRequestID prefers message attributes, then the event, then the
// inbound request, and finally generates one.
func extractRequestID(ctx context.Context, attributes map[string]string, event *service.VerificationEvent) string {
	if requestID := attributes[pubsub.AttrRequestID]; requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

// verifyPubSubToken validates the OIDC token Google attaches to push requests.
// The audience is the URL of this endpoint.
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	const bearerPrefix = "Bearer "
	if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return errors.New("missing or malformed authorization header")
	}
	token := authHeader[len(bearerPrefix):]

	scheme := "https"
	if req.TLS == nil && req.Header.Get(echo.HeaderXForwardedProto) != "https" {
		scheme = "http"
	}
	audience := scheme + "://" + req.Host + req.URL.Path

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
