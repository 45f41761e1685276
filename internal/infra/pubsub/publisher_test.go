package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finsync/config"
	"finsync/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.VerificationEvent {
	return &service.VerificationEvent{
		RequestID:  "req-1",
		EventID:    "evt-1",
		AccountID:  "acc-1",
		Email:      "alice@example.com",
		Name:       "Alice",
		Token:      "tok%2Bvalue",
		VerifyURL:  "http://localhost:3000/verify-email?token=tok%2Bvalue",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	require.NoError(t, publisher.PublishVerificationRequested(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, LocalSubscription, received.Subscription)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, "acc-1", received.Message.Attributes[AttrAccountID])
	assert.NotContains(t, received.Message.Attributes, "token")

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var event service.VerificationEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, *testEvent(), event)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	err := publisher.PublishVerificationRequested(context.Background(), testEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewPublisher_ProviderSelection(t *testing.T) {
	ctx := context.Background()
	logger := newDiscardLogger()

	noop, err := newPublisher(ctx, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, noop)
	assert.NoError(t, noop.PublishVerificationRequested(ctx, testEvent()))

	local, err := newPublisher(ctx, &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8081/push"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, local)

	tests := []struct {
		name string
		cfg  *config.PubSubConfig
	}{
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: "local"}},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: "google", TopicID: "t"}},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: "google", ProjectID: "p"}},
		{name: "nats without url", cfg: &config.PubSubConfig{Provider: "nats", NATSSubject: "s"}},
		{name: "nats without subject", cfg: &config.PubSubConfig{Provider: "nats", NATSURL: "nats://localhost:4222"}},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newPublisher(ctx, tt.cfg, logger)
			assert.Error(t, err)
		})
	}
}
