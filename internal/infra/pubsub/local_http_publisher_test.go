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

	"teeshop/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalHTTPPublisher_PublishEvent(t *testing.T) {
	var (
		received  PubSubPushMessage
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))

	event := &service.DomainEvent{
		RequestID:  "req-1",
		Type:       service.EventCouponRedeemed,
		SubjectID:  3,
		UserID:     42,
		Attributes: map[string]string{"order_id": "7"},
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, publisher.PublishEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, service.EventCouponRedeemed, received.Message.Attributes["type"])
	assert.Equal(t, "3", received.Message.Attributes["subject_id"])
	assert.Equal(t, "42", received.Message.Attributes["user_id"])
	assert.NotEmpty(t, received.Message.MessageID)

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.DomainEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "7", decoded.Attributes["order_id"])
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := publisher.PublishEvent(context.Background(), &service.DomainEvent{Type: service.EventDesignDecided, SubjectID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
