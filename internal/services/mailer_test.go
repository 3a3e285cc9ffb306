package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMailerSend(t *testing.T) {
	var received Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message_id": "msg-123"})
	}))
	defer server.Close()

	mailer := NewHTTPMailer(server.URL, 5*time.Second)
	id, err := mailer.Send(context.Background(), Message{
		To:      "sarim@nyrix.co",
		Subject: "hello",
		HTML:    "<p>hi</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "msg-123", id)
	assert.Equal(t, "sarim@nyrix.co", received.To)
	assert.Equal(t, "hello", received.Subject)
}

func TestHTTPMailerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "smtp unreachable"})
	}))
	defer server.Close()

	mailer := NewHTTPMailer(server.URL, 5*time.Second)
	_, err := mailer.Send(context.Background(), Message{To: "a@b.co", Subject: "x", HTML: "y"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "smtp unreachable")
}

func TestHTTPMailerConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	mailer := NewHTTPMailer(server.URL, time.Second)
	_, err := mailer.Send(context.Background(), Message{To: "a@b.co", Subject: "x", HTML: "y"})
	require.Error(t, err)
}
