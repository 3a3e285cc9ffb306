package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Message is the single call shape every mail transport accepts: a
// recipient, a subject, an HTML body and an optional plain-text fallback.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
}

// Mailer delivers one message per call and returns the transport's message
// identifier. No retries are performed at this layer.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type mailResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// HTTPMailer posts messages as JSON to a mail delivery endpoint.
type HTTPMailer struct {
	endpoint string
	client   *http.Client
}

func NewHTTPMailer(endpoint string, timeout time.Duration) *HTTPMailer {
	return &HTTPMailer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (m *HTTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send mail request: %w", err)
	}
	defer resp.Body.Close()

	var result mailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		result = mailResponse{}
	}

	if resp.StatusCode >= 400 {
		if result.Error != "" {
			return "", fmt.Errorf("mail endpoint returned status %d: %s", resp.StatusCode, result.Error)
		}
		return "", fmt.Errorf("mail endpoint returned status %d", resp.StatusCode)
	}

	return result.MessageID, nil
}

// MockMailer implements Mailer for testing.
type MockMailer struct {
	SentMessages []Message
	Err          error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{SentMessages: make([]Message, 0)}
}

func (m *MockMailer) Send(ctx context.Context, msg Message) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.SentMessages = append(m.SentMessages, msg)
	return fmt.Sprintf("mock-%d", len(m.SentMessages)), nil
}

// LastMessage returns the most recently sent message, or nil.
func (m *MockMailer) LastMessage() *Message {
	if len(m.SentMessages) == 0 {
		return nil
	}
	return &m.SentMessages[len(m.SentMessages)-1]
}
