package services

import (
	"context"
	"fmt"
	"net/smtp"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// SMTPConfig holds the SMTP transport configuration.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPMailer implements Mailer over net/smtp with a multipart/alternative
// MIME body carrying both the HTML part and a plain-text fallback.
type SMTPMailer struct {
	config SMTPConfig
	auth   smtp.Auth
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		auth:   smtp.PlainAuth("", config.Username, config.Password, config.Host),
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	text := msg.Text
	if text == "" {
		text = htmlTagPattern.ReplaceAllString(msg.HTML, "")
	}

	messageID := uuid.NewString()
	boundary := strings.ReplaceAll(uuid.NewString(), "-", "")
	body := m.buildMIMEMessage(msg.To, msg.Subject, messageID, text, msg.HTML, boundary)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	if err := smtp.SendMail(addr, m.auth, m.config.FromEmail, []string{msg.To}, body); err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	return messageID, nil
}

// Verify checks that the SMTP server is reachable and accepts our
// credentials.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.Auth(m.auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	return nil
}

func (m *SMTPMailer) buildMIMEMessage(to, subject, messageID, textBody, htmlBody, boundary string) []byte {
	message := fmt.Sprintf(`From: %s <%s>
To: %s
Subject: %s
Message-ID: <%s@projecthub>
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="%s"

--%s
Content-Type: text/plain; charset=UTF-8
Content-Transfer-Encoding: 7bit

%s

--%s
Content-Type: text/html; charset=UTF-8
Content-Transfer-Encoding: 7bit

%s

--%s--
`, m.config.FromName, m.config.FromEmail, to, subject, messageID, boundary, boundary, textBody, boundary, htmlBody, boundary)

	return []byte(message)
}
