package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyrix-co/projecthub/internal/services"
)

type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// EmailHandler serves the mail delivery endpoint: a single POST accepting
// {to, subject, html, text} and returning a message identifier. The SMTP
// details stay behind the Mailer.
type EmailHandler struct {
	mailer services.Mailer
}

func NewEmailHandler(mailer services.Mailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

// connectionVerifier is satisfied by transports that can probe their
// backend without sending, like the SMTP mailer.
type connectionVerifier interface {
	Verify(ctx context.Context) error
}

func (h *EmailHandler) Send(ctx *gin.Context) {
	var body SendEmailRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.To == "" || body.Subject == "" || (body.HTML == "" && body.Text == "") {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: to, subject, and either html or text",
		})
		return
	}

	messageID, err := h.mailer.Send(ctx.Request.Context(), services.Message{
		To:      body.To,
		Subject: body.Subject,
		HTML:    body.HTML,
		Text:    body.Text,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send email",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message_id": messageID,
		"message":    "Email sent successfully",
	})
}

// Verify checks the SMTP connection without sending anything.
func (h *EmailHandler) Verify(ctx *gin.Context) {
	verifier, ok := h.mailer.(connectionVerifier)
	if !ok {
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Transport does not support verification"})
		return
	}

	if err := verifier.Verify(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "SMTP verification failed",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "SMTP connection verified successfully",
	})
}
