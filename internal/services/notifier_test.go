package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyrix-co/projecthub/internal/models"
	"github.com/nyrix-co/projecthub/internal/team"
)

var testRecipient = team.Member{ID: "sarim", Name: "Sarim", Email: "sarim@nyrix.co", Initials: "S"}

func TestSendAssignmentNotice(t *testing.T) {
	mailer := NewMockMailer()
	notifier := NewNotifier(mailer, 5*time.Second)

	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	ok := notifier.SendAssignmentNotice(context.Background(), testRecipient, "Ship the release", "Website Revamp", &deadline, models.PriorityUrgent, "Huzaifa")

	require.True(t, ok)
	require.Len(t, mailer.SentMessages, 1)

	msg := mailer.LastMessage()
	assert.Equal(t, "sarim@nyrix.co", msg.To)
	assert.Equal(t, "New Task Assigned: Ship the release", msg.Subject)
	assert.Contains(t, msg.HTML, "Hello Sarim")
	assert.Contains(t, msg.HTML, "Website Revamp")
	assert.Contains(t, msg.HTML, "Sep 15, 2026")
	assert.Contains(t, msg.HTML, "urgent")
	assert.Contains(t, msg.HTML, "#DC2626")
	assert.Contains(t, msg.HTML, "Huzaifa")
}

func TestSendAssignmentNoticeWithoutDeadline(t *testing.T) {
	mailer := NewMockMailer()
	notifier := NewNotifier(mailer, 5*time.Second)

	ok := notifier.SendAssignmentNotice(context.Background(), testRecipient, "Draft copy", "Website Revamp", nil, models.PriorityLow, "Huzaifa")

	require.True(t, ok)
	assert.Contains(t, mailer.LastMessage().HTML, "No deadline set")
}

func TestSendCommentNotice(t *testing.T) {
	mailer := NewMockMailer()
	notifier := NewNotifier(mailer, 5*time.Second)

	ok := notifier.SendCommentNotice(context.Background(), testRecipient, "Ship the release", "Website Revamp", "Talha", "looks good to me")

	require.True(t, ok)
	msg := mailer.LastMessage()
	assert.Equal(t, "New Comment on Task: Ship the release", msg.Subject)
	assert.Contains(t, msg.HTML, "Talha")
	assert.Contains(t, msg.HTML, "looks good to me")
}

func TestSendMentionNotice(t *testing.T) {
	mailer := NewMockMailer()
	notifier := NewNotifier(mailer, 5*time.Second)

	ok := notifier.SendMentionNotice(context.Background(), testRecipient, "Ship the release", "Website Revamp", "Talha", "@sarim can you check")

	require.True(t, ok)
	msg := mailer.LastMessage()
	assert.Equal(t, "You were tagged in a comment: Ship the release", msg.Subject)
	assert.Contains(t, msg.HTML, "You were tagged in a comment!")
}

func TestSendFailureIsSwallowed(t *testing.T) {
	mailer := NewMockMailer()
	mailer.Err = errors.New("transport down")
	notifier := NewNotifier(mailer, 5*time.Second)

	ok := notifier.SendCommentNotice(context.Background(), testRecipient, "t", "p", "a", "c")

	assert.False(t, ok)
	assert.Empty(t, mailer.SentMessages)
}

func TestExactlyOneSendPerCall(t *testing.T) {
	mailer := NewMockMailer()
	notifier := NewNotifier(mailer, 5*time.Second)

	notifier.SendCommentNotice(context.Background(), testRecipient, "t", "p", "a", "c")
	notifier.SendMentionNotice(context.Background(), testRecipient, "t", "p", "a", "c")

	assert.Len(t, mailer.SentMessages, 2)
}
