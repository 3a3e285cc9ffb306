package services

import (
	"bytes"
	"context"
	"log"
	"text/template"
	"time"

	"github.com/nyrix-co/projecthub/internal/models"
	"github.com/nyrix-co/projecthub/internal/team"
)

// NoticeTemplate represents one outbound email template.
type NoticeTemplate struct {
	Subject  string
	HTMLBody string
}

// NoticeTemplates holds the templates for every notice kind.
type NoticeTemplates struct {
	Assignment       NoticeTemplate
	Comment          NoticeTemplate
	Mention          NoticeTemplate
	DeadlineReminder NoticeTemplate
}

type noticeData struct {
	RecipientName string
	TaskTitle     string
	ProjectName   string
	Deadline      string
	Priority      string
	PriorityColor string
	AssignedBy    string
	CommentAuthor string
	CommentText   string
}

// Notifier renders notice templates and hands them to a mail transport.
// Every send is best-effort: failures are logged and reported as false,
// never propagated, never retried.
type Notifier struct {
	mailer    Mailer
	timeout   time.Duration
	templates *NoticeTemplates
}

func NewNotifier(mailer Mailer, timeout time.Duration) *Notifier {
	return &Notifier{
		mailer:    mailer,
		timeout:   timeout,
		templates: NewNoticeTemplates(),
	}
}

// SendAssignmentNotice notifies a member that a task was assigned to them.
func (n *Notifier) SendAssignmentNotice(ctx context.Context, recipient team.Member, taskTitle, projectName string, deadline *time.Time, priority models.TaskPriority, assignedBy string) bool {
	data := &noticeData{
		RecipientName: recipient.Name,
		TaskTitle:     taskTitle,
		ProjectName:   projectName,
		Deadline:      formatDeadline(deadline),
		Priority:      string(priority),
		PriorityColor: priorityColor(priority),
		AssignedBy:    assignedBy,
	}

	return n.send(ctx, recipient.Email, n.templates.Assignment, data)
}

// SendCommentNotice notifies the task assignee about a new comment.
func (n *Notifier) SendCommentNotice(ctx context.Context, recipient team.Member, taskTitle, projectName, commentAuthor, commentText string) bool {
	data := &noticeData{
		RecipientName: recipient.Name,
		TaskTitle:     taskTitle,
		ProjectName:   projectName,
		CommentAuthor: commentAuthor,
		CommentText:   commentText,
	}

	return n.send(ctx, recipient.Email, n.templates.Comment, data)
}

// SendMentionNotice notifies a member that a comment tagged them.
func (n *Notifier) SendMentionNotice(ctx context.Context, recipient team.Member, taskTitle, projectName, mentioningAuthor, commentText string) bool {
	data := &noticeData{
		RecipientName: recipient.Name,
		TaskTitle:     taskTitle,
		ProjectName:   projectName,
		CommentAuthor: mentioningAuthor,
		CommentText:   commentText,
	}

	return n.send(ctx, recipient.Email, n.templates.Mention, data)
}

// SendDeadlineReminder notifies the assignee about an upcoming or overdue
// deadline.
func (n *Notifier) SendDeadlineReminder(ctx context.Context, recipient team.Member, taskTitle, projectName string, deadline time.Time, priority models.TaskPriority) bool {
	data := &noticeData{
		RecipientName: recipient.Name,
		TaskTitle:     taskTitle,
		ProjectName:   projectName,
		Deadline:      deadline.Format("Jan 02, 2006"),
		Priority:      string(priority),
		PriorityColor: priorityColor(priority),
	}

	return n.send(ctx, recipient.Email, n.templates.DeadlineReminder, data)
}

func (n *Notifier) send(ctx context.Context, to string, tmpl NoticeTemplate, data *noticeData) bool {
	subject, err := renderTemplate(tmpl.Subject, data)
	if err != nil {
		log.Printf("Failed to render notice subject: %v", err)
		return false
	}

	html, err := renderTemplate(tmpl.HTMLBody, data)
	if err != nil {
		log.Printf("Failed to render notice body: %v", err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	messageID, err := n.mailer.Send(ctx, Message{To: to, Subject: subject, HTML: html})
	if err != nil {
		log.Printf("Failed to send notice to %s: %v", to, err)
		return false
	}

	log.Printf("Notice sent to %s (message %s)", to, messageID)
	return true
}

func renderTemplate(templateStr string, data *noticeData) (string, error) {
	tmpl, err := template.New("notice").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatDeadline(deadline *time.Time) string {
	if deadline == nil {
		return "No deadline set"
	}
	return deadline.Format("Jan 02, 2006")
}

func priorityColor(priority models.TaskPriority) string {
	switch priority {
	case models.PriorityUrgent:
		return "#DC2626"
	case models.PriorityHigh:
		return "#EA580C"
	case models.PriorityMedium:
		return "#D97706"
	case models.PriorityLow:
		return "#059669"
	default:
		return "#6B7280"
	}
}

// NewNoticeTemplates creates the default notice templates.
func NewNoticeTemplates() *NoticeTemplates {
	return &NoticeTemplates{
		Assignment: NoticeTemplate{
			Subject: "New Task Assigned: {{.TaskTitle}}",
			HTMLBody: `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #3B82F6;">New Task Assignment</h2>
    <p>Hello {{.RecipientName}},</p>
    <p>You have been assigned a new task in the <strong>Nyrix Project Hub</strong>:</p>

    <div style="background: #F3F4F6; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="margin-top: 0;">{{.TaskTitle}}</h3>
        <p><strong>Project:</strong> {{.ProjectName}}</p>
        <p><strong>Priority:</strong> <span style="color: {{.PriorityColor}}">{{.Priority}}</span></p>
        <p><strong>Deadline:</strong> {{.Deadline}}</p>
        <p><strong>Assigned by:</strong> {{.AssignedBy}}</p>
    </div>

    <p>Please log in to the project hub to view full details and start working on this task.</p>

    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #E5E7EB;">
        <p style="color: #6B7280; font-size: 14px;">
            Best regards,<br>
            <strong>Nyrix Project Hub Team</strong>
        </p>
    </div>
</div>`,
		},

		Comment: NoticeTemplate{
			Subject: "New Comment on Task: {{.TaskTitle}}",
			HTMLBody: `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #3B82F6;">New Comment Notification</h2>
    <p>Hello {{.RecipientName}},</p>
    <p>A new comment has been added to your task in the <strong>Nyrix Project Hub</strong>:</p>

    <div style="background: #F3F4F6; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="margin-top: 0;">{{.TaskTitle}}</h3>
        <p><strong>Project:</strong> {{.ProjectName}}</p>
        <p><strong>Comment by:</strong> {{.CommentAuthor}}</p>
        <p><strong>Comment:</strong></p>
        <div style="background: white; padding: 15px; border-left: 4px solid #3B82F6; margin: 10px 0;">
            {{.CommentText}}
        </div>
    </div>

    <p>Please log in to the project hub to view the full context and respond if needed.</p>

    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #E5E7EB;">
        <p style="color: #6B7280; font-size: 14px;">
            Best regards,<br>
            <strong>Nyrix Project Hub Team</strong>
        </p>
    </div>
</div>`,
		},

		Mention: NoticeTemplate{
			Subject: "You were tagged in a comment: {{.TaskTitle}}",
			HTMLBody: `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #DC2626;">You were tagged in a comment!</h2>
    <p>Hello {{.RecipientName}},</p>
    <p>You were tagged in a comment in the <strong>Nyrix Project Hub</strong>:</p>

    <div style="background: #FEF2F2; padding: 20px; border-radius: 8px; margin: 20px 0; border: 1px solid #FECACA;">
        <h3 style="margin-top: 0; color: #DC2626;">{{.TaskTitle}}</h3>
        <p><strong>Project:</strong> {{.ProjectName}}</p>
        <p><strong>Tagged by:</strong> {{.CommentAuthor}}</p>
        <p><strong>Comment:</strong></p>
        <div style="background: white; padding: 15px; border-left: 4px solid #DC2626; margin: 10px 0;">
            {{.CommentText}}
        </div>
    </div>

    <p><strong>Action Required:</strong> Please review this comment and respond if needed.</p>

    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #E5E7EB;">
        <p style="color: #6B7280; font-size: 14px;">
            Best regards,<br>
            <strong>Nyrix Project Hub Team</strong>
        </p>
    </div>
</div>`,
		},

		DeadlineReminder: NoticeTemplate{
			Subject: "Deadline Reminder: {{.TaskTitle}}",
			HTMLBody: `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #D97706;">Task Deadline Reminder</h2>
    <p>Hello {{.RecipientName}},</p>
    <p>A task assigned to you in the <strong>Nyrix Project Hub</strong> is due soon:</p>

    <div style="background: #FFFBEB; padding: 20px; border-radius: 8px; margin: 20px 0; border: 1px solid #FDE68A;">
        <h3 style="margin-top: 0;">{{.TaskTitle}}</h3>
        <p><strong>Project:</strong> {{.ProjectName}}</p>
        <p><strong>Priority:</strong> <span style="color: {{.PriorityColor}}">{{.Priority}}</span></p>
        <p><strong>Deadline:</strong> {{.Deadline}}</p>
    </div>

    <p>Please log in to the project hub to update the task status.</p>

    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #E5E7EB;">
        <p style="color: #6B7280; font-size: 14px;">
            Best regards,<br>
            <strong>Nyrix Project Hub Team</strong>
        </p>
    </div>
</div>`,
		},
	}
}
