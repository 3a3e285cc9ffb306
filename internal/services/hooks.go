package services

import (
	"context"

	"github.com/nyrix-co/projecthub/internal/team"
)

// NotificationHook returns a post-commit hook implementing the email
// fan-out rules:
//
//   - task created: assignment notice to the assignee, when the assignee
//     resolves to a directory member.
//   - comment added: comment notice to the task assignee (resolvable and
//     not the comment author), plus one mention notice per resolved tag
//     (excluding the author). An assignee who is also tagged receives
//     both notices.
//
// Every send is independent and best-effort.
func NotificationHook(notifier *Notifier, directory *team.Directory) Hook {
	return func(ctx context.Context, event Event) {
		switch event.Kind {
		case EventTaskCreated:
			task := event.Task
			if task == nil {
				return
			}
			assignee, ok := directory.FindByEmail(task.AssignedTo)
			if !ok {
				return
			}
			notifier.SendAssignmentNotice(ctx, assignee, task.Title, event.ProjectName, task.Deadline, task.Priority, event.Actor)

		case EventCommentAdded:
			task, comment := event.Task, event.Comment
			if task == nil || comment == nil {
				return
			}

			authorName := comment.Author
			if author, ok := directory.FindByEmail(comment.Author); ok {
				authorName = author.Name
			}

			if assignee, ok := directory.FindByEmail(task.AssignedTo); ok && assignee.Email != comment.Author {
				notifier.SendCommentNotice(ctx, assignee, task.Title, event.ProjectName, authorName, comment.Content)
			}

			for _, tagged := range comment.Tags {
				member, ok := directory.FindByEmail(tagged)
				if !ok || member.Email == comment.Author {
					continue
				}
				notifier.SendMentionNotice(ctx, member, task.Title, event.ProjectName, authorName, comment.Content)
			}
		}
	}
}
