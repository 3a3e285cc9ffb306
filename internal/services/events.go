package services

import (
	"context"

	"github.com/nyrix-co/projecthub/internal/models"
)

type EventKind string

const (
	EventProjectCreated EventKind = "project_created"
	EventProjectUpdated EventKind = "project_updated"
	EventProjectDeleted EventKind = "project_deleted"
	EventTaskCreated    EventKind = "task_created"
	EventTaskUpdated    EventKind = "task_updated"
	EventTaskDeleted    EventKind = "task_deleted"
	EventCommentAdded   EventKind = "comment_added"
	EventCommentDeleted EventKind = "comment_deleted"
)

// Event describes a committed mutation. Hooks receive it after the write
// is visible in the store; nothing they do can roll the write back.
type Event struct {
	Kind        EventKind
	ProjectID   uint
	ProjectName string
	Task        *models.Task
	Comment     *models.Comment
	// Actor is the display name of the member that performed the
	// mutation, when known.
	Actor string
}

// Hook is a post-commit callback. Hooks run synchronously in registration
// order; they must bound their own work and never return errors to the
// mutation path.
type Hook func(ctx context.Context, event Event)
