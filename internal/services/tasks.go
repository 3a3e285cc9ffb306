package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nyrix-co/projecthub/internal/models"
	"github.com/nyrix-co/projecthub/internal/tags"
)

var (
	ErrTitleRequired    = errors.New("task title is required")
	ErrAssigneeRequired = errors.New("task assignee is required")
	ErrAuthorRequired   = errors.New("comment author is required")
	ErrContentRequired  = errors.New("comment content is required")
)

// TaskService is the task/comment aggregator: it composes the denormalized
// read view and sequences side effects around writes. Side effects run as
// post-commit hooks; a hook failure never affects the committed mutation.
type TaskService struct {
	db     *gorm.DB
	parser *tags.Parser
	hooks  []Hook
}

func NewTaskService(db *gorm.DB, parser *tags.Parser) *TaskService {
	return &TaskService{db: db, parser: parser}
}

// OnCommit registers a post-commit hook.
func (s *TaskService) OnCommit(hook Hook) {
	s.hooks = append(s.hooks, hook)
}

func (s *TaskService) emit(ctx context.Context, event Event) {
	for _, hook := range s.hooks {
		hook(ctx, event)
	}
}

type CreateTaskInput struct {
	ProjectID   uint
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  string
	Deadline    *time.Time
	// AssignedBy is the display name of the member creating the task,
	// used in the assignment notice.
	AssignedBy string
}

func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.AssignedTo == "" {
		return nil, ErrAssigneeRequired
	}
	if input.Status == "" {
		input.Status = models.TaskTodo
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, input.ProjectID).Error; err != nil {
		return nil, err
	}

	task := models.Task{
		ProjectID:   project.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
		Deadline:    input.Deadline,
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}

	s.emit(ctx, Event{
		Kind:        EventTaskCreated,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Task:        &task,
		Actor:       input.AssignedBy,
	})
	return &task, nil
}

// ListWithComments returns every task newest-first, each with its comments
// attached newest-first. The composition is computed on every read.
func (s *TaskService) ListWithComments(ctx context.Context) ([]models.Task, error) {
	return s.listWithComments(ctx, 0)
}

// ListProjectWithComments is ListWithComments restricted to one project.
func (s *TaskService) ListProjectWithComments(ctx context.Context, projectID uint) ([]models.Task, error) {
	return s.listWithComments(ctx, projectID)
}

func (s *TaskService) listWithComments(ctx context.Context, projectID uint) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if projectID != 0 {
		query = query.Where("project_id = ?", projectID)
	}

	var taskList []models.Task
	if err := query.Find(&taskList).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}

	byTask := make(map[uint][]models.Comment, len(taskList))
	for _, comment := range comments {
		byTask[comment.TaskID] = append(byTask[comment.TaskID], comment)
	}
	for i := range taskList {
		taskList[i].Comments = byTask[taskList[i].ID]
	}

	return taskList, nil
}

func (s *TaskService) Get(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	AssignedTo  *string
	Deadline    *time.Time
}

func (s *TaskService) Update(ctx context.Context, id uint, input UpdateTaskInput) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		// Any status may move to any other status; reopening a
		// completed task is legal.
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		task.AssignedTo = *input.AssignedTo
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
		task.ReminderSentAt = nil
	}

	if err := s.db.WithContext(ctx).Save(&task).Error; err != nil {
		return nil, err
	}

	s.emit(ctx, Event{Kind: EventTaskUpdated, ProjectID: task.ProjectID, Task: &task})
	return &task, nil
}

// Delete removes a task and its comments in one transaction. It reports
// whether the task existed.
func (s *TaskService) Delete(ctx context.Context, id uint) (bool, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		return false, err
	}

	s.emit(ctx, Event{Kind: EventTaskDeleted, ProjectID: task.ProjectID, Task: &task})
	return true, nil
}

type CreateCommentInput struct {
	TaskID  uint
	Author  string
	Content string
}

// CreateComment persists a comment with its tags derived from the content,
// then runs the notification fan-out as a post-commit hook. The persisted
// comment is returned regardless of notification outcome.
func (s *TaskService) CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	if input.Author == "" {
		return nil, ErrAuthorRequired
	}
	if input.Content == "" {
		return nil, ErrContentRequired
	}

	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, input.TaskID).Error; err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, task.ProjectID).Error; err != nil {
		return nil, err
	}

	comment := models.Comment{
		TaskID:  task.ID,
		Author:  input.Author,
		Content: input.Content,
		Tags:    datatypes.NewJSONSlice(s.parser.ParseMentions(input.Content)),
	}

	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	s.emit(ctx, Event{
		Kind:        EventCommentAdded,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Task:        &task,
		Comment:     &comment,
	})
	return &comment, nil
}

// DeleteComment reports whether the comment existed.
func (s *TaskService) DeleteComment(ctx context.Context, id uint) (bool, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, comment.TaskID).Error; err != nil {
		return false, err
	}

	if err := s.db.WithContext(ctx).Delete(&comment).Error; err != nil {
		return false, err
	}

	s.emit(ctx, Event{Kind: EventCommentDeleted, ProjectID: task.ProjectID, Task: &task, Comment: &comment})
	return true, nil
}
