package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nyrix-co/projecthub/internal/models"
)

var (
	ErrNameRequired    = errors.New("project name is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)

// ProjectService owns project CRUD and the cascade on delete.
type ProjectService struct {
	db    *gorm.DB
	hooks []Hook
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// OnCommit registers a post-commit hook.
func (s *ProjectService) OnCommit(hook Hook) {
	s.hooks = append(s.hooks, hook)
}

func (s *ProjectService) emit(ctx context.Context, event Event) {
	for _, hook := range s.hooks {
		hook(ctx, event)
	}
}

type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
}

func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Status == "" {
		input.Status = models.ProjectActive
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	project := models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}

	s.emit(ctx, Event{Kind: EventProjectCreated, ProjectID: project.ID, ProjectName: project.Name})
	return &project, nil
}

// List returns all projects newest-first, each with its tasks attached.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC")
		}).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC")
		}).
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
}

func (s *ProjectService) Update(ctx context.Context, id uint, input UpdateProjectInput) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		project.Status = *input.Status
	}

	if err := s.db.WithContext(ctx).Save(&project).Error; err != nil {
		return nil, err
	}

	s.emit(ctx, Event{Kind: EventProjectUpdated, ProjectID: project.ID, ProjectName: project.Name})
	return &project, nil
}

// Delete removes a project with its tasks and their comments in one
// transaction. It reports whether the project existed.
func (s *ProjectService) Delete(ctx context.Context, id uint) (bool, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id IN (?)", tx.Model(&models.Task{}).Select("id").Where("project_id = ?", project.ID)).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		return false, err
	}

	s.emit(ctx, Event{Kind: EventProjectDeleted, ProjectID: project.ID, ProjectName: project.Name})
	return true, nil
}
