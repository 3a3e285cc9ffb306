// Package scheduler runs the deadline reminder loop: tasks whose deadline
// falls inside the reminder window (or has passed) get one reminder email
// to their assignee.
package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/nyrix-co/projecthub/internal/models"
	"github.com/nyrix-co/projecthub/internal/services"
	"github.com/nyrix-co/projecthub/internal/team"
)

type ReminderScheduler struct {
	db        *gorm.DB
	directory *team.Directory
	notifier  *services.Notifier
	interval  time.Duration
	window    time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewReminderScheduler(db *gorm.DB, directory *team.Directory, notifier *services.Notifier, interval, window time.Duration) *ReminderScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReminderScheduler{
		db:        db,
		directory: directory,
		notifier:  notifier,
		interval:  interval,
		window:    window,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start runs an immediate scan and then ticks until Stop is called.
func (s *ReminderScheduler) Start() {
	log.Printf("Starting reminder scheduler (interval %s, window %s)", s.interval, s.window)

	go func() {
		s.scan()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.scan()
			}
		}
	}()
}

func (s *ReminderScheduler) Stop() {
	log.Println("Stopping reminder scheduler")
	s.cancel()
}

func (s *ReminderScheduler) scan() {
	due, err := s.DueTasks(s.ctx, time.Now())
	if err != nil {
		log.Printf("Reminder scan failed: %v", err)
		return
	}

	for _, task := range due {
		s.remind(task)
	}
}

// DueTasks returns tasks whose deadline is inside the window or overdue,
// that are not completed and have not been reminded since their deadline
// was last set.
func (s *ReminderScheduler) DueTasks(ctx context.Context, now time.Time) ([]models.Task, error) {
	var due []models.Task
	err := s.db.WithContext(ctx).
		Where("deadline IS NOT NULL").
		Where("deadline <= ?", now.Add(s.window)).
		Where("status <> ?", models.TaskCompleted).
		Where("reminder_sent_at IS NULL").
		Find(&due).Error
	if err != nil {
		return nil, err
	}
	return due, nil
}

func (s *ReminderScheduler) remind(task models.Task) {
	assignee, ok := s.directory.FindByEmail(task.AssignedTo)
	if !ok {
		return
	}

	var project models.Project
	if err := s.db.WithContext(s.ctx).First(&project, task.ProjectID).Error; err != nil {
		log.Printf("Reminder lookup failed for task %d: %v", task.ID, err)
		return
	}

	if !s.notifier.SendDeadlineReminder(s.ctx, assignee, task.Title, project.Name, *task.Deadline, task.Priority) {
		return
	}

	now := time.Now()
	if err := s.db.WithContext(s.ctx).Model(&task).Update("reminder_sent_at", now).Error; err != nil {
		log.Printf("Failed to record reminder for task %d: %v", task.ID, err)
	}
}
