package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nyrix-co/projecthub/db"
	"github.com/nyrix-co/projecthub/internal/models"
	"github.com/nyrix-co/projecthub/internal/tags"
	"github.com/nyrix-co/projecthub/internal/team"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

type fixture struct {
	db       *gorm.DB
	mailer   *MockMailer
	projects *ProjectService
	tasks    *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn := newTestDB(t)
	directory := team.DefaultDirectory()
	mailer := NewMockMailer()
	notifier := NewNotifier(mailer, 5*time.Second)

	tasks := NewTaskService(conn, tags.NewParser(directory))
	tasks.OnCommit(NotificationHook(notifier, directory))

	return &fixture{
		db:       conn,
		mailer:   mailer,
		projects: NewProjectService(conn),
		tasks:    tasks,
	}
}

func (f *fixture) createProject(t *testing.T, name string) *models.Project {
	t.Helper()
	project, err := f.projects.Create(context.Background(), CreateProjectInput{Name: name})
	require.NoError(t, err)
	return project
}

func (f *fixture) createTask(t *testing.T, projectID uint, title, assignee string) *models.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), CreateTaskInput{
		ProjectID:  projectID,
		Title:      title,
		AssignedTo: assignee,
		AssignedBy: "Huzaifa",
	})
	require.NoError(t, err)
	return task
}

func messagesBySubjectPrefix(mailer *MockMailer, prefix string) []Message {
	var matched []Message
	for _, msg := range mailer.SentMessages {
		if strings.HasPrefix(msg.Subject, prefix) {
			matched = append(matched, msg)
		}
	}
	return matched
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")

	_, err := f.tasks.Create(context.Background(), CreateTaskInput{ProjectID: project.ID, AssignedTo: "sarim@nyrix.co"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = f.tasks.Create(context.Background(), CreateTaskInput{ProjectID: project.ID, Title: "x"})
	assert.ErrorIs(t, err, ErrAssigneeRequired)

	_, err = f.tasks.Create(context.Background(), CreateTaskInput{
		ProjectID: project.ID, Title: "x", AssignedTo: "sarim@nyrix.co", Status: "bogus",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Nothing was persisted and no notice went out.
	var count int64
	f.db.Model(&models.Task{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, f.mailer.SentMessages)
}

func TestCreateTaskMissingProject(t *testing.T) {
	f := newFixture(t)

	_, err := f.tasks.Create(context.Background(), CreateTaskInput{
		ProjectID: 999, Title: "x", AssignedTo: "sarim@nyrix.co",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateTaskSendsAssignmentNotice(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")

	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")
	assert.Equal(t, models.TaskTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)

	notices := messagesBySubjectPrefix(f.mailer, "New Task Assigned:")
	require.Len(t, notices, 1)
	assert.Equal(t, "sarim@nyrix.co", notices[0].To)
	assert.Contains(t, notices[0].HTML, "Website Revamp")
}

func TestCreateTaskUnresolvableAssigneeSkipsNotice(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")

	f.createTask(t, project.ID, "Ship the release", "contractor@elsewhere.com")

	assert.Empty(t, f.mailer.SentMessages)
}

func TestCreateCommentFanOut(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	// Assignee sarim, author talha, mention hashir: exactly one comment
	// notice and one mention notice.
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")
	f.mailer.SentMessages = nil

	comment, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID:  task.ID,
		Author:  "talhaone1234@gmail.com",
		Content: "@hashir check this",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"muhammadhashirsiddiqui2@gmail.com"}, []string(comment.Tags))

	commentNotices := messagesBySubjectPrefix(f.mailer, "New Comment on Task:")
	require.Len(t, commentNotices, 1)
	assert.Equal(t, "sarim@nyrix.co", commentNotices[0].To)

	mentionNotices := messagesBySubjectPrefix(f.mailer, "You were tagged in a comment:")
	require.Len(t, mentionNotices, 1)
	assert.Equal(t, "muhammadhashirsiddiqui2@gmail.com", mentionNotices[0].To)

	assert.Len(t, f.mailer.SentMessages, 2)
}

func TestCreateCommentAssigneeAlsoMentionedGetsBoth(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")
	f.mailer.SentMessages = nil

	_, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID:  task.ID,
		Author:  "talhaone1234@gmail.com",
		Content: "@sarim please look",
	})
	require.NoError(t, err)

	assert.Len(t, messagesBySubjectPrefix(f.mailer, "New Comment on Task:"), 1)
	assert.Len(t, messagesBySubjectPrefix(f.mailer, "You were tagged in a comment:"), 1)
	for _, msg := range f.mailer.SentMessages {
		assert.Equal(t, "sarim@nyrix.co", msg.To)
	}
}

func TestCreateCommentSelfMentionSuppressed(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")
	f.mailer.SentMessages = nil

	// Author tags only themselves: no mention notice, but the distinct
	// assignee still gets a comment notice.
	_, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID:  task.ID,
		Author:  "talhaone1234@gmail.com",
		Content: "noting for myself @talha",
	})
	require.NoError(t, err)

	assert.Empty(t, messagesBySubjectPrefix(f.mailer, "You were tagged in a comment:"))
	commentNotices := messagesBySubjectPrefix(f.mailer, "New Comment on Task:")
	require.Len(t, commentNotices, 1)
	assert.Equal(t, "sarim@nyrix.co", commentNotices[0].To)
}

func TestCreateCommentAuthorIsAssignee(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")
	f.mailer.SentMessages = nil

	_, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID:  task.ID,
		Author:  "sarim@nyrix.co",
		Content: "on it",
	})
	require.NoError(t, err)

	assert.Empty(t, f.mailer.SentMessages)
}

func TestCreateCommentSurvivesNotificationFailure(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")
	f.mailer.Err = errors.New("transport down")

	comment, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID:  task.ID,
		Author:  "talhaone1234@gmail.com",
		Content: "@hashir check this",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"muhammadhashirsiddiqui2@gmail.com"}, []string(comment.Tags))

	var persisted models.Comment
	require.NoError(t, f.db.First(&persisted, comment.ID).Error)
	assert.Equal(t, []string{"muhammadhashirsiddiqui2@gmail.com"}, []string(persisted.Tags))
}

func TestListWithCommentsRoundTrip(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")

	first, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID: task.ID, Author: "sarim@nyrix.co", Content: "starting now",
	})
	require.NoError(t, err)

	// Force distinct timestamps so the ordering is deterministic.
	require.NoError(t, f.db.Model(&models.Comment{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Minute)).Error)

	second, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID: task.ID, Author: "talhaone1234@gmail.com", Content: "any update?",
	})
	require.NoError(t, err)

	listed, err := f.tasks.ListWithComments(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Comments, 2)
	assert.Equal(t, second.ID, listed[0].Comments[0].ID, "comments are newest-first")
	assert.Equal(t, first.ID, listed[0].Comments[1].ID)
}

func TestListWithCommentsTaskOrdering(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")

	older := f.createTask(t, project.ID, "older", "sarim@nyrix.co")
	require.NoError(t, f.db.Model(&models.Task{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := f.createTask(t, project.ID, "newer", "sarim@nyrix.co")

	listed, err := f.tasks.ListWithComments(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID)
	assert.Equal(t, older.ID, listed[1].ID)
}

func TestDeleteTaskCascades(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")
	keep := f.createTask(t, project.ID, "Untouched", "sarim@nyrix.co")

	_, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID: task.ID, Author: "sarim@nyrix.co", Content: "soon gone",
	})
	require.NoError(t, err)

	existed, err := f.tasks.Delete(context.Background(), task.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	listed, err := f.tasks.ListWithComments(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, keep.ID, listed[0].ID)
	assert.Empty(t, listed[0].Comments)

	var count int64
	f.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteMissingTask(t *testing.T) {
	f := newFixture(t)

	existed, err := f.tasks.Delete(context.Background(), 12345)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestUpdateTaskStatusTransitions(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")

	// Any state may move to any other state, including reopening.
	for _, status := range []models.TaskStatus{
		models.TaskCompleted, models.TaskTodo, models.TaskReview, models.TaskInProgress,
	} {
		updated, err := f.tasks.Update(context.Background(), task.ID, UpdateTaskInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	bogus := models.TaskStatus("archived")
	_, err := f.tasks.Update(context.Background(), task.ID, UpdateTaskInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteProjectCascades(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")
	_, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{
		TaskID: task.ID, Author: "sarim@nyrix.co", Content: "soon gone",
	})
	require.NoError(t, err)

	existed, err := f.projects.Delete(context.Background(), project.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	var taskCount, commentCount int64
	f.db.Model(&models.Task{}).Count(&taskCount)
	f.db.Model(&models.Comment{}).Count(&commentCount)
	assert.Zero(t, taskCount)
	assert.Zero(t, commentCount)

	existed, err = f.projects.Delete(context.Background(), project.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestCommentValidation(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, "Website Revamp")
	task := f.createTask(t, project.ID, "Ship the release", "sarim@nyrix.co")

	_, err := f.tasks.CreateComment(context.Background(), CreateCommentInput{TaskID: task.ID, Content: "x"})
	assert.ErrorIs(t, err, ErrAuthorRequired)

	_, err = f.tasks.CreateComment(context.Background(), CreateCommentInput{TaskID: task.ID, Author: "sarim@nyrix.co"})
	assert.ErrorIs(t, err, ErrContentRequired)

	_, err = f.tasks.CreateComment(context.Background(), CreateCommentInput{TaskID: 999, Author: "sarim@nyrix.co", Content: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
