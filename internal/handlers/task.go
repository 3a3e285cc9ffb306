package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyrix-co/projecthub/internal/models"
	"github.com/nyrix-co/projecthub/internal/services"
	"github.com/nyrix-co/projecthub/internal/utils"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assigned_to" binding:"required"`
	Deadline    *time.Time `json:"deadline"`
	AssignedBy  string     `json:"assigned_by"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssignedTo  *string    `json:"assigned_to"`
	Deadline    *time.Time `json:"deadline"`
}

type TaskResponse struct {
	ID          uint              `json:"id"`
	ProjectID   uint              `json:"project_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	AssignedTo  string            `json:"assigned_to"`
	Deadline    *time.Time        `json:"deadline"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Comments    []CommentResponse `json:"comments"`
}

func toTaskResponse(task models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		AssignedTo:  task.AssignedTo,
		Deadline:    task.Deadline,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Comments:    make([]CommentResponse, 0, len(task.Comments)),
	}
	for _, comment := range task.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(comment))
	}
	return resp
}

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List returns every task with its comments attached, newest-first.
func (h *TaskHandler) List(ctx *gin.Context) {
	taskList, err := h.tasks.ListWithComments(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(taskList))
	for _, task := range taskList {
		response = append(response, toTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

// ListByProject returns one project's tasks with comments attached.
func (h *TaskHandler) ListByProject(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskList, err := h.tasks.ListProjectWithComments(ctx.Request.Context(), projectID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(taskList))
	for _, task := range taskList {
		response = append(response, toTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateTaskRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignedBy := body.AssignedBy
	if assignedBy == "" {
		if member, ok := utils.GetActingMember(ctx); ok {
			assignedBy = member.Name
		} else {
			assignedBy = "Project Hub"
		}
	}

	task, err := h.tasks.Create(ctx.Request.Context(), services.CreateTaskInput{
		ProjectID:   projectID,
		Title:       body.Title,
		Description: body.Description,
		Status:      models.TaskStatus(body.Status),
		Priority:    models.TaskPriority(body.Priority),
		AssignedTo:  body.AssignedTo,
		Deadline:    body.Deadline,
		AssignedBy:  assignedBy,
	})
	if err != nil {
		writeServiceError(ctx, err, "Project not found", "Failed to create task")
		return
	}

	ctx.JSON(http.StatusCreated, toTaskResponse(*task))
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	taskID, err := utils.ParseIDParam(ctx, "task_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := services.UpdateTaskInput{
		Title:       body.Title,
		Description: body.Description,
		AssignedTo:  body.AssignedTo,
		Deadline:    body.Deadline,
	}
	if body.Status != nil {
		status := models.TaskStatus(*body.Status)
		input.Status = &status
	}
	if body.Priority != nil {
		priority := models.TaskPriority(*body.Priority)
		input.Priority = &priority
	}

	task, err := h.tasks.Update(ctx.Request.Context(), taskID, input)
	if err != nil {
		writeServiceError(ctx, err, "Task not found", "Failed to update task")
		return
	}

	ctx.JSON(http.StatusOK, toTaskResponse(*task))
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	taskID, err := utils.ParseIDParam(ctx, "task_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existed, err := h.tasks.Delete(ctx.Request.Context(), taskID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	if !existed {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
