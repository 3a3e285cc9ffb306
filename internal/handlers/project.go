package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyrix-co/projecthub/internal/models"
	"github.com/nyrix-co/projecthub/internal/services"
	"github.com/nyrix-co/projecthub/internal/utils"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type ProjectResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
}

func toProjectResponse(project models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      string(project.Status),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	for _, task := range project.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(task))
	}
	return resp
}

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.Create(ctx.Request.Context(), services.CreateProjectInput{
		Name:        body.Name,
		Description: body.Description,
		Status:      models.ProjectStatus(body.Status),
	})
	if err != nil {
		writeServiceError(ctx, err, "Project not found", "Failed to create project")
		return
	}

	ctx.JSON(http.StatusCreated, toProjectResponse(*project))
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	projects, err := h.projects.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		response = append(response, toProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Get(ctx.Request.Context(), projectID)
	if err != nil {
		writeServiceError(ctx, err, "Project not found", "Failed to retrieve project")
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(*project))
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := services.UpdateProjectInput{
		Name:        body.Name,
		Description: body.Description,
	}
	if body.Status != nil {
		status := models.ProjectStatus(*body.Status)
		input.Status = &status
	}

	project, err := h.projects.Update(ctx.Request.Context(), projectID, input)
	if err != nil {
		writeServiceError(ctx, err, "Project not found", "Failed to update project")
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(*project))
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	projectID, err := utils.ParseIDParam(ctx, "project_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existed, err := h.projects.Delete(ctx.Request.Context(), projectID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}
	if !existed {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
