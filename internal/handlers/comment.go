package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyrix-co/projecthub/internal/models"
	"github.com/nyrix-co/projecthub/internal/services"
	"github.com/nyrix-co/projecthub/internal/utils"
)

type CreateCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	TaskID    uint      `json:"task_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Author:    comment.Author,
		Content:   comment.Content,
		Tags:      []string(comment.Tags),
		CreatedAt: comment.CreatedAt,
	}
}

type CommentHandler struct {
	tasks *services.TaskService
}

func NewCommentHandler(tasks *services.TaskService) *CommentHandler {
	return &CommentHandler{tasks: tasks}
}

func (h *CommentHandler) Create(ctx *gin.Context) {
	taskID, err := utils.ParseIDParam(ctx, "task_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateCommentRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	author := body.Author
	if author == "" {
		if member, ok := utils.GetActingMember(ctx); ok {
			author = member.Email
		}
	}

	comment, err := h.tasks.CreateComment(ctx.Request.Context(), services.CreateCommentInput{
		TaskID:  taskID,
		Author:  author,
		Content: body.Content,
	})
	if err != nil {
		writeServiceError(ctx, err, "Task not found", "Failed to add comment")
		return
	}

	ctx.JSON(http.StatusCreated, toCommentResponse(*comment))
}

func (h *CommentHandler) Delete(ctx *gin.Context) {
	commentID, err := utils.ParseIDParam(ctx, "comment_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existed, err := h.tasks.DeleteComment(ctx.Request.Context(), commentID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if !existed {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
