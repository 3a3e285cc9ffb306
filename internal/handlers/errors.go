package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nyrix-co/projecthub/internal/services"
)

// writeServiceError maps service errors onto HTTP responses: validation
// errors become 400, missing rows become 404, everything else 500.
func writeServiceError(ctx *gin.Context, err error, notFoundMsg, internalMsg string) {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrAssigneeRequired),
		errors.Is(err, services.ErrAuthorRequired),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
