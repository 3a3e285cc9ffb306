package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyrix-co/projecthub/internal/team"
)

type TeamHandler struct {
	directory *team.Directory
}

func NewTeamHandler(directory *team.Directory) *TeamHandler {
	return &TeamHandler{directory: directory}
}

// List returns the team roster in directory order.
func (h *TeamHandler) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.directory.Members())
}
