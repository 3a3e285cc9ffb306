package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nyrix-co/projecthub/internal/team"
	"github.com/nyrix-co/projecthub/internal/types"
)

// GetActingMember returns the directory member resolved by the member
// middleware, if the request carried one.
func GetActingMember(ctx *gin.Context) (team.Member, bool) {
	value, exists := ctx.Get(types.ContextMemberKey)
	if !exists {
		return team.Member{}, false
	}

	member, ok := value.(team.Member)
	if !ok {
		return team.Member{}, false
	}

	return member, true
}

// ParseIDParam parses a numeric path parameter.
func ParseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}
