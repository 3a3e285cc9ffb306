package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nyrix-co/projecthub/internal/team"
	"github.com/nyrix-co/projecthub/internal/types"
)

// MemberResolver stores the acting team member in the request context when
// the optional X-Member-Email header resolves against the directory. This
// is identification only, not authentication: all team members are trusted
// and unknown or missing headers pass through untouched.
func MemberResolver(directory *team.Directory) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		email := ctx.GetHeader("X-Member-Email")
		if email != "" {
			if member, ok := directory.FindByEmail(email); ok {
				ctx.Set(types.ContextMemberKey, member)
			}
		}
		ctx.Next()
	}
}
