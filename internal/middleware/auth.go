package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/listkeeper-dev/listkeeper/internal/session"
	"github.com/listkeeper-dev/listkeeper/internal/store"
	"github.com/listkeeper-dev/listkeeper/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// RequireSession gates protected routes. It resolves the session cookie to a
// server-side session row and loads the account into the request context;
// absent or expired sessions are rejected before the handler runs.
func RequireSession(sessions *session.Manager, users store.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := session.Token(ctx)

		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}

		sess, err := sessions.Get(ctx.Request.Context(), token)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}

		user, err := users.FindByID(ctx.Request.Context(), sess.UserID)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.Name,
		})
		ctx.Next()
	}
}
