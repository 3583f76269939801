package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey      = contextKey("userID")
	workspaceIDKey = contextKey("workspaceID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	return "", false
}

// GetWorkspaceIDFromCtx returns the workspace the request was scoped to by
// RequireWorkspaceAccess.
func GetWorkspaceIDFromCtx(ctx context.Context) (string, bool) {
	workspaceID, ok := ctx.Value(workspaceIDKey).(string)
	return workspaceID, ok && workspaceID != ""
}
