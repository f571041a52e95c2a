package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// currentUserKey holds the full authenticated user record loaded by the auth
// middleware so handlers don't re-fetch it.
const currentUserKey = contextKey("currentUser")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetCurrentUserFromContext retrieves the authenticated user record attached
// by the auth middleware.
func GetCurrentUserFromContext(c *gin.Context) (*domain.User, bool) {
	userVal, exists := c.Get(string(currentUserKey))
	if !exists {
		return nil, false
	}
	user, ok := userVal.(*domain.User)
	if !ok {
		return nil, false
	}
	return user, true
}
