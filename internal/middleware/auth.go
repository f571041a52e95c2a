package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
	"github.com/vidtube/vidtube_backend/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that authenticates the
// request from the access-token cookie or the Authorization: Bearer header.
// The token's subject is resolved to a live user record, which is attached to
// the context alongside the user ID; a token for a deleted user is rejected.
func AuthMiddleware(cfg *config.Config, userSvc portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, _ := c.Cookie(cfg.AccessTokenCookieName)
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}
		if tokenString == "" {
			logger.Warn("Access token missing from cookie and Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized request.", nil))
			return
		}

		claims, err := utils.ParseAndValidateAccessJWT(tokenString, cfg.AccessTokenSecret)
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid access token.", nil))
			return
		}
		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid access token.", nil))
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), claims.Subject)
		if err != nil {
			logger.Warn("Access token subject does not resolve to a user", slog.String("user_id", claims.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid access token.", nil))
			return
		}

		// Store the user ID in the standard context and keep the full record in
		// the Gin context for handlers.
		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, user.UserID)

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctxWithLoggerAndUser := context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndUser)
		c.Set(string(userIDKey), user.UserID)
		c.Set(string(currentUserKey), user)

		c.Next()
	}
}
