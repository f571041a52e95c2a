package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
)

// respondError translates a service error into the uniform failure envelope.
// Known application errors keep their status code and message; anything else
// is masked as a 500 and logged with its real cause.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, dto.NewErrorResponse(appErr.Code, appErr.Message, appErr.Errs))
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled error in handler", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Internal Server Error", nil))
}

// respondSuccess wraps a payload in the success envelope with the same status
// code mirrored in the body.
func respondSuccess(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, dto.NewSuccessResponse(statusCode, data, message))
}
