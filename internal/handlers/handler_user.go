package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// userHandler handles the authenticated account and channel routes.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	channelService portssvc.ChannelSvcFacade
	auth           *authHandler
}

func newUserHandler(us portssvc.UserSvcFacade, cs portssvc.ChannelSvcFacade, auth *authHandler) *userHandler {
	return &userHandler{
		userService:    us,
		channelService: cs,
		auth:           auth,
	}
}

// registerUserRoutes registers the secured user routes. The group is expected
// to already carry the auth middleware.
func registerUserRoutes(users *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newUserHandler(services.User, services.Channel, newAuthHandler(services.User, services.Token, cfg))

	users.POST("/logout", h.Logout)
	users.POST("/change-password", h.ChangePassword)
	users.GET("/current-user", h.CurrentUser)
	users.PATCH("/update-account", h.UpdateAccount)
	users.PATCH("/avatar", h.UpdateAvatar)
	users.PATCH("/cover-image", h.UpdateCoverImage)
	users.GET("/c/:username", h.GetChannelProfile)
	users.GET("/history", h.GetWatchHistory)
}

// Logout godoc
// @Summary Log out the current user
// @Description Clears the stored refresh token and expires both auth cookies.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *userHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized request.", nil))
		return
	}

	if err := h.userService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	h.auth.clearAuthCookies(c)
	respondSuccess(c, http.StatusOK, gin.H{}, "User logged Out")
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags users
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse "Invalid old password"
// @Security BearerAuth
// @Router /users/change-password [post]
func (h *userHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized request.", nil))
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Old and new password are required.", []string{err.Error()}))
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

// CurrentUser godoc
// @Summary Get the current user
// @Description Returns the authenticated user's sanitized record.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/current-user [get]
func (h *userHandler) CurrentUser(c *gin.Context) {
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized request.", nil))
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Current user fetched successfully")
}

// UpdateAccount godoc
// @Summary Update account details
// @Description Updates full name and/or email; at least one must be provided.
// @Tags users
// @Accept json
// @Produce json
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/update-account [patch]
func (h *userHandler) UpdateAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized request.", nil))
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "All fields are required", []string{err.Error()}))
		return
	}

	user, err := h.userService.UpdateAccountDetails(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Account details updated successfully")
}

// UpdateAvatar godoc
// @Summary Replace the current user's avatar
// @Description Uploads the new avatar and deletes the previous asset from the media host.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "New avatar image"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/avatar [patch]
func (h *userHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, imageFieldAvatar)
}

// UpdateCoverImage godoc
// @Summary Replace the current user's cover image
// @Tags users
// @Accept mpfd
// @Produce json
// @Param coverImage formData file true "New cover image"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/cover-image [patch]
func (h *userHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, imageFieldCover)
}

type imageField string

const (
	imageFieldAvatar imageField = "avatar"
	imageFieldCover  imageField = "coverImage"
)

func (h *userHandler) updateImage(c *gin.Context, field imageField) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized request.", nil))
		return
	}

	missingMsg := "Avatar is missing."
	if field == imageFieldCover {
		missingMsg = "Cover Image is missing."
	}

	file, err := c.FormFile(string(field))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, missingMsg, nil))
		return
	}
	localPath, err := saveUploadedTempFile(c, file)
	if err != nil {
		logger.Error("Failed to stage image upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, missingMsg, nil))
		return
	}

	var user *domain.User
	if field == imageFieldCover {
		user, err = h.userService.UpdateCoverImage(c.Request.Context(), userID, localPath)
	} else {
		user, err = h.userService.UpdateAvatar(c.Request.Context(), userID, localPath)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Avatar image updated successfully"
	if field == imageFieldCover {
		message = "Cover image updated successfully"
	}
	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), message)
}

// GetChannelProfile godoc
// @Summary Get a channel profile
// @Description Returns the channel matching the username with subscriber counts and whether the caller subscribes to it.
// @Tags users
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/c/{username} [get]
func (h *userHandler) GetChannelProfile(c *gin.Context) {
	viewerID, _ := middleware.GetUserIDFromContext(c)

	profile, err := h.channelService.GetChannelProfile(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToChannelProfileResponse(profile), "User channel fetched successfully")
}

// GetWatchHistory godoc
// @Summary Get the current user's watch history
// @Description Returns the watched videos in stored order, each with its owner reduced to fullName, userName and avatar.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/history [get]
func (h *userHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized request.", nil))
		return
	}

	videos, err := h.channelService.GetWatchHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToWatchHistoryResponse(videos), "Watch history fetched successfully")
}
