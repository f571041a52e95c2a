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

// googleOAuthHandler handles the Google sign-in code exchange.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	auth               *authHandler
}

func newGoogleOAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: services.GoogleOAuthHandler,
		userService:        services.User,
		tokenService:       services.Token,
		auth:               newAuthHandler(services.User, services.Token, cfg),
	}
}

// registerGoogleOAuthRoutes sets up the public OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(services, cfg)

	auth := rg.Group("/auth/google")
	auth.POST("/exchange-code", h.ExchangeCodeGoogle)
}

// exchangeCodeRequest is the JSON body for the /auth/google/exchange-code endpoint.
type exchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for a session
// @Description Exchanges the code for Google tokens, validates the ID token, finds or creates the user and returns an access/refresh pair.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body exchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req exchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Authorization code is required.", []string{err.Error()}))
		return
	}

	googleToken, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Warn("Failed to exchange Google authorization code", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid authorization code.", nil))
		return
	}

	rawIDToken, ok := googleToken.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		logger.Error("Google token response did not include an id_token")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid authorization code.", nil))
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid Google ID token.", nil))
		return
	}

	info := domain.GoogleUserInfo{
		ID: payload.Subject,
	}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.Picture = picture
	}

	user, err := h.userService.FindOrCreateFromGoogle(ctx, info)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokenService.IssueTokenPair(ctx, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.auth.setAuthCookies(c, tokens)
	logger.Info("Google sign-in succeeded", slog.String("user_id", user.UserID))
	respondSuccess(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "User logged In Successfully")
}
