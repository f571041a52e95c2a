package handlers

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// authHandler handles registration, login and token refresh.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public session routes under /users.
func registerAuthRoutes(users *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.Token, cfg)

	// Credential endpoints get a per-IP rate limit: 5 requests per minute.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limit := middleware.RateLimit(ipLimiter)

	users.POST("/register", limit, h.Register)
	users.POST("/login", limit, h.Login)
	users.POST("/refresh-token", h.RefreshToken)
}

// setAuthCookies attaches both tokens as httpOnly cookies.
func (h *authHandler) setAuthCookies(c *gin.Context, tokens *portssvc.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, tokens.AccessToken, int(h.cfg.AccessTokenExpiry.Seconds()), "/", "", true, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, tokens.RefreshToken, int(h.cfg.RefreshTokenExpiry.Seconds()), "/", "", true, true)
}

// clearAuthCookies expires both token cookies.
func (h *authHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, "", -1, "/", "", true, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, "/", "", true, true)
}

// saveUploadedTempFile stages an uploaded file in the OS temp dir under a
// random name, preserving the extension for content-type detection later.
func saveUploadedTempFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		return "", err
	}
	return tmpPath, nil
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account from a multipart form with a required avatar and optional cover image.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param fullName formData string true "Full name"
// @Param email formData string true "Email"
// @Param userName formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 409 {object} dto.APIErrorResponse "Email or username already exists"
// @Router /users/register [post]
func (h *authHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind registration form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "All fields are required", []string{err.Error()}))
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Avatar file is required.", nil))
		return
	}
	avatarPath, err := saveUploadedTempFile(c, avatarFile)
	if err != nil {
		logger.Error("Failed to stage avatar upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Avatar file is required.", nil))
		return
	}

	coverImagePath := ""
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		if p, err := saveUploadedTempFile(c, coverFile); err == nil {
			coverImagePath = p
		}
	}

	user, err := h.userService.Register(c.Request.Context(), req, avatarPath, coverImagePath)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	respondSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "User registered Successfully")
}

// Login godoc
// @Summary User login
// @Description Verifies credentials and returns the user with an access/refresh token pair. Both tokens are also set as httpOnly cookies.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Failure 404 {object} dto.APIErrorResponse
// @Router /users/login [post]
func (h *authHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Username or Email is required.", []string{err.Error()}))
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokenService.IssueTokenPair(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, tokens)
	logger.Info("User logged in", slog.String("user_id", user.UserID))
	respondSuccess(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "User logged In Successfully")
}

// RefreshToken godoc
// @Summary Refresh the access token
// @Description Rotates the token pair using the refresh token from the cookie or request body. A superseded or expired refresh token is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token (when not sent as a cookie)"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Router /users/refresh-token [post]
func (h *authHandler) RefreshToken(c *gin.Context) {
	incoming, _ := c.Cookie(h.cfg.RefreshTokenCookieName)
	if incoming == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			incoming = req.RefreshToken
		}
	}

	user, err := h.tokenService.VerifyRefreshToken(c.Request.Context(), incoming)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokenService.IssueTokenPair(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, tokens)
	respondSuccess(c, http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "Access token refreshed")
}
