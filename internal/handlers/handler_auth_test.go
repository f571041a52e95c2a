package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/handlers"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
	"github.com/vidtube/vidtube_backend/internal/utils"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
	RegisterFn func(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req, avatarPath, coverImagePath)
	}
	args := m.Called(ctx, req, avatarPath, coverImagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) FindOrCreateFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockUserService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	args := m.Called(ctx, userID, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	args := m.Called(ctx, userID, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueTokenPair(ctx context.Context, userID string) (*portssvc.TokenPair, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TokenPair), args.Error(1)
}

func (m *MockTokenService) VerifyRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock ChannelService ---
type MockChannelService struct {
	mock.Mock
}

func (m *MockChannelService) GetChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelProfile), args.Error(1)
}

func (m *MockChannelService) GetWatchHistory(ctx context.Context, userID string) ([]domain.Video, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Video), args.Error(1)
}

var _ portssvc.ChannelSvcFacade = (*MockChannelService)(nil)

// --- Mock GoogleOAuthHandlerService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Mock MediaStore ---
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, localPath string) (*portssvc.MediaUploadResult, error) {
	args := m.Called(ctx, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.MediaUploadResult), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

var _ portssvc.MediaStore = (*MockMediaStore)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	cfg         *config.Config
	mockUser    *MockUserService
	mockToken   *MockTokenService
	mockChannel *MockChannelService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.cfg = &config.Config{
		IsProduction:           true, // skip swagger wiring
		AccessTokenSecret:      "test-access-secret",
		AccessTokenExpiry:      15 * time.Minute,
		AccessTokenCookieName:  "accessToken",
		RefreshTokenSecret:     "test-refresh-secret",
		RefreshTokenExpiry:     time.Hour,
		RefreshTokenCookieName: "refreshToken",
		JWTIssuer:              "vidtube-test",
	}

	suite.mockUser = new(MockUserService)
	suite.mockToken = new(MockTokenService)
	suite.mockChannel = new(MockChannelService)

	container := &portssvc.ServiceContainer{
		User:               suite.mockUser,
		Token:              suite.mockToken,
		Channel:            suite.mockChannel,
		Media:              new(MockMediaStore),
		GoogleOAuthHandler: new(MockGoogleOAuthService),
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, container)
}

func (suite *AuthHandlerTestSuite) TestRegister_MissingAvatarDoesNotCallService() {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	suite.Require().NoError(writer.WriteField("fullName", "Test User"))
	suite.Require().NoError(writer.WriteField("email", "test@example.com"))
	suite.Require().NoError(writer.WriteField("userName", "testuser"))
	suite.Require().NoError(writer.WriteField("password", "password123"))
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp dto.APIErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Avatar file is required.", resp.Message)
	suite.False(resp.Success)

	suite.mockUser.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	created := &domain.User{
		UserID:    "u1",
		Username:  "testuser",
		Email:     "test@example.com",
		FullName:  "Test User",
		AvatarURL: "https://cdn.example.com/av1",
	}
	suite.mockUser.RegisterFn = func(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error) {
		suite.Equal("testuser", req.UserName)
		suite.NotEmpty(avatarPath) // staged temp file path
		suite.Empty(coverImagePath)
		return created, nil
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	suite.Require().NoError(writer.WriteField("fullName", "Test User"))
	suite.Require().NoError(writer.WriteField("email", "test@example.com"))
	suite.Require().NoError(writer.WriteField("userName", "testuser"))
	suite.Require().NoError(writer.WriteField("password", "password123"))
	part, err := writer.CreateFormFile("avatar", "avatar.png")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("fake image bytes"))
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp struct {
		StatusCode int              `json:"statusCode"`
		Data       dto.UserResponse `json:"data"`
		Message    string           `json:"message"`
		Success    bool             `json:"success"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("User registered Successfully", resp.Message)
	suite.Equal("testuser", resp.Data.UserName)
}

func (suite *AuthHandlerTestSuite) TestLogin_SuccessSetsCookies() {
	user := &domain.User{UserID: "u1", Username: "testuser", Email: "test@example.com"}
	pair := &portssvc.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}

	suite.mockUser.On("Login", mock.Anything, dto.LoginRequest{UserName: "testuser", Password: "password123"}).
		Return(user, nil).Once()
	suite.mockToken.On("IssueTokenPair", mock.Anything, "u1").Return(pair, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		strings.NewReader(`{"userName":"testuser","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data    dto.LoginResponse `json:"data"`
		Message string            `json:"message"`
		Success bool              `json:"success"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("User logged In Successfully", resp.Message)
	suite.Equal("access-token", resp.Data.AccessToken)
	suite.Equal("refresh-token", resp.Data.RefreshToken)
	suite.Equal("testuser", resp.Data.User.UserName)

	cookies := w.Result().Cookies()
	var accessCookie, refreshCookie *http.Cookie
	for _, c := range cookies {
		switch c.Name {
		case "accessToken":
			accessCookie = c
		case "refreshToken":
			refreshCookie = c
		}
	}
	suite.Require().NotNil(accessCookie)
	suite.Require().NotNil(refreshCookie)
	suite.True(accessCookie.HttpOnly)
	suite.True(accessCookie.Secure)
	suite.Equal("access-token", accessCookie.Value)
	suite.True(refreshCookie.HttpOnly)
	suite.Equal("refresh-token", refreshCookie.Value)
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownUser() {
	suite.mockUser.On("Login", mock.Anything, mock.AnythingOfType("dto.LoginRequest")).
		Return(nil, apperrors.NewNotFoundError("User doesn't exist.")).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		strings.NewReader(`{"userName":"nouser","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)

	var resp dto.APIErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal("User doesn't exist.", resp.Message)
	suite.NotNil(resp.Errors)
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_MissingToken() {
	suite.mockToken.On("VerifyRefreshToken", mock.Anything, "").
		Return(nil, apperrors.NewUnauthorizedError("Unauthorized request.")).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)

	var resp dto.APIErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Unauthorized request.", resp.Message)
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_RotatesFromCookie() {
	user := &domain.User{UserID: "u1", Username: "testuser"}
	pair := &portssvc.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	suite.mockToken.On("VerifyRefreshToken", mock.Anything, "old-refresh").Return(user, nil).Once()
	suite.mockToken.On("IssueTokenPair", mock.Anything, "u1").Return(pair, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "old-refresh"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data    dto.RefreshTokenResponse `json:"data"`
		Message string                   `json:"message"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Access token refreshed", resp.Message)
	suite.Equal("new-access", resp.Data.AccessToken)
	suite.Equal("new-refresh", resp.Data.RefreshToken)
	suite.mockToken.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestCurrentUser_NoTokenRejected() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)

	var resp dto.APIErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Unauthorized request.", resp.Message)
}

func (suite *AuthHandlerTestSuite) TestCurrentUser_WithValidCookie() {
	user := &domain.User{UserID: "u1", Username: "testuser", Email: "test@example.com"}
	suite.mockUser.On("GetUserByID", mock.Anything, "u1").Return(user, nil).Once()

	token, err := utils.GenerateAccessJWT("u1", user.Email, user.Username, user.FullName,
		suite.cfg.AccessTokenSecret, suite.cfg.AccessTokenExpiry, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data    dto.UserResponse `json:"data"`
		Success bool             `json:"success"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("testuser", resp.Data.UserName)
}

func (suite *AuthHandlerTestSuite) TestCurrentUser_WithBearerHeader() {
	user := &domain.User{UserID: "u1", Username: "testuser"}
	suite.mockUser.On("GetUserByID", mock.Anything, "u1").Return(user, nil).Once()

	token, err := utils.GenerateAccessJWT("u1", "", "testuser", "",
		suite.cfg.AccessTokenSecret, suite.cfg.AccessTokenExpiry, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthHandlerTestSuite) TestCurrentUser_GarbageTokenRejected() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "garbage"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)

	var resp dto.APIErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Invalid access token.", resp.Message)
}

func (suite *AuthHandlerTestSuite) TestChannelProfile_Authenticated() {
	user := &domain.User{UserID: "u1", Username: "viewer"}
	suite.mockUser.On("GetUserByID", mock.Anything, "u1").Return(user, nil).Once()
	suite.mockChannel.On("GetChannelProfile", mock.Anything, "somechannel", "u1").
		Return(&domain.ChannelProfile{
			FullName:         "Some Channel",
			Username:         "somechannel",
			SubscribersCount: 2,
			IsSubscribed:     true,
		}, nil).Once()

	token, err := utils.GenerateAccessJWT("u1", "", "viewer", "",
		suite.cfg.AccessTokenSecret, suite.cfg.AccessTokenExpiry, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/c/somechannel", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data    dto.ChannelProfileResponse `json:"data"`
		Message string                     `json:"message"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("User channel fetched successfully", resp.Message)
	suite.Equal(int64(2), resp.Data.SubscribersCount)
	suite.True(resp.Data.IsSubscribed)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
