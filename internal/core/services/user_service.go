package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
	"github.com/vidtube/vidtube_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	media    portssvc.MediaStore
}

// NewUserService creates the user service backing the session and profile
// controllers.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, media portssvc.MediaStore) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, media: media}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found.")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// Register creates a new account. The avatar upload happens before the insert:
// when the upload yields no result the request fails and no record is
// committed. The cover image is optional and its upload failure is tolerated.
func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error) {
	for _, field := range []string{req.FullName, req.Email, req.UserName, req.Password} {
		if strings.TrimSpace(field) == "" {
			return nil, apperrors.NewBadRequestError("All fields are required")
		}
	}

	existing, err := s.userRepo.FindUserByUsernameOrEmail(ctx, req.UserName, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("User with email or username already exists.")
	}

	if avatarPath == "" {
		return nil, apperrors.NewBadRequestError("Avatar file is required.")
	}
	avatar, err := s.media.Upload(ctx, avatarPath)
	if err != nil || avatar == nil {
		return nil, apperrors.NewBadRequestError("Avatar file is required.")
	}

	coverImageURL := ""
	if coverImagePath != "" {
		// A failed cover upload does not block registration.
		if cover, err := s.media.Upload(ctx, coverImagePath); err == nil && cover != nil {
			coverImageURL = cover.URL
		} else {
			middleware.GetLoggerFromCtx(ctx).Warn("Cover image upload failed during registration")
		}
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while registering user.")
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Username:      strings.ToLower(req.UserName),
		Email:         req.Email,
		FullName:      req.FullName,
		PasswordHash:  passwordHash,
		AvatarURL:     avatar.URL,
		CoverImageURL: coverImageURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("User with email or username already exists.")
		}
		return nil, apperrors.NewInternalServerError("Something went wrong while registering user.")
	}

	// Re-read so the response reflects exactly what was committed.
	created, err := s.userRepo.FindUserByID(ctx, user.UserID)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while registering user.")
	}
	return created, nil
}

// Login resolves the user by username or email and verifies the password.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	if req.UserName == "" && req.Email == "" {
		return nil, apperrors.NewBadRequestError("Username or Email is required.")
	}

	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, req.UserName, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User doesn't exist.")
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid credentials.")
	}
	return user, nil
}

// Logout clears the stored refresh token, ending the user's active session.
func (s *userService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token on logout: %w", err)
	}
	return nil
}

// ChangePassword verifies the old password before storing the new hash via a
// targeted update; a mismatch leaves the stored hash untouched.
func (s *userService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for password change: %w", err)
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("Invalid old password.")
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewInternalServerError("Failed to change password.")
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return apperrors.NewInternalServerError("Failed to change password.")
	}
	return nil
}

// UpdateAccountDetails updates full name and/or email; at least one must be set.
func (s *userService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	if req.FullName == nil && req.Email == nil {
		return nil, apperrors.NewBadRequestError("All fields are required")
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for account update: %w", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateAccountDetails(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("User with email or username already exists.")
		}
		return nil, fmt.Errorf("failed to update account details: %w", err)
	}

	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateAvatar replaces the user's avatar: upload the new asset, best-effort
// delete of the old one by its derived public id, then a targeted URL update.
func (s *userService) UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, userID, localPath, imageKindAvatar)
}

// UpdateCoverImage is UpdateAvatar for the cover image.
func (s *userService) UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, userID, localPath, imageKindCover)
}

type imageKind int

const (
	imageKindAvatar imageKind = iota
	imageKindCover
)

func (s *userService) replaceImage(ctx context.Context, userID, localPath string, kind imageKind) (*domain.User, error) {
	missingMsg, failedMsg := "Avatar is missing.", "Avatar upload failed."
	if kind == imageKindCover {
		missingMsg, failedMsg = "Cover Image is missing.", "Cover Image upload failed."
	}

	if localPath == "" {
		return nil, apperrors.NewBadRequestError(missingMsg)
	}

	uploaded, err := s.media.Upload(ctx, localPath)
	if err != nil || uploaded == nil || uploaded.URL == "" {
		return nil, apperrors.NewBadRequestError(failedMsg)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for image update: %w", err)
	}

	oldURL := user.AvatarURL
	if kind == imageKindCover {
		oldURL = user.CoverImageURL
	}
	if oldURL != "" {
		// A stale remote asset is non-fatal; deletion failures are only logged.
		if publicID := utils.PublicIDFromURL(oldURL); publicID != "" {
			if err := s.media.Delete(ctx, publicID); err != nil {
				middleware.GetLoggerFromCtx(ctx).Warn("Failed to delete previous media asset",
					slog.String("public_id", publicID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	if kind == imageKindCover {
		err = s.userRepo.UpdateCoverImage(ctx, userID, uploaded.URL)
	} else {
		err = s.userRepo.UpdateAvatar(ctx, userID, uploaded.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist new image URL: %w", err)
	}

	return s.userRepo.FindUserByID(ctx, userID)
}

// FindOrCreateFromGoogle resolves a verified Google identity to a local
// account, linking by provider id first and then by email, creating a fresh
// account on first sign-in.
func (s *userService) FindOrCreateFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, "google", info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by provider details: %w", err)
	}

	if info.Email != "" {
		if user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, "", info.Email); err == nil {
			return user, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
	}

	// First sign-in: derive a username from the email local part with a random
	// suffix to dodge collisions, and set an unguessable password.
	randomSecret, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while registering user.")
	}
	passwordHash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while registering user.")
	}

	localPart := info.Email
	if idx := strings.Index(localPart, "@"); idx > 0 {
		localPart = localPart[:idx]
	}
	username := strings.ToLower(localPart + "-" + randomSecret[:8])

	now := time.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Username:       username,
		Email:          info.Email,
		FullName:       info.Name,
		PasswordHash:   passwordHash,
		AvatarURL:      info.Picture,
		AuthProvider:   "google",
		ProviderUserID: info.ID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while registering user.")
	}
	return s.userRepo.FindUserByID(ctx, newUser.UserID)
}
