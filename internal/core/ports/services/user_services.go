package services

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines registration and credential verification.
type UserAuthSvc interface {
	// Register validates the request, uploads the avatar (required) and cover
	// image (optional) from their local temp paths, creates the user with a
	// lowercased username and returns the sanitized re-read of the record.
	// Fails with Conflict when email or username already exists and with
	// BadRequest when the avatar upload yields no result.
	Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error)

	// Login resolves the user by username or email and verifies the password.
	// NotFound when no user matches, Unauthorized on a password mismatch.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error)

	// Logout clears the stored refresh token, ending the active session.
	Logout(ctx context.Context, userID string) error

	// FindOrCreateFromGoogle resolves a verified Google identity to a local
	// account, creating one on first sign-in.
	FindOrCreateFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

// UserWriterSvc defines profile mutations for an authenticated user.
type UserWriterSvc interface {
	// ChangePassword verifies the old password and stores the new hash via a
	// targeted update. BadRequest on an old-password mismatch.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	// UpdateAccountDetails updates full name and/or email and returns the
	// sanitized record.
	UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error)

	// UpdateAvatar uploads the new avatar from its local temp path, deletes
	// the previous asset best-effort and persists the new URL.
	UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.User, error)

	// UpdateCoverImage is UpdateAvatar for the cover image.
	UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
	UserWriterSvc
}
