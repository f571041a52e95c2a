package repositories

import (
	"context"
	"time"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their lowercased username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves a user matching either identity field.
	// Empty arguments are ignored; at least one must be non-empty.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)

	// FindUserByProviderDetails retrieves a user by their external OAuth identity.
	FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateAccountDetails updates a user's full name and/or email.
	UpdateAccountDetails(ctx context.Context, user domain.User) error
}

// UserPartialWriter defines the targeted single-column updates used where the
// original system saved with validation skipped. Each touches exactly one
// concern and leaves every other field as is.
type UserPartialWriter interface {
	// UpdatePassword overwrites the stored password hash.
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error

	// UpdateAvatar overwrites the avatar URL.
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) error

	// UpdateCoverImage overwrites the cover image URL.
	UpdateCoverImage(ctx context.Context, userID string, coverImageURL string) error

	// UpdateRefreshToken overwrites the refresh token details for a user.
	// Last write wins; a previously stored token is silently invalidated.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserPartialWriter
}
