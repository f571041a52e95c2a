package services

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// IssueTokenPair signs a new access/refresh pair for the user and persists
	// the refresh token's hash on the user record via a targeted update.
	// Exactly one refresh token is valid per user; issuing a new pair
	// supersedes the previous refresh token.
	IssueTokenPair(ctx context.Context, userID string) (*TokenPair, error)

	// VerifyRefreshToken validates a raw refresh token: signature, expiry, the
	// existence of the embedded user, and equality with the token currently
	// stored on that user's record (detecting reuse of a superseded token).
	// Returns the user on success and Unauthorized otherwise.
	VerifyRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)
}
