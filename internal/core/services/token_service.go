package services

import (
	"context"
	"errors"
	"time"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
	"github.com/vidtube/vidtube_backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for the access/refresh lifecycle.
// It requires access to application configuration (for secrets and expiry
// times) and the user repository (to load users and persist the current
// refresh-token hash).
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// IssueTokenPair signs a new access/refresh pair for the user and stores the
// refresh token's hash on the user record. The stored value is overwritten on
// every issuance (last write wins), which silently invalidates the previously
// issued refresh token.
func (s *tokenService) IssueTokenPair(ctx context.Context, userID string) (*portssvc.TokenPair, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while generating refresh and access token.")
	}

	accessToken, err := utils.GenerateAccessJWT(
		user.UserID, user.Email, user.Username, user.FullName,
		s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiry, s.cfg.JWTIssuer,
	)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while generating refresh and access token.")
	}

	refreshToken, err := utils.GenerateRefreshJWT(
		user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiry, s.cfg.JWTIssuer,
	)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while generating refresh and access token.")
	}

	// Persist via the targeted update so token issuance can never be blocked
	// by validation of unrelated user fields.
	expiry := time.Now().Add(s.cfg.RefreshTokenExpiry)
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), expiry); err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while generating refresh and access token.")
	}

	return &portssvc.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyRefreshToken validates the raw token's signature and expiry, then
// checks that the embedded user still exists and that the token matches the
// value currently stored on the record. A superseded token passes the
// signature check but fails the stored-hash comparison.
func (s *tokenService) VerifyRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	if refreshToken == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized request.")
	}

	claims, err := utils.ParseAndValidateRefreshJWT(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token: " + err.Error())
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token.")
		}
		return nil, apperrors.NewInternalServerError("Failed to verify refresh token.")
	}

	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.NewUnauthorizedError("Refresh token is expired or used.")
	}
	if user.RefreshTokenExpiryTime != nil && time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.NewUnauthorizedError("Refresh token is expired or used.")
	}

	return user, nil
}
