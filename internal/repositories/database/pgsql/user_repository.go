package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	"github.com/vidtube/vidtube_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		AvatarURL:    d.AvatarURL,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
	if d.CoverImageURL != "" {
		m.CoverImageURL = sql.NullString{String: d.CoverImageURL, Valid: true}
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	if d.AuthProvider != "" {
		m.AuthProvider = sql.NullString{String: d.AuthProvider, Valid: true}
		m.ProviderUserID = sql.NullString{String: d.ProviderUserID, Valid: true}
	}
	return m
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		AvatarURL:    m.AvatarURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if m.CoverImageURL.Valid {
		d.CoverImageURL = m.CoverImageURL.String
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	if m.AuthProvider.Valid {
		d.AuthProvider = m.AuthProvider.String
		d.ProviderUserID = m.ProviderUserID.String
	}
	return d
}

const userColumns = `user_id, username, email, full_name, password_hash, avatar_url, cover_image_url,
		refresh_token_hash, refresh_token_expiry_time, auth_provider, provider_user_id,
		created_at, last_updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.FullName,
		&m.PasswordHash,
		&m.AvatarURL,
		&m.CoverImageURL,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := toModelUser(user)
	query := `
        INSERT INTO users (user_id, username, email, full_name, password_hash, avatar_url, cover_image_url,
            refresh_token_hash, refresh_token_expiry_time, auth_provider, provider_user_id,
            created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Username,
		modelUser.Email,
		modelUser.FullName,
		modelUser.PasswordHash,
		modelUser.AvatarURL,
		modelUser.CoverImageURL,
		modelUser.RefreshTokenHash,
		modelUser.RefreshTokenExpiryTime,
		modelUser.AuthProvider,
		modelUser.ProviderUserID,
		modelUser.CreatedAt,
		modelUser.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	domainUser := toDomainUser(*modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = lower($1);`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	domainUser := toDomainUser(*modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	// Empty arguments never match; the username comparison is case-insensitive
	// because usernames are stored lowercased.
	query := `SELECT ` + userColumns + ` FROM users
		WHERE ($1 <> '' AND username = lower($1)) OR ($2 <> '' AND email = $2);`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, username, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username or email: %w", err)
	}
	domainUser := toDomainUser(*modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_provider = $1 AND provider_user_id = $2;`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, authProvider, providerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by provider details: %w", err)
	}
	domainUser := toDomainUser(*modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) UpdateAccountDetails(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET full_name = $1, email = $2, last_updated_at = $3
        WHERE user_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		user.FullName,
		user.Email,
		user.LastUpdatedAt,
		user.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update account details: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// The Update* methods below are deliberately targeted single-column writes:
// they are the Go rendering of the original's save with validation skipped, so
// a partial update can never be blocked by unrelated fields.

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	return r.updateColumn(ctx, userID, "password_hash", passwordHash)
}

func (r *PgxUserRepository) UpdateAvatar(ctx context.Context, userID string, avatarURL string) error {
	return r.updateColumn(ctx, userID, "avatar_url", avatarURL)
}

func (r *PgxUserRepository) UpdateCoverImage(ctx context.Context, userID string, coverImageURL string) error {
	return r.updateColumn(ctx, userID, "cover_image_url", coverImageURL)
}

func (r *PgxUserRepository) updateColumn(ctx context.Context, userID, column, value string) error {
	// column is always one of the fixed names above, never caller input.
	query := fmt.Sprintf(`UPDATE users SET %s = $1, last_updated_at = $2 WHERE user_id = $3;`, column)
	cmdTag, err := r.db.Exec(ctx, query, value, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry_time = $2, last_updated_at = $3
        WHERE user_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, refreshTokenHash, refreshTokenExpiryTime, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, last_updated_at = $1
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
