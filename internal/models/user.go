package models

import (
	"database/sql"
	"time"
)

// User is the database row for a registered account.
// Username is stored lowercased; email and username carry unique constraints.
type User struct {
	UserID        string         `db:"user_id"`
	Username      string         `db:"username"`
	Email         string         `db:"email"`
	FullName      string         `db:"full_name"`
	PasswordHash  string         `db:"password_hash"`
	AvatarURL     string         `db:"avatar_url"`
	CoverImageURL sql.NullString `db:"cover_image_url"`
	AuditFields

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token

	// OAuth provider fields
	AuthProvider   sql.NullString `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
}

// AuditFields holds standard audit columns shared by all rows.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
