package domain

import "time"

// User represents a registered account in the domain.
// PasswordHash and the refresh-token fields are never serialized; sanitized
// views of a user go through dto.UserResponse instead.
type User struct {
	UserID        string `json:"userID"` // Primary Key (UUID)
	Username      string `json:"userName"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	PasswordHash  string `json:"-"`
	AvatarURL     string `json:"avatar"`
	CoverImageURL string `json:"coverImage,omitempty"`
	AuditFields

	// Refresh token state. At most one refresh token is valid per user at a
	// time; a new issuance overwrites the previous one (last write wins).
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	// External identity, set when the account was created via OAuth.
	AuthProvider   string `json:"-"`
	ProviderUserID string `json:"-"`
}
