package dto

// RegisterUserRequest defines the multipart form fields for registration.
// The avatar (required) and coverImage (optional) files are bound separately
// by the handler.
type RegisterUserRequest struct {
	FullName string `form:"fullName" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	UserName string `form:"userName" binding:"required"`
	Password string `form:"password" binding:"required,min=6"`
}

// LoginRequest requires at least one of userName or email; the handler-level
// check mirrors the original contract (400 when both are absent).
type LoginRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token when it is not sent as a cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest defines the payload for a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateAccountRequest defines the data allowed for updating account details.
// Using pointers to differentiate between omitted fields and zero-value fields;
// at least one of the two must be present.
type UpdateAccountRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
}
