package dto

import (
	"time"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// UserResponse is the sanitized view of a user record. The password hash and
// refresh-token fields are never part of it.
type UserResponse struct {
	UserID     string    `json:"userID"`
	UserName   string    `json:"userName"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its sanitized response view.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		UserName:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.AvatarURL,
		CoverImage: user.CoverImageURL,
		CreatedAt:  user.CreatedAt,
	}
}
