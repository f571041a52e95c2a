package domain

import "time"

// VideoOwner is the reduced user projection attached to videos in reads.
type VideoOwner struct {
	FullName  string `json:"fullName"`
	Username  string `json:"userName"`
	AvatarURL string `json:"avatar"`
}

// Video is a video document referenced by a user's watch history. This
// subsystem only reads it.
type Video struct {
	VideoID         string     `json:"videoID"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	VideoURL        string     `json:"videoUrl"`
	ThumbnailURL    string     `json:"thumbnailUrl"`
	DurationSeconds float64    `json:"duration"`
	Views           int64      `json:"views"`
	Owner           VideoOwner `json:"owner"`
	CreatedAt       time.Time  `json:"createdAt"`
}
