package dto

import (
	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// ChannelProfileResponse is the fixed projection returned for a channel.
type ChannelProfileResponse struct {
	FullName                  string `json:"fullName"`
	UserName                  string `json:"userName"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage,omitempty"`
	Email                     string `json:"email"`
}

// ToChannelProfileResponse converts the aggregation result to its response view.
func ToChannelProfileResponse(p *domain.ChannelProfile) ChannelProfileResponse {
	return ChannelProfileResponse{
		FullName:                  p.FullName,
		UserName:                  p.Username,
		SubscribersCount:          p.SubscribersCount,
		ChannelsSubscribedToCount: p.ChannelsSubscribedToCount,
		IsSubscribed:              p.IsSubscribed,
		Avatar:                    p.AvatarURL,
		CoverImage:                p.CoverImageURL,
		Email:                     p.Email,
	}
}

// WatchHistoryVideoResponse is one resolved watch-history entry, with the
// video's owner reduced to the {fullName, userName, avatar} projection.
type WatchHistoryVideoResponse struct {
	VideoID     string     `json:"videoID"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	VideoURL    string     `json:"videoUrl"`
	Thumbnail   string     `json:"thumbnail"`
	Duration    float64    `json:"duration"`
	Views       int64      `json:"views"`
	Owner       OwnerBrief `json:"owner"`
}

// OwnerBrief is the reduced owner projection used inside watch history.
type OwnerBrief struct {
	FullName string `json:"fullName"`
	UserName string `json:"userName"`
	Avatar   string `json:"avatar"`
}

// ToWatchHistoryResponse converts resolved videos to the response view,
// preserving order.
func ToWatchHistoryResponse(videos []domain.Video) []WatchHistoryVideoResponse {
	out := make([]WatchHistoryVideoResponse, len(videos))
	for i, v := range videos {
		out[i] = WatchHistoryVideoResponse{
			VideoID:     v.VideoID,
			Title:       v.Title,
			Description: v.Description,
			VideoURL:    v.VideoURL,
			Thumbnail:   v.ThumbnailURL,
			Duration:    v.DurationSeconds,
			Views:       v.Views,
			Owner: OwnerBrief{
				FullName: v.Owner.FullName,
				UserName: v.Owner.Username,
				Avatar:   v.Owner.AvatarURL,
			},
		}
	}
	return out
}
