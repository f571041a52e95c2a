package domain

// ChannelProfile is the projection returned by the channel-profile aggregation.
type ChannelProfile struct {
	FullName                  string `json:"fullName"`
	Username                  string `json:"userName"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
	AvatarURL                 string `json:"avatar"`
	CoverImageURL             string `json:"coverImage,omitempty"`
	Email                     string `json:"email"`
}
