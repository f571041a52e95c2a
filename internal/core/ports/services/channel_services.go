package services

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// ChannelSvcFacade defines the two social-graph read aggregations.
type ChannelSvcFacade interface {
	// GetChannelProfile returns the channel matching the username
	// (case-insensitive) with subscriber counts and whether the requesting
	// viewer subscribes to it. NotFound when no channel matches.
	GetChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error)

	// GetWatchHistory resolves the user's watch history in stored order.
	// BadRequest when the caller's identifier is not a valid record id.
	GetWatchHistory(ctx context.Context, userID string) ([]domain.Video, error)
}
