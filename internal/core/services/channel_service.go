package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

type channelService struct {
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	videoRepo        portsrepo.VideoRepositoryFacade
}

// NewChannelService creates the service backing the channel-profile and
// watch-history aggregations.
func NewChannelService(subscriptionRepo portsrepo.SubscriptionRepositoryFacade, videoRepo portsrepo.VideoRepositoryFacade) portssvc.ChannelSvcFacade {
	return &channelService{
		subscriptionRepo: subscriptionRepo,
		videoRepo:        videoRepo,
	}
}

var _ portssvc.ChannelSvcFacade = (*channelService)(nil)

// GetChannelProfile looks up a channel by username and attaches subscriber
// counts plus the viewer's own subscription flag. viewerID may be empty for
// anonymous viewers, in which case isSubscribed is always false.
func (s *channelService) GetChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewNotFoundError("Username not found")
	}

	profile, err := s.subscriptionRepo.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Channel not found.")
		}
		return nil, fmt.Errorf("failed to load channel profile: %w", err)
	}
	return profile, nil
}

// GetWatchHistory returns the caller's watch history in stored order.
func (s *channelService) GetWatchHistory(ctx context.Context, userID string) ([]domain.Video, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid user ID")
	}

	videos, err := s.videoRepo.FindWatchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}
	return videos, nil
}
