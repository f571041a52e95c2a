package repositories

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// SubscriptionReader defines the read-only aggregation over the subscriptions
// collection. This subsystem never writes subscriptions.
type SubscriptionReader interface {
	// GetChannelProfile matches a channel by lowercased username and joins the
	// subscription edges to produce subscriber counts and the viewer's
	// isSubscribed flag. Returns apperrors.ErrNotFound when no channel matches.
	GetChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error)
}

// SubscriptionRepositoryFacade combines all subscription repository interfaces.
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
}
