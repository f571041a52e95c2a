package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSubscriptionRepository struct {
	db *pgxpool.Pool
}

func newPgxSubscriptionRepository(db *pgxpool.Pool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{db: db}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

// GetChannelProfile matches the channel by lowercased username and joins the
// subscription edges in a single round-trip: subscribers of the channel,
// channels the user subscribes to, and whether the viewer is among the
// channel's subscribers.
func (r *PgxSubscriptionRepository) GetChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error) {
	query := `
        SELECT
            u.full_name,
            u.username,
            u.email,
            u.avatar_url,
            COALESCE(u.cover_image_url, ''),
            (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.user_id)    AS subscribers_count,
            (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.user_id) AS channels_subscribed_to_count,
            EXISTS (
                SELECT 1 FROM subscriptions s
                WHERE s.channel_id = u.user_id AND s.subscriber_id = $2
            ) AS is_subscribed
        FROM users u
        WHERE u.username = lower($1);
    `
	var profile domain.ChannelProfile
	err := r.db.QueryRow(ctx, query, username, viewerID).Scan(
		&profile.FullName,
		&profile.Username,
		&profile.Email,
		&profile.AvatarURL,
		&profile.CoverImageURL,
		&profile.SubscribersCount,
		&profile.ChannelsSubscribedToCount,
		&profile.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to aggregate channel profile for %q: %w", username, err)
	}
	return &profile, nil
}
