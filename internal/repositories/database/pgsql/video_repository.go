package pgsql

import (
	"context"
	"fmt"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxVideoRepository struct {
	db *pgxpool.Pool
}

func newPgxVideoRepository(db *pgxpool.Pool) portsrepo.VideoRepositoryFacade {
	return &PgxVideoRepository{db: db}
}

var _ portsrepo.VideoRepositoryFacade = (*PgxVideoRepository)(nil)

// FindWatchHistory resolves the user's watch-history references to full video
// documents with each owner reduced to {fullName, userName, avatar}. Ordering
// follows the stored sequence position, not recency.
func (r *PgxVideoRepository) FindWatchHistory(ctx context.Context, userID string) ([]domain.Video, error) {
	query := `
        SELECT
            v.video_id,
            v.title,
            v.description,
            v.video_url,
            v.thumbnail_url,
            v.duration_seconds,
            v.views,
            v.created_at,
            o.full_name,
            o.username,
            o.avatar_url
        FROM watch_history wh
        JOIN videos v ON v.video_id = wh.video_id
        JOIN users o  ON o.user_id = v.owner_id
        WHERE wh.user_id = $1
        ORDER BY wh.position;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	videos := []domain.Video{}
	for rows.Next() {
		var v domain.Video
		err := rows.Scan(
			&v.VideoID,
			&v.Title,
			&v.Description,
			&v.VideoURL,
			&v.ThumbnailURL,
			&v.DurationSeconds,
			&v.Views,
			&v.CreatedAt,
			&v.Owner.FullName,
			&v.Owner.Username,
			&v.Owner.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch history row: %w", err)
		}
		videos = append(videos, v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating watch history rows: %w", rows.Err())
	}

	return videos, nil
}
