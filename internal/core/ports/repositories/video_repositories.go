package repositories

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// VideoReader defines the read-only operations over the videos collection and
// a user's watch-history sequence.
type VideoReader interface {
	// FindWatchHistory resolves the user's watch-history references to full
	// video documents, each with its owner reduced to the
	// {fullName, userName, avatar} projection, preserving the stored order.
	FindWatchHistory(ctx context.Context, userID string) ([]domain.Video, error)
}

// VideoRepositoryFacade combines all video repository interfaces.
type VideoRepositoryFacade interface {
	VideoReader
}
