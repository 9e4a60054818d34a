// Package store persists video-analysis records keyed by video URL. The store
// is a cache in front of the analysis pipeline: last write wins, no expiry, no
// eviction.
package store

import (
	"context"
	"errors"

	"videosense/api-gateway/models"
)

// ErrNotFound is returned when no record exists for a URL.
var ErrNotFound = errors.New("video analysis not found")

// Store is the cache contract the orchestrator depends on. Implementations
// are injected so tests can substitute an isolated instance.
type Store interface {
	// GetByURL returns the cached record for a video URL, or ErrNotFound.
	GetByURL(ctx context.Context, videoURL string) (*models.VideoAnalysisRecord, error)
	// Save stores a record under its video URL, replacing any existing one
	// wholesale.
	Save(ctx context.Context, record *models.VideoAnalysisRecord) error
}
