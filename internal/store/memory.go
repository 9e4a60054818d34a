package store

import (
	"context"

	gocache "github.com/patrickmn/go-cache"

	"videosense/api-gateway/models"
)

// MemoryStore keeps records in process memory. Entries never expire; unbounded
// growth is accepted for this system's scope.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// GetByURL implements Store.
func (s *MemoryStore) GetByURL(_ context.Context, videoURL string) (*models.VideoAnalysisRecord, error) {
	v, ok := s.cache.Get(videoURL)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*models.VideoAnalysisRecord), nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, record *models.VideoAnalysisRecord) error {
	s.cache.Set(record.VideoURL, record, gocache.NoExpiration)
	return nil
}
