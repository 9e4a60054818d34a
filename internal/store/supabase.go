package store

import (
	"context"
	"fmt"

	supa "github.com/supabase-community/supabase-go"

	"videosense/api-gateway/models"
)

const analysisTable = "video_analyses"

// SupabaseStore persists records in the hosted video_analyses table. The
// record shape is the contract; there is no migration logic.
type SupabaseStore struct {
	client *supa.Client
}

// NewSupabaseStore wraps an initialized Supabase client.
func NewSupabaseStore(client *supa.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

// GetByURL implements Store.
func (s *SupabaseStore) GetByURL(_ context.Context, videoURL string) (*models.VideoAnalysisRecord, error) {
	var records []models.VideoAnalysisRecord
	_, err := s.client.From(analysisTable).
		Select("*", "", false).
		Eq("video_url", videoURL).
		ExecuteTo(&records)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", analysisTable, err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

// Save implements Store. Upserts on video_url so a re-save replaces the
// existing record wholesale.
func (s *SupabaseStore) Save(_ context.Context, record *models.VideoAnalysisRecord) error {
	_, _, err := s.client.From(analysisTable).
		Insert(record, true, "video_url", "representation", "").
		Execute()
	if err != nil {
		return fmt.Errorf("saving to %s: %w", analysisTable, err)
	}
	return nil
}
