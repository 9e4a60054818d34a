// Package analyzer sequences one video analysis: cache check, id extraction,
// metadata fetch, completion request, response shaping, validation, cache
// write. The two network calls are strictly ordered because the prompt embeds
// the fetched metadata.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"videosense/api-gateway/internal/shaping"
	"videosense/api-gateway/internal/store"
	"videosense/api-gateway/internal/videoid"
	"videosense/api-gateway/models"
)

// Error kinds surfaced to the handler layer.
var (
	ErrInvalidURL     = errors.New("invalid URL")
	ErrMetadataFetch  = errors.New("metadata fetch failed")
	ErrAnalysisFailed = errors.New("failed to analyze video")
	ErrValidation     = errors.New("video analysis failed validation")
)

const systemPrompt = "You are a video analysis assistant. Given a YouTube video's title and creator, " +
	"produce a plausible transcript of its content followed by an analysis."

const userPromptTemplate = `Analyze the YouTube video titled %q by %s.

Respond in plain text with these sections, in this order:

Transcript
One line per utterance, optionally prefixed with a short speaker name and a colon.

Summary
A one-sentence summary of the video.

Key Points
- One bullet per point.

Topics
- One bullet per topic, with a relevance score from 1 to 10 in parentheses.

Sentiment
A single score between 0 and 1.

Questions
- Three follow-up questions a viewer might ask.`

// MetadataFetcher is the oEmbed collaborator.
type MetadataFetcher interface {
	Fetch(ctx context.Context, videoID string) (*models.VideoInfo, error)
}

// CompletionClient is the language-model collaborator.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service is the fetch orchestrator. All collaborators are injected.
type Service struct {
	store       store.Store
	metadata    MetadataFetcher
	completions CompletionClient
	shaper      *shaping.Shaper
	validate    *validator.Validate
	logger      *logrus.Logger
}

// NewService wires the orchestrator's collaborators.
func NewService(st store.Store, metadata MetadataFetcher, completions CompletionClient, shaper *shaping.Shaper, logger *logrus.Logger) *Service {
	return &Service{
		store:       st,
		metadata:    metadata,
		completions: completions,
		shaper:      shaper,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Analyze returns the cached record for videoURL if one exists; otherwise it
// runs the full fetch sequence and caches the result. A cache hit is terminal:
// no re-validation, no staleness check, no outbound calls.
func (s *Service) Analyze(ctx context.Context, videoURL string) (*models.VideoAnalysisRecord, error) {
	cached, err := s.store.GetByURL(ctx, videoURL)
	if err == nil {
		s.logger.WithField("video_url", videoURL).Info("Returning cached video analysis")
		return cached, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		// A failing cache read is treated as a miss.
		s.logger.WithError(err).WithField("video_url", videoURL).Warn("Cache lookup failed, recomputing analysis")
	}

	id, err := videoid.Extract(videoURL)
	if err != nil {
		return nil, ErrInvalidURL
	}

	info, err := s.metadata.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataFetch, err)
	}

	prompt := fmt.Sprintf(userPromptTemplate, info.Title, info.Creator)
	raw, err := s.completions.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	segments, chapters, analysis := s.shaper.Shape(raw)

	now := time.Now().UTC()
	record := &models.VideoAnalysisRecord{
		ID:         uuid.New(),
		VideoURL:   videoURL,
		VideoInfo:  *info,
		Transcript: segments,
		Chapters:   chapters,
		Analysis:   analysis,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.validate.Struct(record); err != nil {
		s.logger.WithError(err).WithField("video_url", videoURL).Error("Assembled record failed validation")
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// The cache write is best effort: the record is still returned when the
	// save fails.
	if err := s.store.Save(ctx, record); err != nil {
		s.logger.WithError(err).WithField("video_url", videoURL).Warn("Failed to cache video analysis")
	}

	s.logger.WithFields(logrus.Fields{
		"video_url": videoURL,
		"video_id":  id,
		"segments":  len(segments),
		"chapters":  len(chapters),
	}).Info("Video analysis completed")

	return record, nil
}

// Lookup returns the cached record for videoURL without triggering an
// analysis. It reports store.ErrNotFound on a miss.
func (s *Service) Lookup(ctx context.Context, videoURL string) (*models.VideoAnalysisRecord, error) {
	return s.store.GetByURL(ctx, videoURL)
}
