package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoInfo holds the display metadata for an analyzed video. Only Title and
// Creator come from the oEmbed lookup; the remaining fields are best-effort
// placeholders when the upstream response does not carry them.
type VideoInfo struct {
	Title         string `json:"title" validate:"required"`
	Creator       string `json:"creator" validate:"required"`
	ThumbnailURL  string `json:"thumbnailUrl" validate:"omitempty,url"`
	Duration      string `json:"duration"`
	PublishedDate string `json:"publishedDate"`
	ViewCount     string `json:"viewCount"`
}

// TranscriptSegment is one utterance of the derived transcript. Time windows
// are synthetic: fixed 5-unit increments assigned during shaping, not real
// timestamps.
type TranscriptSegment struct {
	ID        int     `json:"id" validate:"min=1"`
	Text      string  `json:"text" validate:"required"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time" validate:"gtfield=StartTime"`
	Speaker   string  `json:"speaker,omitempty"`
}

// TranscriptChapter is a contiguous run of segments. Concatenating all
// chapters' segments in order reproduces the full transcript.
type TranscriptChapter struct {
	Title     string              `json:"title" validate:"required"`
	StartTime float64             `json:"start_time"`
	EndTime   float64             `json:"end_time"`
	Segments  []TranscriptSegment `json:"segments" validate:"min=1,dive"`
}

// Topic is a detected subject with a relevance weight in [0,1].
type Topic struct {
	Name      string  `json:"name" validate:"required"`
	Relevance float64 `json:"relevance" validate:"min=0,max=1"`
}

// AnalysisResult is the semantic summary bundle derived from one raw model
// completion. Every field is populated; the shaping pipeline substitutes
// defaults when the completion lacks the expected structure.
type AnalysisResult struct {
	Summary        string   `json:"summary" validate:"required"`
	KeyPoints      []string `json:"keyPoints" validate:"min=1,dive,required"`
	Topics         []Topic  `json:"topics" validate:"min=1,dive"`
	SentimentScore float64  `json:"sentimentScore" validate:"min=0,max=1"`
	Questions      []string `json:"questions" validate:"min=1,dive,required"`
}

// VideoAnalysisRecord is the full cached result for one URL. Records are
// replaced wholesale on re-save, never mutated in place.
type VideoAnalysisRecord struct {
	ID         uuid.UUID           `json:"id"`
	VideoURL   string              `json:"video_url" validate:"required,url"`
	VideoInfo  VideoInfo           `json:"video_info" validate:"required"`
	Transcript []TranscriptSegment `json:"transcript" validate:"min=1,dive"`
	Chapters   []TranscriptChapter `json:"chapters,omitempty" validate:"omitempty,dive"`
	Analysis   *AnalysisResult     `json:"analysis,omitempty"`
	UserID     *uuid.UUID          `json:"user_id,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
