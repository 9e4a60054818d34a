// Package shaping converts a raw language-model completion into the structured
// transcript, chapter, and analysis records served by the API. The model's
// output has no guaranteed shape, so everything in here is a line-by-line
// heuristic that degrades to defaults instead of failing.
package shaping

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"videosense/api-gateway/models"
)

const (
	// segmentWindow is the synthetic duration assigned to every accepted
	// transcript line. The model output carries no real timing.
	segmentWindow = 5.0

	defaultSpeaker = "Speaker"

	// targetChapters is the number of chapters the grouping aims for;
	// minChapterSize is the floor on segments per chapter.
	targetChapters = 4
	minChapterSize = 3
)

// speakerPattern matches a "Name:" prefix of under 20 characters.
var speakerPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 .'-]{0,18}):\s*(.*)$`)

// Shaper turns raw completion text into the derived structures. The random
// source backs the cosmetic fallback relevance values and is injectable so
// tests can pin it.
type Shaper struct {
	random func() float64
}

// Option customizes Shaper creation.
type Option func(*Shaper)

// WithRandom replaces the fallback relevance source. The function must return
// values in [0,1).
func WithRandom(fn func() float64) Option {
	return func(s *Shaper) {
		s.random = fn
	}
}

// New returns a Shaper using the shared math/rand source by default.
func New(opts ...Option) *Shaper {
	s := &Shaper{random: rand.Float64}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shape runs the full pipeline on one completion: segments, then chapters,
// then the analysis scan. It never fails; missing structure in the input only
// produces emptier output.
func (s *Shaper) Shape(raw string) ([]models.TranscriptSegment, []models.TranscriptChapter, *models.AnalysisResult) {
	segments := s.Segments(raw)
	return segments, s.Chapters(segments), s.Analysis(raw)
}

// Segments splits raw text into transcript segments. Blank lines and
// structural headers are dropped; every surviving line gets a sequential id
// and a gapless 5-unit time window. A short "Name:" prefix is read as the
// speaker, otherwise a generic label is used.
func (s *Shaper) Segments(raw string) []models.TranscriptSegment {
	var segments []models.TranscriptSegment
	var clock float64
	id := 1

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isStructuralHeader(line) {
			continue
		}

		speaker := defaultSpeaker
		text := line
		if m := speakerPattern.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[2]) != "" {
			speaker = strings.TrimSpace(m[1])
			text = strings.TrimSpace(m[2])
		}

		segments = append(segments, models.TranscriptSegment{
			ID:        id,
			Text:      text,
			StartTime: clock,
			EndTime:   clock + segmentWindow,
			Speaker:   speaker,
		})
		id++
		clock += segmentWindow
	}

	return segments
}

// Chapters partitions segments into consecutive runs of max(3, N/4) segments,
// targeting about four chapters. The last run may be shorter. Chapter bounds
// come from the first and last contained segment.
func (s *Shaper) Chapters(segments []models.TranscriptSegment) []models.TranscriptChapter {
	if len(segments) == 0 {
		return nil
	}

	size := len(segments) / targetChapters
	if size < minChapterSize {
		size = minChapterSize
	}

	var chapters []models.TranscriptChapter
	for start := 0; start < len(segments); start += size {
		end := start + size
		if end > len(segments) {
			end = len(segments)
		}
		run := segments[start:end]
		chapters = append(chapters, models.TranscriptChapter{
			Title:     fmt.Sprintf("Chapter %d", len(chapters)+1),
			StartTime: run[0].StartTime,
			EndTime:   run[len(run)-1].EndTime,
			Segments:  run,
		})
	}

	return chapters
}

// isStructuralHeader reports whether a line looks like a section header rather
// than transcript content.
func isStructuralHeader(line string) bool {
	return strings.Contains(line, "#") ||
		strings.Contains(line, "Transcript") ||
		strings.Contains(line, "Chapter")
}
