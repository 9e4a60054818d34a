package shaping

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"videosense/api-gateway/models"
)

// section is the state of the analysis line scanner. A header keyword line
// switches the state; content lines are interpreted by the current state.
type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionKeyPoints
	sectionTopics
	sectionSentiment
	sectionQuestions
)

// sectionKeywords maps header keywords to states, in match-priority order.
var sectionKeywords = []struct {
	keyword string
	state   section
}{
	{"summary", sectionSummary},
	{"key points", sectionKeyPoints},
	{"topics", sectionTopics},
	{"sentiment", sectionSentiment},
	{"questions", sectionQuestions},
}

const maxDerivedKeyPoints = 4

var (
	// topicScorePattern matches a trailing parenthesized number like "(8)".
	topicScorePattern = regexp.MustCompile(`\s*\((\d+(?:\.\d+)?)\)\s*$`)
	numberPattern     = regexp.MustCompile(`\d+(?:\.\d+)?`)
	sentenceEnd       = regexp.MustCompile(`[.!?]+`)
)

// detectSection returns the state a line transitions to, if any. The match is
// case-insensitive and the first keyword wins.
func detectSection(line string) (section, bool) {
	lower := strings.ToLower(line)
	for _, k := range sectionKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.state, true
		}
	}
	return sectionNone, false
}

// Analysis scans the completion for summary, key points, topics, sentiment and
// follow-up questions. Structure the model did not produce is filled from the
// fallback rules, so the result is always complete.
func (s *Shaper) Analysis(raw string) *models.AnalysisResult {
	res := &models.AnalysisResult{}
	current := sectionNone
	sentimentSet := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if next, ok := detectSection(line); ok {
			current = next
			continue
		}

		switch current {
		case sectionSummary:
			// Only the first line of the section is kept.
			if res.Summary == "" {
				res.Summary = line
			}
		case sectionKeyPoints:
			if point, ok := stripBullet(line, "-", "*"); ok {
				res.KeyPoints = append(res.KeyPoints, point)
			}
		case sectionTopics:
			if name, ok := stripBullet(line, "-", "*"); ok {
				res.Topics = append(res.Topics, s.parseTopic(name))
			}
		case sectionSentiment:
			if !sentimentSet {
				if score, ok := parseSentiment(line); ok {
					res.SentimentScore = score
					sentimentSet = true
				}
			}
		case sectionQuestions:
			if q, ok := stripBullet(line, "-", "*", "?"); ok {
				res.Questions = append(res.Questions, q)
			}
		}
	}

	if !sentimentSet {
		res.SentimentScore = 0.5
	}
	s.applyFallbacks(res)
	return res
}

// parseTopic reads an optional trailing "(n)" score as relevance = n/10,
// removing it from the name. Topics without a score get a random relevance in
// [0.5, 1.0).
func (s *Shaper) parseTopic(name string) models.Topic {
	if m := topicScorePattern.FindStringSubmatch(name); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return models.Topic{
				Name:      strings.TrimSpace(topicScorePattern.ReplaceAllString(name, "")),
				Relevance: clamp01(v / 10),
			}
		}
	}
	return models.Topic{Name: name, Relevance: 0.5 + s.random()*0.5}
}

// parseSentiment takes the first numeric token on the line as the score,
// normalizing values above 1 by dividing by 10. Without a number it falls back
// to keyword matching.
func parseSentiment(line string) (float64, bool) {
	if tok := numberPattern.FindString(line); tok != "" {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			if v > 1 {
				v /= 10
			}
			return clamp01(v), true
		}
	}

	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "positive"):
		return 0.75, true
	case strings.Contains(lower, "negative"):
		return 0.25, true
	case strings.Contains(lower, "neutral"):
		return 0.5, true
	}
	return 0, false
}

// applyFallbacks fills fields the scan left empty. The derivation rules are
// independent and run before the last-resort defaults, so an empty input still
// yields a structurally complete result.
func (s *Shaper) applyFallbacks(res *models.AnalysisResult) {
	if len(res.KeyPoints) == 0 && res.Summary != "" {
		for _, sentence := range splitSentences(res.Summary) {
			res.KeyPoints = append(res.KeyPoints, sentence)
			if len(res.KeyPoints) == maxDerivedKeyPoints {
				break
			}
		}
	}

	if len(res.Topics) == 0 {
		for _, point := range res.KeyPoints {
			res.Topics = append(res.Topics, models.Topic{
				Name:      firstWords(point, 2),
				Relevance: 0.6 + s.random()*0.3,
			})
		}
	}

	if len(res.Questions) == 0 && res.Summary != "" {
		res.Questions = []string{
			fmt.Sprintf("What is meant by \"%s\"?", firstWords(res.Summary, 6)),
			"What are the key takeaways from this video?",
			"How do the main points relate to each other?",
		}
	}

	if res.Summary == "" {
		res.Summary = "No summary available"
	}
	if len(res.KeyPoints) == 0 {
		res.KeyPoints = []string{"No key points available"}
	}
	if len(res.Topics) == 0 {
		res.Topics = []models.Topic{{Name: "General Content", Relevance: 0.5}}
	}
	if len(res.Questions) == 0 {
		res.Questions = []string{"What is this video about?"}
	}
}

// stripBullet removes a leading list marker and returns the remainder, if any.
func stripBullet(line string, markers ...string) (string, bool) {
	for _, m := range markers {
		if strings.HasPrefix(line, m) {
			rest := strings.TrimSpace(strings.TrimPrefix(line, m))
			return rest, rest != ""
		}
	}
	return "", false
}

func splitSentences(text string) []string {
	var out []string
	for _, part := range sentenceEnd.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
