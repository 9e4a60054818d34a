package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"videosense/api-gateway/internal/analyzer"
	"videosense/api-gateway/internal/store"
	"videosense/api-gateway/utils"
)

// AnalyzeVideoRequest defines the expected JSON structure for requesting an
// analysis.
type AnalyzeVideoRequest struct {
	VideoURL string `json:"video_url" validate:"required"`
}

var validate = validator.New()

// isYouTubeURL is the UX gate from the input form: a substring check on known
// host path fragments, not a security boundary.
func isYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com/") || strings.Contains(url, "youtu.be/")
}

// AnalyzeVideo handles POST /api/v1/videos/analyze. It returns the cached
// record when one exists, otherwise runs the full analysis pipeline.
func (h *ApplicationHandler) AnalyzeVideo(c *fiber.Ctx) error {
	payload := new(AnalyzeVideoRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.WithError(err).Error("Error parsing analyze request payload")
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	videoURL := utils.SanitizeInput(payload.VideoURL)
	if !isYouTubeURL(videoURL) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Please enter a valid YouTube video URL")
	}

	h.Logger.WithField("video_url", videoURL).Info("Received video analysis request")

	record, err := h.Analyzer.Analyze(c.Context(), videoURL)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrInvalidURL):
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid YouTube URL")
		case errors.Is(err, analyzer.ErrMetadataFetch):
			h.Logger.WithError(err).WithField("video_url", videoURL).Error("Metadata fetch failed")
			return utils.RespondWithError(c, fiber.StatusBadGateway, "Could not fetch video metadata")
		case errors.Is(err, analyzer.ErrValidation):
			h.Logger.WithError(err).WithField("video_url", videoURL).Error("Analysis record failed validation")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to analyze video")
		default:
			h.Logger.WithError(err).WithField("video_url", videoURL).Error("Video analysis failed")
			return utils.RespondWithError(c, fiber.StatusBadGateway, "Failed to analyze video")
		}
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, record)
}

// GetVideoAnalysis handles GET /api/v1/videos?url=... It only consults the
// cache and never triggers an analysis.
func (h *ApplicationHandler) GetVideoAnalysis(c *fiber.Ctx) error {
	videoURL := utils.SanitizeInput(c.Query("url"))
	if videoURL == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Query parameter 'url' is required")
	}

	record, err := h.Analyzer.Lookup(c.Context(), videoURL)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, "No analysis found for this URL")
		}
		h.Logger.WithError(err).WithField("video_url", videoURL).Error("Cache lookup failed")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to look up video analysis")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, record)
}
