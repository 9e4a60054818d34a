// Package oembed fetches video metadata from YouTube's oEmbed endpoint. Only
// title and author come back from oEmbed; the rest of the display metadata is
// filled with placeholders.
package oembed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"videosense/api-gateway/models"
)

// DefaultBaseURL is the production YouTube oEmbed host.
const DefaultBaseURL = "https://www.youtube.com"

// response is the subset of the oEmbed JSON payload this service reads.
type response struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Client looks up video metadata over oEmbed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

// NewClient creates an oEmbed client against baseURL (DefaultBaseURL in
// production, an httptest server in tests).
func NewClient(baseURL string, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Fetch returns the metadata for a video id. A non-2xx upstream response is an
// error; the caller treats it as the whole analysis failing.
func (c *Client) Fetch(ctx context.Context, videoID string) (*models.VideoInfo, error) {
	watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	endpoint := fmt.Sprintf("%s/oembed?url=%s&format=json", c.baseURL, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building oembed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"video_id":    videoID,
			"status_code": resp.StatusCode,
		}).Warn("oEmbed endpoint returned non-success status")
		return nil, fmt.Errorf("oembed endpoint returned status %d", resp.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding oembed response: %w", err)
	}

	info := &models.VideoInfo{
		Title:         payload.Title,
		Creator:       payload.AuthorName,
		ThumbnailURL:  payload.ThumbnailURL,
		Duration:      "Unknown",
		PublishedDate: "Unknown",
		ViewCount:     "Unknown",
	}
	if info.ThumbnailURL == "" {
		info.ThumbnailURL = fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
	}

	c.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"title":    info.Title,
	}).Info("Fetched video metadata from oEmbed")

	return info, nil
}
