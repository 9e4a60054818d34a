package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videosense/api-gateway/internal/analyzer"
	"videosense/api-gateway/internal/store"
	"videosense/api-gateway/models"
)

type fakeAnalyzer struct {
	analyzeCalls int
	record       *models.VideoAnalysisRecord
	analyzeErr   error
	lookupErr    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) (*models.VideoAnalysisRecord, error) {
	f.analyzeCalls++
	return f.record, f.analyzeErr
}

func (f *fakeAnalyzer) Lookup(_ context.Context, _ string) (*models.VideoAnalysisRecord, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.record, nil
}

func newTestApp(fa *fakeAnalyzer) *fiber.App {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := NewApplicationHandler(fa, logger)

	app := fiber.New()
	app.Post("/api/v1/videos/analyze", h.AnalyzeVideo)
	app.Get("/api/v1/videos", h.GetVideoAnalysis)
	return app
}

func testRecord() *models.VideoAnalysisRecord {
	return &models.VideoAnalysisRecord{
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		VideoInfo: models.VideoInfo{
			Title:   "A Video",
			Creator: "A Creator",
		},
	}
}

func postAnalyze(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestAnalyzeVideoSuccess(t *testing.T) {
	fa := &fakeAnalyzer{record: testRecord()}
	app := newTestApp(fa)

	resp := postAnalyze(t, app, `{"video_url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, fa.analyzeCalls)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "success", envelope["status"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", data["video_url"])
}

func TestAnalyzeVideoRejectsNonYouTubeURL(t *testing.T) {
	fa := &fakeAnalyzer{record: testRecord()}
	app := newTestApp(fa)

	resp := postAnalyze(t, app, `{"video_url":"https://vimeo.com/123456"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, fa.analyzeCalls, "UX gate must reject before invoking the analyzer")
}

func TestAnalyzeVideoRejectsMissingURL(t *testing.T) {
	app := newTestApp(&fakeAnalyzer{})
	resp := postAnalyze(t, app, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeVideoErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid url", analyzer.ErrInvalidURL, http.StatusBadRequest},
		{"metadata failure", analyzer.ErrMetadataFetch, http.StatusBadGateway},
		{"validation failure", analyzer.ErrValidation, http.StatusInternalServerError},
		{"completion failure", analyzer.ErrAnalysisFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeAnalyzer{analyzeErr: tt.err})
			resp := postAnalyze(t, app, `{"video_url":"https://youtu.be/dQw4w9WgXcQ"}`)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			envelope := decodeEnvelope(t, resp)
			assert.Equal(t, "error", envelope["status"])
		})
	}
}

func TestGetVideoAnalysisHit(t *testing.T) {
	app := newTestApp(&fakeAnalyzer{record: testRecord()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetVideoAnalysisMiss(t *testing.T) {
	app := newTestApp(&fakeAnalyzer{lookupErr: store.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetVideoAnalysisRequiresURL(t *testing.T) {
	app := newTestApp(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
