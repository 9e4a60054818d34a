package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"videosense/api-gateway/models"
)

// AnalyzerService defines the operations handlers expect from the analysis
// orchestrator. This allows for decoupling and easier testing.
type AnalyzerService interface {
	Analyze(ctx context.Context, videoURL string) (*models.VideoAnalysisRecord, error)
	Lookup(ctx context.Context, videoURL string) (*models.VideoAnalysisRecord, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Analyzer AnalyzerService
	Logger   *logrus.Logger
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(analyzer AnalyzerService, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Analyzer: analyzer,
		Logger:   logger,
	}
}
