package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"videosense/api-gateway/config"
	"videosense/api-gateway/handlers"
	"videosense/api-gateway/internal/aiclient"
	"videosense/api-gateway/internal/analyzer"
	"videosense/api-gateway/internal/oembed"
	"videosense/api-gateway/internal/shaping"
	"videosense/api-gateway/internal/store"
	"videosense/api-gateway/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	config.InitLogger(cfg.LogLevel)
	logger := config.Log

	var analysisStore store.Store
	switch cfg.StoreBackend {
	case "supabase":
		client, err := config.NewSupabaseClient(cfg)
		if err != nil {
			logger.Fatalf("Failed to initialize Supabase: %v", err)
		}
		analysisStore = store.NewSupabaseStore(client)
		logger.Info("Using Supabase analysis store")
	case "memory":
		analysisStore = store.NewMemoryStore()
		logger.Info("Using in-memory analysis store")
	default:
		logger.Fatalf("Unknown STORE_BACKEND %q (expected \"memory\" or \"supabase\")", cfg.StoreBackend)
	}

	metadata := oembed.NewClient(cfg.OEmbedBaseURL, logger)
	completions := aiclient.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	service := analyzer.NewService(analysisStore, metadata, completions, shaping.New(), logger)
	handler := handlers.NewApplicationHandler(service, logger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Allow all origins for development
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(logger))

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	// API v1 routes
	apiV1 := app.Group("/api/v1")
	apiV1.Post("/videos/analyze", handler.AnalyzeVideo)
	apiV1.Get("/videos", handler.GetVideoAnalysis)

	logger.Infof("Starting API Gateway on port %s...", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
