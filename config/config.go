package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, read from environment variables
// (with .env support for local development).
type Config struct {
	Port string

	// Completion endpoint.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// oEmbed metadata endpoint.
	OEmbedBaseURL string

	// StoreBackend selects the analysis cache: "memory" or "supabase".
	StoreBackend string
	SupabaseURL  string
	SupabaseKey  string

	LogLevel string
}

// Load reads the configuration. OPENAI_API_KEY is the only required variable;
// everything else has a working default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OEmbedBaseURL: getEnv("OEMBED_BASE_URL", "https://www.youtube.com"),
		StoreBackend:  getEnv("STORE_BACKEND", "memory"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_SERVICE_KEY"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}
	if cfg.StoreBackend == "supabase" && (cfg.SupabaseURL == "" || cfg.SupabaseKey == "") {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set when STORE_BACKEND=supabase")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
