package app

import (
	"github.com/miyannishar/eco-logic-backend/internal/platform/envutil"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

type Config struct {
	Port       string
	BackendURL string

	MongoURI string
	MongoDB  string

	GeminiBaseURL        string
	GeminiAPIKey         string
	GeminiModel          string
	GeminiTimeoutSeconds int

	TavilyBaseURL        string
	TavilyAPIKey         string
	TavilyMaxResults     int
	TavilyTimeoutSeconds int
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:       envutil.Str("PORT", "8000"),
		BackendURL: envutil.Str("BACKEND_URL", "http://localhost:8000"),

		// Credentials always come from the environment; the default only
		// works against a local unauthenticated mongod.
		MongoURI: envutil.Str("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  envutil.Str("MONGO_DB", "eco-logic"),

		GeminiBaseURL:        envutil.Str("GEMINI_BASE_URL", ""),
		GeminiAPIKey:         envutil.Str("GEMINI_API_KEY", ""),
		GeminiModel:          envutil.Str("GEMINI_MODEL", ""),
		GeminiTimeoutSeconds: envutil.Int("GEMINI_TIMEOUT_SECONDS", 0),

		TavilyBaseURL:        envutil.Str("TAVILY_BASE_URL", ""),
		TavilyAPIKey:         envutil.Str("TAVILY_API_KEY", ""),
		TavilyMaxResults:     envutil.Int("TAVILY_MAX_RESULTS", 0),
		TavilyTimeoutSeconds: envutil.Int("TAVILY_TIMEOUT_SECONDS", 0),
	}
	log.Info("Loaded configuration",
		"port", cfg.Port,
		"backend_url", cfg.BackendURL,
		"mongo_db", cfg.MongoDB,
	)
	return cfg
}
