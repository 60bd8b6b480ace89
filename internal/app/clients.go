package app

import (
	"github.com/miyannishar/eco-logic-backend/internal/platform/gemini"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/platform/tavily"
)

type Clients struct {
	Gemini gemini.Client
	Tavily tavily.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	geminiClient, err := gemini.NewClient(log, gemini.Config{
		BaseURL:        cfg.GeminiBaseURL,
		APIKey:         cfg.GeminiAPIKey,
		Model:          cfg.GeminiModel,
		TimeoutSeconds: cfg.GeminiTimeoutSeconds,
	})
	if err != nil {
		return Clients{}, err
	}

	tavilyClient, err := tavily.NewClient(log, tavily.Config{
		BaseURL:        cfg.TavilyBaseURL,
		APIKey:         cfg.TavilyAPIKey,
		MaxResults:     cfg.TavilyMaxResults,
		TimeoutSeconds: cfg.TavilyTimeoutSeconds,
	})
	if err != nil {
		return Clients{}, err
	}

	return Clients{
		Gemini: geminiClient,
		Tavily: tavilyClient,
	}, nil
}
