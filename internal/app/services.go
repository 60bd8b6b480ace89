package app

import (
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/services"
	"github.com/miyannishar/eco-logic-backend/internal/store"
)

type Services struct {
	Extractor  services.Extractor
	WebContext services.WebContextGatherer
	Products   services.ProductAnalysisService
	Reports    services.ReportAnalysisService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reports store.ReportStore) Services {
	log.Info("Wiring services...")

	extractor := services.NewExtractor(log, clients.Gemini)
	webContext := services.NewWebContextGatherer(log, clients.Tavily)

	return Services{
		Extractor:  extractor,
		WebContext: webContext,
		Products:   services.NewProductAnalysisService(log, extractor, webContext, reports),
		Reports:    services.NewReportAnalysisService(log, extractor, reports, cfg.BackendURL),
	}
}
