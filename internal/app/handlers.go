package app

import (
	"github.com/miyannishar/eco-logic-backend/internal/http/handlers"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/store"
)

type Handlers struct {
	EcoAgent      *handlers.EcoAgentHandler
	ReportStorage *handlers.ReportStorageHandler
	Health        *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, reports store.ReportStore) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		EcoAgent:      handlers.NewEcoAgentHandler(log, serviceset.Products),
		ReportStorage: handlers.NewReportStorageHandler(log, serviceset.Reports, reports),
		Health:        handlers.NewHealthHandler(),
	}
}
