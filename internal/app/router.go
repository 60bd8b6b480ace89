package app

import (
	apphttp "github.com/miyannishar/eco-logic-backend/internal/http"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, handlerset Handlers) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:                  log,
		EcoAgentHandler:      handlerset.EcoAgent,
		ReportStorageHandler: handlerset.ReportStorage,
		HealthHandler:        handlerset.Health,
	})
}
