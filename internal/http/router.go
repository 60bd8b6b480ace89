package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/miyannishar/eco-logic-backend/internal/http/handlers"
	httpMW "github.com/miyannishar/eco-logic-backend/internal/http/middleware"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	EcoAgentHandler      *httpH.EcoAgentHandler
	ReportStorageHandler *httpH.ReportStorageHandler
	HealthHandler        *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if cfg.EcoAgentHandler != nil {
		eco := r.Group("/eco-agent")
		{
			eco.GET("/test", cfg.EcoAgentHandler.Test)
			eco.POST("/product-details", cfg.EcoAgentHandler.ProductDetails)
		}
	}

	if cfg.ReportStorageHandler != nil {
		reports := r.Group("/report-storage")
		{
			reports.GET("/test", cfg.ReportStorageHandler.Test)
			reports.POST("/analyse-and-upload", cfg.ReportStorageHandler.AnalyseAndUpload)
			reports.GET("/fetch-user-reports-url", cfg.ReportStorageHandler.FetchUserReports)
			reports.POST("/fetch-user-reports-url", cfg.ReportStorageHandler.FetchUserReports)
			reports.GET("/files/:file_id", cfg.ReportStorageHandler.GetFile)
			reports.GET("/download/:file_id/:filename", cfg.ReportStorageHandler.DownloadFile)
		}
	}

	return r
}
