package http

import (
	"github.com/gin-gonic/gin"

	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

// Server wraps the configured engine so the app owns one handle for both
// serving and (in tests) direct dispatch via Engine.
type Server struct {
	log    *logger.Logger
	Engine *gin.Engine
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{
		log:    cfg.Log,
		Engine: NewRouter(cfg),
	}
}

func (s *Server) Run(address string) error {
	if s.log != nil {
		s.log.Info("HTTP server listening", "address", address)
	}
	return s.Engine.Run(address)
}
