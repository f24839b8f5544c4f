package server

import (
	"github.com/gin-gonic/gin"
	"github.com/lmbridge/lm-proxy/internal/config"
	"github.com/lmbridge/lm-proxy/internal/upstream"
	"go.uber.org/zap"
)

// Server represents the API server
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	upstream *upstream.Client
	metrics  *metrics
}

// New creates a new server instance
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	gin.SetMode(cfg.Server.Mode)

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		router:   gin.New(),
		upstream: upstream.NewClient(cfg.Upstream.URL, logger),
		metrics:  newMetrics(cfg.Metrics),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Router returns the gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggerMiddleware())

	if s.cfg.Security.EnableCORS {
		s.router.Use(s.corsMiddleware())
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.root)
	s.router.GET("/health", s.healthCheck)

	if s.cfg.Metrics.Enabled {
		s.router.GET("/metrics", gin.WrapH(s.metrics.handler()))
	}

	// OpenAI-compatible chat convention
	s.router.POST("/v1/chat/completions", s.chatCompletions)
	s.router.GET("/v1/models", s.listModels)

	// Ollama-compatible prompt convention
	s.router.POST("/api/generate", s.generate)
}
