package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/bridge"
	"github.com/mnemo-ai/mnemo/pkg/events/hub"
	"github.com/mnemo-ai/mnemo/pkg/memory"
)

// Server is the HTTP server for the memory service.
type Server struct {
	config Config
	memory *memory.Service
	bridge *bridge.Bridge
	hub    *hub.Hub
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server. The memory service, bridge, and hub
// are injected so they can be shared with other components.
func NewServer(config Config, memsvc *memory.Service, br *bridge.Bridge, h *hub.Hub, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		memory: memsvc,
		bridge: br,
		hub:    h,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/api/memory", s.handleListMemory)
	app.Get("/api/memory/:userKey", s.handleGetMemory)
	app.Post("/api/agent/chat", s.handleAgentChat)

	s.registerObserverRoute()

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
