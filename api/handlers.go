package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/pkg/memory"
)

// ErrorResponse is the JSON error body for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleGetMemory returns the full memory document for a user key.
// Absence is 404; a malformed persisted document or any other load failure
// is 500.
func (s *Server) handleGetMemory(c *fiber.Ctx) error {
	key := c.Params("userKey")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "userKey parameter required"})
	}

	doc, err := s.memory.LoadMemory(c.Context(), key)
	if err != nil {
		if memory.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "memory not found"})
		}

		s.logger.Error("loading memory failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load memory"})
	}

	return c.JSON(doc)
}

// handleListMemory returns the user keys that currently have a memory
// document.
func (s *Server) handleListMemory(c *fiber.Ctx) error {
	keys, err := s.memory.ListKeys(c.Context())
	if err != nil {
		s.logger.Error("listing memory keys failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list memory keys"})
	}

	if keys == nil {
		keys = []string{}
	}

	return c.JSON(map[string]any{
		"count": len(keys),
		"keys":  keys,
	})
}
