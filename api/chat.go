package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// assistantID is the party identifier for the agent side of the exchange.
const assistantID = "agent"

// ChatRequest is the inbound chat webhook contract.
type ChatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// ChatMessage is one side of a chat exchange as returned to the client.
type ChatMessage struct {
	ID            string    `json:"id"`
	FromID        string    `json:"fromId"`
	ToID          string    `json:"toId"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
	IsAiAssistant bool      `json:"isAiAssistant"`
}

// ChatResponse returns both sides of the exchange.
type ChatResponse struct {
	UserMessage      ChatMessage `json:"userMessage"`
	AssistantMessage ChatMessage `json:"assistantMessage"`
}

// handleAgentChat runs one chat turn through the bridge. Agent failures are
// already recovered inside the bridge; an error here means the memory layer
// failed to persist, which surfaces as a 500.
func (s *Server) handleAgentChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if req.UserID == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "missing required fields: userId and message are required",
		})
	}

	s.logger.Debug("chat request received",
		zap.String("user", req.UserID),
	)

	reply, err := s.bridge.ProcessMessage(c.Context(), req.UserID, req.Message)
	if err != nil {
		s.logger.Error("chat turn failed",
			zap.String("user", req.UserID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal server error",
			Message: err.Error(),
		})
	}

	now := time.Now()

	return c.JSON(ChatResponse{
		UserMessage: ChatMessage{
			ID:            uuid.NewString(),
			FromID:        req.UserID,
			ToID:          assistantID,
			Content:       req.Message,
			Timestamp:     now,
			IsAiAssistant: false,
		},
		AssistantMessage: ChatMessage{
			ID:            uuid.NewString(),
			FromID:        assistantID,
			ToID:          req.UserID,
			Content:       reply,
			Timestamp:     now,
			IsAiAssistant: true,
		},
	})
}
