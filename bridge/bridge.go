// Package bridge orchestrates one chat turn: it loads the user's memory,
// extracts facts from the inbound message, composes a memory-aware prompt,
// calls the agent service, and appends both sides of the exchange to the
// transcript.
//
// Agent failures are recovered locally with a fallback reply so a chat
// request always gets a response. Memory persistence failures are not
// recovered: they propagate to the HTTP layer as a hard error.
package bridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/pkg/agent"
	"github.com/mnemo-ai/mnemo/pkg/memory"
)

// Bridge turns inbound chat messages into memory reads/writes plus an
// outbound agent call.
type Bridge struct {
	memory *memory.Service
	agent  agent.Caller
	logger *zap.Logger

	now func() time.Time
}

// New creates a bridge over the given memory service and agent caller.
func New(svc *memory.Service, caller agent.Caller, logger *zap.Logger) *Bridge {
	return &Bridge{
		memory: svc,
		agent:  caller,
		logger: logger,
		now:    time.Now,
	}
}

// ProcessMessage runs one full turn for a user and returns the reply text.
//
// The memory is loaded before any writes, so the recalled name and the
// first-message flag reflect the state as of message arrival: a name
// introduced in this very message takes effect from the next turn on. The
// human message is appended before the agent call, so the transcript stays
// complete even when the agent fails.
func (b *Bridge) ProcessMessage(ctx context.Context, userID, message string) (string, error) {
	doc, err := b.memory.LoadMemory(ctx, userID)
	if err != nil && !memory.IsNotFound(err) {
		return "", fmt.Errorf("loading memory for %s: %w", userID, err)
	}

	if err := b.memory.AddConversationMessage(ctx, userID, memory.Message{
		Content: message,
		Type:    memory.MessageHuman,
	}); err != nil {
		return "", err
	}

	name, introduced := ExtractName(message)
	if introduced {
		if err := b.rememberName(ctx, userID, name); err != nil {
			return "", err
		}
	}

	userName := unknownName
	if doc != nil && doc.UserMemory.Name != nil && *doc.UserMemory.Name != "" {
		userName = *doc.UserMemory.Name
	}

	firstMessage := doc == nil || len(doc.ConversationMemory.Messages) == 0

	reply := b.callAgent(ctx, userID, message, userName, introduced, firstMessage)

	if err := b.memory.AddConversationMessage(ctx, userID, memory.Message{
		Content: reply,
		Type:    memory.MessageAI,
	}); err != nil {
		return "", err
	}

	return reply, nil
}

// rememberName writes an introduced name to both the user record and the
// entity slot.
func (b *Bridge) rememberName(ctx context.Context, userID, name string) error {
	nowMs := b.now().UnixMilli()

	if err := b.memory.UpdateUserMemory(ctx, userID, memory.UserPatch{
		Name:            &name,
		LastInteraction: &nowMs,
	}); err != nil {
		return err
	}

	source := memory.SourceDirectIntroduction
	if err := b.memory.UpdateEntityMemory(ctx, userID, memory.EntityPatch{
		Name:   &name,
		Source: &source,
	}); err != nil {
		return err
	}

	b.logger.Info("remembered user name",
		zap.String("user", userID),
		zap.String("name", name),
	)

	return nil
}

// callAgent performs the outbound call and absorbs every failure into the
// fallback reply.
func (b *Bridge) callAgent(ctx context.Context, userID, message, userName string, introduced, firstMessage bool) string {
	req := &agent.Request{
		UserID:  userID,
		Message: message,
		Context: &agent.RequestContext{
			SystemPrompt: composePrompt(userName, firstMessage),
			MemoryContext: &agent.MemoryContext{
				UserName:           userName,
				IsNameIntroduction: introduced,
				IsFirstMessage:     firstMessage,
			},
			Timestamp: b.now().UTC().Format(time.RFC3339),
		},
	}

	resp, err := b.agent.Call(ctx, req)
	if err != nil {
		b.logger.Warn("agent call failed, using fallback reply",
			zap.String("user", userID),
			zap.Error(err),
		)
		return fallbackReply
	}

	// On a first message some agent backends answer with their stock
	// self-introduction; substitute the memory-aware greeting instead.
	if firstMessage && strings.Contains(resp.Response, stockIntroMarker) {
		return firstGreeting(userName)
	}

	return resp.Response
}
