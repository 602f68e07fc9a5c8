// Package agent defines the boundary to the external conversational-agent
// service. The agent is an opaque request/response collaborator: the bridge
// composes a request with memory context, and the agent returns a reply.
package agent

import "context"

// MemoryContext carries recalled facts alongside an outbound request.
type MemoryContext struct {
	UserName           string `json:"user_name,omitempty"`
	IsNameIntroduction bool   `json:"is_name_introduction,omitempty"`
	IsFirstMessage     bool   `json:"is_first_message,omitempty"`
}

// RequestContext is the optional context block sent with a request.
type RequestContext struct {
	SystemPrompt  string         `json:"system_prompt,omitempty"`
	MemoryContext *MemoryContext `json:"memory_context,omitempty"`
	Timestamp     string         `json:"timestamp,omitempty"`
}

// Request is one outbound call to the agent service.
type Request struct {
	UserID  string          `json:"userId"`
	Message string          `json:"message"`
	Context *RequestContext `json:"context,omitempty"`
}

// Response is the agent's reply. Sentiment and Reason are optional
// annotations some agent backends attach.
type Response struct {
	Response  string `json:"response"`
	Sentiment string `json:"sentiment,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Caller sends one request to the agent service and returns its reply.
// Implementations own their timeout behavior; the bridge treats any error,
// including timeouts, as a call failure and falls back.
type Caller interface {
	Call(ctx context.Context, req *Request) (*Response, error)
}
