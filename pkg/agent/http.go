package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every call to the upstream agent.
const DefaultTimeout = 15 * time.Second

// defaultReply is substituted when the upstream answers with an empty
// response body field.
const defaultReply = "I understand. How can I help you today?"

// HTTPConfig configures the HTTP agent caller.
type HTTPConfig struct {
	// Upstream is the base URL of the agent service.
	Upstream string

	// Timeout bounds each call. Defaults to DefaultTimeout when zero.
	Timeout time.Duration
}

// HTTPCaller calls the agent service over HTTP at POST <upstream>/api/agent.
type HTTPCaller struct {
	client *resty.Client
	logger *zap.Logger
}

// NewHTTPCaller creates an HTTP agent caller.
func NewHTTPCaller(config HTTPConfig, logger *zap.Logger) *HTTPCaller {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(config.Upstream).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &HTTPCaller{
		client: client,
		logger: logger,
	}
}

// Call posts the request and decodes the reply. Transport failures, timeouts,
// and non-2xx statuses are all returned as errors for the bridge to recover
// from.
func (c *HTTPCaller) Call(ctx context.Context, req *Request) (*Response, error) {
	var out Response

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/agent")
	if err != nil {
		return nil, fmt.Errorf("calling agent: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("agent returned status %d", resp.StatusCode())
	}

	if out.Response == "" {
		c.logger.Debug("agent reply missing response field, using default")
		out.Response = defaultReply
	}
	if out.Sentiment == "" {
		out.Sentiment = "neutral"
	}

	return &out, nil
}
