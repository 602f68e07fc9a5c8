package agent

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockCaller mimics the agent service with canned keyword responses. It
// backs `--agent mock` for running without an upstream, and doubles as the
// test stand-in.
type MockCaller struct {
	// Delay simulates upstream processing time before each reply.
	Delay time.Duration
}

// Call picks a reply from the message keywords. The context is honored
// during the simulated delay.
func (m *MockCaller) Call(ctx context.Context, req *Request) (*Response, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &Response{
		Response:  mockReply(req.Message),
		Sentiment: "neutral",
		Reason:    "mock response",
	}, nil
}

func mockReply(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "hello"), strings.Contains(lower, "hi"):
		return "Hello! I'm your AI assistant. How can I help you with your home improvement needs today?"
	case strings.Contains(lower, "quote"), strings.Contains(lower, "estimate"):
		return "I'd be happy to help you get a quote. Could you provide more details about your project, including the type of work, approximate size, and your location?"
	case strings.Contains(lower, "price"), strings.Contains(lower, "cost"):
		return "Pricing can vary significantly based on the specifics of your project. To give you a better estimate, could you share more details about what you have in mind?"
	case strings.Contains(lower, "contractor"), strings.Contains(lower, "professional"):
		return "Finding the right contractor is important. I can help connect you with verified professionals in your area. What type of contractor are you looking for?"
	case strings.Contains(lower, "thank"):
		return "You're welcome! Is there anything else I can help you with?"
	default:
		return fmt.Sprintf("I understand you're interested in: %q. To better assist you, could you provide some more details about your home improvement project?", message)
	}
}
