package bridge

import "fmt"

const (
	// unknownName is the literal placed in prompts when no name is recalled.
	unknownName = "unknown"

	// fallbackReply is returned, and appended to the transcript, when the
	// agent call fails.
	fallbackReply = "I apologize, but I encountered an error processing your message."

	// stockIntroMarker identifies the agent backend's default
	// self-introduction, which the bridge overrides on first messages.
	stockIntroMarker = "AI assistant powered by LangGraph"

	// firstMessageInstruction is appended to the prompt on a user's first
	// message.
	firstMessageInstruction = "This is the first message. Start with a greeting and ask for their name if you don't know it yet."
)

const personaTemplate = `You are 007, a personal productivity agent.
You help users manage their tasks, find information, and boost their productivity.
You have a friendly, helpful tone.
The user's name is %s.
Keep your responses concise and focused.

If the user asks about their name, make sure to tell them their name is %s.
If the user asks about tasks, offer to create a task for them.
`

// composePrompt builds the persona preamble parameterized by the recalled
// name, with the first-message instruction appended conditionally.
func composePrompt(userName string, firstMessage bool) string {
	prompt := fmt.Sprintf(personaTemplate, userName, userName)

	if firstMessage {
		prompt += "\n" + firstMessageInstruction
	}

	return prompt
}

// firstGreeting is the memory-aware greeting substituted for the agent's
// stock self-introduction on first messages.
func firstGreeting(userName string) string {
	if userName == unknownName {
		return "Hello! I'm 007, your personal productivity agent. I don't think we've met before. What's your name?"
	}

	return fmt.Sprintf("Hello %s! I'm 007, your personal productivity agent. How can I help you today?", userName)
}
