// Package memory provides the per-user conversational memory layer: the
// document record model, the reconcile rules for partial updates, and the
// mutation service that ties a storage backend to the notification channel.
//
// One [Document] exists per user key. A document is created implicitly on
// first mutation — there is no explicit create operation — and is never
// deleted by this layer. All mutations are whole-document read-modify-write
// cycles; concurrent writers for the same key are not serialized and the
// last completed save wins.
package memory

import "time"

// Entity record sources.
const (
	// SourceDefault marks an entity record synthesized by DefaultDocument.
	SourceDefault = "default"

	// SourceDirectIntroduction marks an entity resolved from a user
	// introducing themselves in chat ("my name is ...").
	SourceDirectIntroduction = "direct_introduction"
)

// MessageType distinguishes the two sides of a transcript.
type MessageType string

const (
	// MessageHuman is a message sent by the user.
	MessageHuman MessageType = "human"

	// MessageAI is a message produced by the agent.
	MessageAI MessageType = "ai"
)

// UserMemory holds identity facts about the user. The conversation_history
// field is reserved for future use; the transcript lives in
// ConversationMemory.
type UserMemory struct {
	Name                *string        `json:"name"`
	Preferences         map[string]any `json:"preferences"`
	LastInteraction     int64          `json:"last_interaction"`
	ConversationHistory []any          `json:"conversation_history"`
}

// EntityMemory is the single free-form record for the most-recently-resolved
// entity. Today the only entity ever resolved is the user themselves.
type EntityMemory struct {
	Name        string `json:"name"`
	LastUpdated int64  `json:"last_updated"`
	Source      string `json:"source"`
	Email       string `json:"email,omitempty"`
	ID          string `json:"id,omitempty"`
}

// Message is one transcript entry. Timestamps are server-assigned at append
// time; caller-supplied values are ignored.
type Message struct {
	Content   string      `json:"content"`
	Timestamp int64       `json:"timestamp"`
	Type      MessageType `json:"type"`
}

// ConversationMemory is the append-only transcript. Messages are never
// reordered or truncated; insertion order is chronological.
type ConversationMemory struct {
	Messages    []Message `json:"messages"`
	LastUpdated int64     `json:"last_updated"`
}

// Document is the full persisted memory record for one key. All timestamps
// are Unix milliseconds, matching the on-disk layout.
type Document struct {
	UserMemory         UserMemory         `json:"user_memory"`
	EntityMemory       EntityMemory       `json:"entity_memory"`
	ConversationMemory ConversationMemory `json:"conversation_memory"`
	LastUpdated        int64              `json:"last_updated"`
}

// DefaultDocument synthesizes the canonical empty document: no name, empty
// preferences, an entity slot sourced from SourceDefault, an empty
// transcript, and every timestamp set to now.
func DefaultDocument(now time.Time) *Document {
	ms := now.UnixMilli()
	return &Document{
		UserMemory: UserMemory{
			Name:                nil,
			Preferences:         map[string]any{},
			LastInteraction:     ms,
			ConversationHistory: []any{},
		},
		EntityMemory: EntityMemory{
			Name:        "",
			LastUpdated: ms,
			Source:      SourceDefault,
		},
		ConversationMemory: ConversationMemory{
			Messages:    []Message{},
			LastUpdated: ms,
		},
		LastUpdated: ms,
	}
}

// Clone returns a deep copy of the document. Reconcile functions operate on
// copies so callers can hold loaded documents across mutations safely.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	out := *d

	if d.UserMemory.Preferences != nil {
		out.UserMemory.Preferences = make(map[string]any, len(d.UserMemory.Preferences))
		for k, v := range d.UserMemory.Preferences {
			out.UserMemory.Preferences[k] = v
		}
	}

	if d.UserMemory.ConversationHistory != nil {
		out.UserMemory.ConversationHistory = make([]any, len(d.UserMemory.ConversationHistory))
		copy(out.UserMemory.ConversationHistory, d.UserMemory.ConversationHistory)
	}

	if d.ConversationMemory.Messages != nil {
		out.ConversationMemory.Messages = make([]Message, len(d.ConversationMemory.Messages))
		copy(out.ConversationMemory.Messages, d.ConversationMemory.Messages)
	}

	return &out
}
