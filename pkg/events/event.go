// Package events defines the memory-operation notification channel: the wire
// payload mirrored to every connected observer, the operation kinds, and the
// [Publisher] interface backends implement.
//
// Delivery is best-effort fan-out. Observers that are not ready are silently
// skipped; there is no queueing and no delivery guarantee. Events are not
// filtered by key — every observer receives every event, and key-based
// filtering is the observer's concern.
package events

import "time"

// TypeMemoryOperation is the wire type tag carried by every event.
const TypeMemoryOperation = "memoryOperation"

// Operation tags the kind of memory mutation an event describes.
type Operation string

const (
	OpMemoryLoaded             Operation = "memory_loaded"
	OpMemoryNotFound           Operation = "memory_not_found"
	OpMemorySaved              Operation = "memory_saved"
	OpMemorySaveError          Operation = "memory_save_error"
	OpUserMemoryUpdated        Operation = "user_memory_updated"
	OpUserMemoryUpdateError    Operation = "user_memory_update_error"
	OpEntityMemoryUpdated      Operation = "entity_memory_updated"
	OpEntityMemoryUpdateError  Operation = "entity_memory_update_error"
	OpConversationMessageAdded Operation = "conversation_message_added"
	OpConversationMessageError Operation = "conversation_message_error"
)

// Event is the transport-neutral payload for one memory operation.
// Timestamp is Unix milliseconds, matching the document timestamps.
type Event struct {
	Type      string    `json:"type"`
	Key       string    `json:"key"`
	Operation Operation `json:"operation"`
	Timestamp int64     `json:"timestamp"`
}

// New builds an event for the given key and operation, stamped at now.
func New(key string, op Operation, now time.Time) Event {
	return Event{
		Type:      TypeMemoryOperation,
		Key:       key,
		Operation: op,
		Timestamp: now.UnixMilli(),
	}
}
