package memory

import "time"

// UserPatch is a partial update for the user_memory sub-record. Nil fields
// are preserved unchanged; non-nil fields replace the current value wholesale.
// There is no deep merging of nested values.
type UserPatch struct {
	Name                *string
	Preferences         map[string]any
	LastInteraction     *int64
	ConversationHistory []any
}

// EntityPatch is a partial update for the entity_memory sub-record, with the
// same shallow-overwrite semantics as UserPatch.
type EntityPatch struct {
	Name   *string
	Source *string
	Email  *string
	ID     *string
}

// ReconcileUser applies a user patch against an existing document, or against
// the default document when existing is nil. The returned document is a new
// value; existing is never mutated. Both the sub-record and document
// last_updated stamps are set to now.
func ReconcileUser(existing *Document, patch UserPatch, now time.Time) *Document {
	doc := loadOrDefault(existing, now)

	if patch.Name != nil {
		doc.UserMemory.Name = patch.Name
	}
	if patch.Preferences != nil {
		doc.UserMemory.Preferences = patch.Preferences
	}
	if patch.LastInteraction != nil {
		doc.UserMemory.LastInteraction = *patch.LastInteraction
	}
	if patch.ConversationHistory != nil {
		doc.UserMemory.ConversationHistory = patch.ConversationHistory
	}

	doc.LastUpdated = now.UnixMilli()

	return doc
}

// ReconcileEntity applies an entity patch with shallow-overwrite semantics.
// The entity record's own last_updated stamp always moves to now alongside
// the document stamp.
func ReconcileEntity(existing *Document, patch EntityPatch, now time.Time) *Document {
	doc := loadOrDefault(existing, now)

	if patch.Name != nil {
		doc.EntityMemory.Name = *patch.Name
	}
	if patch.Source != nil {
		doc.EntityMemory.Source = *patch.Source
	}
	if patch.Email != nil {
		doc.EntityMemory.Email = *patch.Email
	}
	if patch.ID != nil {
		doc.EntityMemory.ID = *patch.ID
	}

	ms := now.UnixMilli()
	doc.EntityMemory.LastUpdated = ms
	doc.LastUpdated = ms

	return doc
}

// AppendMessage appends one transcript entry, stamping it with the server
// clock. Any timestamp carried on msg is discarded. Prior messages are never
// altered, reordered, or truncated.
func AppendMessage(existing *Document, msg Message, now time.Time) *Document {
	doc := loadOrDefault(existing, now)

	ms := now.UnixMilli()
	msg.Timestamp = ms

	doc.ConversationMemory.Messages = append(doc.ConversationMemory.Messages, msg)
	doc.ConversationMemory.LastUpdated = ms
	doc.LastUpdated = ms

	return doc
}

// loadOrDefault makes "create on first write" explicit: a nil existing
// document yields the default document, anything else yields a deep copy.
func loadOrDefault(existing *Document, now time.Time) *Document {
	if existing == nil {
		return DefaultDocument(now)
	}
	return existing.Clone()
}
