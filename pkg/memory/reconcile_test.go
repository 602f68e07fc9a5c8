package memory

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

var _ = Describe("DefaultDocument", func() {
	var (
		now time.Time
		doc *Document
	)

	BeforeEach(func() {
		now = time.UnixMilli(1700000000000)
		doc = DefaultDocument(now)
	})

	It("has no user name", func() {
		Expect(doc.UserMemory.Name).To(BeNil())
	})

	It("has empty but non-nil collections", func() {
		Expect(doc.UserMemory.Preferences).NotTo(BeNil())
		Expect(doc.UserMemory.Preferences).To(BeEmpty())
		Expect(doc.UserMemory.ConversationHistory).NotTo(BeNil())
		Expect(doc.ConversationMemory.Messages).NotTo(BeNil())
		Expect(doc.ConversationMemory.Messages).To(BeEmpty())
	})

	It("sources the entity slot from default", func() {
		Expect(doc.EntityMemory.Name).To(BeEmpty())
		Expect(doc.EntityMemory.Source).To(Equal(SourceDefault))
	})

	It("stamps every timestamp with now in unix milliseconds", func() {
		ms := now.UnixMilli()
		Expect(doc.UserMemory.LastInteraction).To(Equal(ms))
		Expect(doc.EntityMemory.LastUpdated).To(Equal(ms))
		Expect(doc.ConversationMemory.LastUpdated).To(Equal(ms))
		Expect(doc.LastUpdated).To(Equal(ms))
	})
})

var _ = Describe("ReconcileUser", func() {
	var (
		now  time.Time
		base *Document
	)

	BeforeEach(func() {
		now = time.UnixMilli(1700000100000)
		base = DefaultDocument(time.UnixMilli(1700000000000))
		base.UserMemory.Name = strPtr("alice")
		base.UserMemory.Preferences = map[string]any{"tone": "casual"}
	})

	Context("with a nil existing document", func() {
		It("reconciles against the default document", func() {
			doc := ReconcileUser(nil, UserPatch{Name: strPtr("bob")}, now)
			Expect(doc.UserMemory.Name).To(HaveValue(Equal("bob")))
			Expect(doc.EntityMemory.Source).To(Equal(SourceDefault))
			Expect(doc.LastUpdated).To(Equal(now.UnixMilli()))
		})
	})

	It("preserves fields the patch omits", func() {
		doc := ReconcileUser(base, UserPatch{LastInteraction: int64Ptr(42)}, now)
		Expect(doc.UserMemory.Name).To(HaveValue(Equal("alice")))
		Expect(doc.UserMemory.Preferences).To(HaveKeyWithValue("tone", "casual"))
		Expect(doc.UserMemory.LastInteraction).To(Equal(int64(42)))
	})

	It("replaces preferences wholesale rather than deep merging", func() {
		doc := ReconcileUser(base, UserPatch{
			Preferences: map[string]any{"channel": "email"},
		}, now)
		Expect(doc.UserMemory.Preferences).To(HaveKeyWithValue("channel", "email"))
		Expect(doc.UserMemory.Preferences).NotTo(HaveKey("tone"))
	})

	It("never mutates the existing document", func() {
		_ = ReconcileUser(base, UserPatch{
			Name:        strPtr("mallory"),
			Preferences: map[string]any{},
		}, now)
		Expect(base.UserMemory.Name).To(HaveValue(Equal("alice")))
		Expect(base.UserMemory.Preferences).To(HaveKeyWithValue("tone", "casual"))
	})

	It("advances the document stamp", func() {
		doc := ReconcileUser(base, UserPatch{}, now)
		Expect(doc.LastUpdated).To(Equal(now.UnixMilli()))
	})

	It("leaves the entity and transcript untouched", func() {
		base.ConversationMemory.Messages = []Message{{Content: "hi", Type: MessageHuman}}
		doc := ReconcileUser(base, UserPatch{Name: strPtr("bob")}, now)
		Expect(doc.EntityMemory).To(Equal(base.EntityMemory))
		Expect(doc.ConversationMemory.Messages).To(Equal(base.ConversationMemory.Messages))
	})
})

var _ = Describe("ReconcileEntity", func() {
	var (
		now  time.Time
		base *Document
	)

	BeforeEach(func() {
		now = time.UnixMilli(1700000200000)
		base = DefaultDocument(time.UnixMilli(1700000000000))
		base.EntityMemory.Name = "alice"
		base.EntityMemory.Email = "alice@example.com"
	})

	It("overwrites only the patched fields", func() {
		doc := ReconcileEntity(base, EntityPatch{
			Name:   strPtr("bob"),
			Source: strPtr(SourceDirectIntroduction),
		}, now)
		Expect(doc.EntityMemory.Name).To(Equal("bob"))
		Expect(doc.EntityMemory.Source).To(Equal(SourceDirectIntroduction))
		Expect(doc.EntityMemory.Email).To(Equal("alice@example.com"))
	})

	It("always advances the entity stamp, even for an empty patch", func() {
		doc := ReconcileEntity(base, EntityPatch{}, now)
		Expect(doc.EntityMemory.LastUpdated).To(Equal(now.UnixMilli()))
		Expect(doc.LastUpdated).To(Equal(now.UnixMilli()))
	})

	It("creates from defaults when existing is nil", func() {
		doc := ReconcileEntity(nil, EntityPatch{Name: strPtr("carol")}, now)
		Expect(doc.EntityMemory.Name).To(Equal("carol"))
		Expect(doc.UserMemory.Name).To(BeNil())
	})

	It("never mutates the existing document", func() {
		_ = ReconcileEntity(base, EntityPatch{Name: strPtr("mallory")}, now)
		Expect(base.EntityMemory.Name).To(Equal("alice"))
	})
})

var _ = Describe("AppendMessage", func() {
	var now time.Time

	BeforeEach(func() {
		now = time.UnixMilli(1700000300000)
	})

	It("appends to an empty transcript on a nil document", func() {
		doc := AppendMessage(nil, Message{Content: "hello", Type: MessageHuman}, now)
		Expect(doc.ConversationMemory.Messages).To(HaveLen(1))
		Expect(doc.ConversationMemory.Messages[0].Content).To(Equal("hello"))
		Expect(doc.ConversationMemory.Messages[0].Type).To(Equal(MessageHuman))
	})

	It("assigns the server clock, discarding any caller timestamp", func() {
		doc := AppendMessage(nil, Message{Content: "hello", Timestamp: 12345, Type: MessageHuman}, now)
		Expect(doc.ConversationMemory.Messages[0].Timestamp).To(Equal(now.UnixMilli()))
	})

	It("preserves prior messages in order", func() {
		doc := AppendMessage(nil, Message{Content: "first", Type: MessageHuman}, now)
		doc = AppendMessage(doc, Message{Content: "second", Type: MessageAI}, now.Add(time.Second))
		doc = AppendMessage(doc, Message{Content: "third", Type: MessageHuman}, now.Add(2*time.Second))

		contents := make([]string, 0, len(doc.ConversationMemory.Messages))
		for _, m := range doc.ConversationMemory.Messages {
			contents = append(contents, m.Content)
		}
		Expect(contents).To(Equal([]string{"first", "second", "third"}))
	})

	It("advances the transcript and document stamps", func() {
		doc := AppendMessage(nil, Message{Content: "hello", Type: MessageHuman}, now)
		Expect(doc.ConversationMemory.LastUpdated).To(Equal(now.UnixMilli()))
		Expect(doc.LastUpdated).To(Equal(now.UnixMilli()))
	})

	It("never mutates the existing document", func() {
		base := AppendMessage(nil, Message{Content: "first", Type: MessageHuman}, now)
		_ = AppendMessage(base, Message{Content: "second", Type: MessageAI}, now)
		Expect(base.ConversationMemory.Messages).To(HaveLen(1))
	})
})

var _ = Describe("Clone", func() {
	It("deep copies maps and slices", func() {
		base := DefaultDocument(time.UnixMilli(1700000000000))
		base.UserMemory.Preferences["tone"] = "casual"
		base.ConversationMemory.Messages = []Message{{Content: "hi", Type: MessageHuman}}

		out := base.Clone()
		out.UserMemory.Preferences["tone"] = "formal"
		out.ConversationMemory.Messages[0].Content = "changed"

		Expect(base.UserMemory.Preferences).To(HaveKeyWithValue("tone", "casual"))
		Expect(base.ConversationMemory.Messages[0].Content).To(Equal("hi"))
	})

	It("returns nil for a nil document", func() {
		var d *Document
		Expect(d.Clone()).To(BeNil())
	})
})
