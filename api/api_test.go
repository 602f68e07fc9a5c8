package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/bridge"
	"github.com/mnemo-ai/mnemo/pkg/agent"
	"github.com/mnemo-ai/mnemo/pkg/events"
	"github.com/mnemo-ai/mnemo/pkg/events/hub"
	"github.com/mnemo-ai/mnemo/pkg/memory"
	"github.com/mnemo-ai/mnemo/pkg/memory/filestore"
)

// observerStub records broadcast events so tests can assert the
// notification side of API calls.
type observerStub struct {
	received []events.Event
}

func (o *observerStub) Ready() bool { return true }

func (o *observerStub) Send(ev events.Event) error {
	o.received = append(o.received, ev)
	return nil
}

var _ = Describe("Server", func() {
	var (
		dir      string
		server   *Server
		svc      *memory.Service
		h        *hub.Hub
		observer *observerStub
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		logger := zap.NewNop()

		h = hub.New(logger)
		observer = &observerStub{}
		h.Register(observer)

		store := filestore.New(dir, logger)
		svc = memory.NewService(store, h, logger)
		br := bridge.New(svc, &agent.MockCaller{}, logger)

		server = NewServer(Config{ListenAddr: ":0"}, svc, br, h, logger)
	})

	request := func(method, target string, body any) *http.Response {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(data)
		}

		req := httptest.NewRequest(method, target, reader)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := server.app.Test(req, -1)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	decode := func(resp *http.Response, out any) {
		defer resp.Body.Close()
		Expect(json.NewDecoder(resp.Body).Decode(out)).To(Succeed())
	}

	Describe("GET /ping", func() {
		It("answers pong", func() {
			resp := request(http.MethodGet, "/ping", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body string
			decode(resp, &body)
			Expect(body).To(Equal("pong"))
		})
	})

	Describe("GET /api/memory/:userKey", func() {
		It("returns 404 for an unknown key", func() {
			resp := request(http.MethodGet, "/api/memory/ghost", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal("memory not found"))
		})

		It("returns the full document for a known key", func() {
			name := "alice"
			Expect(svc.UpdateUserMemory(context.Background(), "alice", memory.UserPatch{Name: &name})).To(Succeed())

			resp := request(http.MethodGet, "/api/memory/alice", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var doc memory.Document
			decode(resp, &doc)
			Expect(doc.UserMemory.Name).To(HaveValue(Equal("alice")))
			Expect(doc.EntityMemory.Source).To(Equal(memory.SourceDefault))
		})

		It("returns 500 for a malformed persisted document", func() {
			path := filepath.Join(dir, "broken_memory.json")
			Expect(os.WriteFile(path, []byte("{not json"), 0o644)).To(Succeed())

			resp := request(http.MethodGet, "/api/memory/broken", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GET /api/memory", func() {
		It("returns an empty key list for a fresh store", func() {
			resp := request(http.MethodGet, "/api/memory", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body struct {
				Count int      `json:"count"`
				Keys  []string `json:"keys"`
			}
			decode(resp, &body)
			Expect(body.Count).To(Equal(0))
			Expect(body.Keys).To(BeEmpty())
			Expect(body.Keys).NotTo(BeNil())
		})

		It("lists keys with documents", func() {
			ctx := context.Background()
			Expect(svc.UpdateUserMemory(ctx, "alice", memory.UserPatch{})).To(Succeed())
			Expect(svc.UpdateUserMemory(ctx, "bob", memory.UserPatch{})).To(Succeed())

			resp := request(http.MethodGet, "/api/memory", nil)

			var body struct {
				Count int      `json:"count"`
				Keys  []string `json:"keys"`
			}
			decode(resp, &body)
			Expect(body.Count).To(Equal(2))
			Expect(body.Keys).To(ConsistOf("alice", "bob"))
		})
	})

	Describe("POST /api/agent/chat", func() {
		It("rejects an unparseable body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/agent/chat", bytes.NewReader([]byte("{not json")))
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req, -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("rejects requests missing userId or message", func() {
			resp := request(http.MethodPost, "/api/agent/chat", ChatRequest{Message: "hello"})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(ContainSubstring("userId and message are required"))

			resp = request(http.MethodPost, "/api/agent/chat", ChatRequest{UserID: "alice"})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("returns both sides of the exchange", func() {
			resp := request(http.MethodPost, "/api/agent/chat", ChatRequest{UserID: "alice", Message: "hello"})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body ChatResponse
			decode(resp, &body)

			Expect(body.UserMessage.FromID).To(Equal("alice"))
			Expect(body.UserMessage.ToID).To(Equal(assistantID))
			Expect(body.UserMessage.Content).To(Equal("hello"))
			Expect(body.UserMessage.IsAiAssistant).To(BeFalse())

			Expect(body.AssistantMessage.FromID).To(Equal(assistantID))
			Expect(body.AssistantMessage.ToID).To(Equal("alice"))
			Expect(body.AssistantMessage.Content).NotTo(BeEmpty())
			Expect(body.AssistantMessage.IsAiAssistant).To(BeTrue())

			Expect(body.UserMessage.ID).NotTo(Equal(body.AssistantMessage.ID))
		})

		It("persists the exchange to the transcript", func() {
			request(http.MethodPost, "/api/agent/chat", ChatRequest{UserID: "alice", Message: "hello"})

			doc, err := svc.LoadMemory(context.Background(), "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.ConversationMemory.Messages).To(HaveLen(2))
			Expect(doc.ConversationMemory.Messages[0].Type).To(Equal(memory.MessageHuman))
			Expect(doc.ConversationMemory.Messages[1].Type).To(Equal(memory.MessageAI))
		})

		It("broadcasts memory operations to registered observers", func() {
			request(http.MethodPost, "/api/agent/chat", ChatRequest{UserID: "alice", Message: "hello"})

			ops := make([]events.Operation, 0, len(observer.received))
			for _, ev := range observer.received {
				Expect(ev.Type).To(Equal(events.TypeMemoryOperation))
				Expect(ev.Key).To(Equal("alice"))
				ops = append(ops, ev.Operation)
			}

			Expect(ops).To(ContainElement(events.OpConversationMessageAdded))
			Expect(ops).To(ContainElement(events.OpMemorySaved))
		})
	})
})
