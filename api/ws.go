package api

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/pkg/events"
)

// authFrame is the only inbound frame observers send. It tags the connection
// with a user id for logging; events are not filtered by it.
type authFrame struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// wsObserver adapts one WebSocket connection to the hub's Observer
// interface. Writes are serialized with a mutex since the hub broadcasts
// from request goroutines.
type wsObserver struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed atomic.Bool
}

func (o *wsObserver) Ready() bool {
	return !o.closed.Load()
}

func (o *wsObserver) Send(event events.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.conn.WriteJSON(event)
}

// registerObserverRoute wires GET /ws as the observer endpoint.
func (s *Server) registerObserverRoute() {
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	s.app.Get("/ws", websocket.New(s.handleObserver))
}

// handleObserver owns one observer connection: registered with the hub on
// open, unregistered when the read loop exits. Inbound frames other than
// auth are ignored.
func (s *Server) handleObserver(conn *websocket.Conn) {
	observer := &wsObserver{conn: conn}

	s.hub.Register(observer)
	s.logger.Debug("observer connected")

	defer func() {
		observer.closed.Store(true)
		s.hub.Unregister(observer)
		conn.Close()
		s.logger.Debug("observer disconnected")
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame authFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			continue
		}

		if frame.Type == "auth" && frame.UserID != "" {
			s.logger.Debug("observer authenticated",
				zap.String("user", frame.UserID),
			)
		}
	}
}
