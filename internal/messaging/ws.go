package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/marketplace"
	"github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

type client struct {
	userID string
	send   chan []byte
}

// Hub fans events out to the websocket subscribers of each request thread.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*client]struct{}
	closed bool
	log    *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{rooms: make(map[string]map[*client]struct{}), log: log}
}

func (h *Hub) join(requestID string, c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	room, ok := h.rooms[requestID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[requestID] = room
	}
	room[c] = struct{}{}
	return true
}

func (h *Hub) leave(requestID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[requestID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, requestID)
	}
}

// Clients returns the number of subscribers of a request thread.
func (h *Hub) Clients(requestID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[requestID])
}

// Publish sends e to every subscriber of requestID. A subscriber whose buffer
// is full misses the event.
func (h *Hub) Publish(requestID string, e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		h.log.Error("marshal ws event", zap.String("type", e.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[requestID] {
		select {
		case c.send <- payload:
		default:
			h.log.Warn("dropping ws event for slow client",
				zap.String("request_id", requestID),
				zap.String("user_id", c.userID),
				zap.String("type", e.Type),
			)
		}
	}
}

// Close disconnects every subscriber. Serve returns once its connection is
// gone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, room := range h.rooms {
		for c := range room {
			close(c.send)
		}
		delete(h.rooms, id)
	}
}

// Serve subscribes conn to requestID and blocks until the peer goes away or
// the hub is closed. Client frames are read and discarded.
func (h *Hub) Serve(conn *websocket.Conn, requestID, userID string) {
	defer conn.Close()

	c := &client{userID: userID, send: make(chan []byte, sendBuffer)}
	if !h.join(requestID, c) {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.write(conn, c)
	}()

	h.Publish(requestID, Event{Type: EventPresenceJoin, Data: echo.Map{"user_id": userID}})

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.leave(requestID, c)
	<-done
	h.Publish(requestID, Event{Type: EventPresenceLeave, Data: echo.Map{"user_id": userID}})
}

func (h *Hub) write(conn *websocket.Conn, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				_ = conn.Close()
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = conn.Close()
				drain(c.send)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				drain(c.send)
				return
			}
		}
	}
}

// drain consumes send until leave closes it.
func drain(send <-chan []byte) {
	for range send {
	}
}

// RequestCreated is not shown on request threads.
func (h *Hub) RequestCreated(context.Context, *marketplace.Request) error { return nil }

// StatusChanged pushes the new status to the thread of r.
func (h *Hub) StatusChanged(_ context.Context, r *marketplace.Request, from marketplace.Status) error {
	h.Publish(r.ID, Event{Type: EventRequestStatus, Data: echo.Map{
		"request_id": r.ID,
		"from":       from,
		"status":     r.Status,
		"updated_at": r.UpdatedAt,
	}})
	return nil
}

func (h *Hub) ReviewPrompt(context.Context, *marketplace.Request) error { return nil }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers authenticate with ?token=, which a foreign origin cannot forge.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// =========================
// RequestWS - websocket feed for a request thread
// =========================
func (h *Handler) RequestWS(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	requestID, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.svc.Participant(c.Request().Context(), userID, requestID); err != nil {
		return err
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("request_id", requestID), zap.Error(err))
		return nil
	}
	h.hub.Serve(ws, requestID, userID)
	return nil
}
