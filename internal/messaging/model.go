package messaging

import "time"

// Message is one entry in the append-only thread of a request.
type Message struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type SendInput struct {
	Body string `json:"body" validate:"required,max=5000"`
}

// Event is pushed to the websocket subscribers of a request.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	EventMessageNew    = "message_new"
	EventRequestStatus = "request_status"
	EventPresenceJoin  = "presence_join"
	EventPresenceLeave = "presence_leave"
)
