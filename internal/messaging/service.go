package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/marketplace"
)

// RequestGetter loads the request a thread belongs to.
type RequestGetter interface {
	GetRequest(ctx context.Context, id string) (*marketplace.Request, error)
}

// Publisher pushes live events to a request thread.
type Publisher interface {
	Publish(requestID string, e Event)
}

// Notifier tells the other participant about a new message.
type Notifier interface {
	MessageSent(ctx context.Context, r *marketplace.Request, m *Message, recipientID string) error
}

type Service struct {
	requests RequestGetter
	store    Store
	live     Publisher
	notify   Notifier
	log      *zap.Logger
}

func NewService(requests RequestGetter, store Store, live Publisher, notify Notifier, log *zap.Logger) *Service {
	return &Service{requests: requests, store: store, live: live, notify: notify, log: log}
}

// Participant loads a request and checks that userID is its player or
// stringer.
func (s *Service) Participant(ctx context.Context, userID, requestID string) (*marketplace.Request, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("")
	}
	r, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.Counterpart(userID) == "" {
		return nil, apperr.Forbidden("not a participant in this request")
	}
	return r, nil
}

// Send appends a message from userID to the thread of requestID.
func (s *Service) Send(ctx context.Context, userID, requestID, body string) (*Message, error) {
	r, err := s.Participant(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	m := &Message{RequestID: requestID, SenderID: userID, Body: body}
	if err := s.store.Append(ctx, m); err != nil {
		return nil, err
	}
	s.live.Publish(requestID, Event{Type: EventMessageNew, Data: m})

	recipient := r.Counterpart(userID)
	if err := s.notify.MessageSent(ctx, r, m, recipient); err != nil {
		s.log.Warn("message notification failed",
			zap.String("request_id", requestID),
			zap.String("recipient_id", recipient),
			zap.Error(err),
		)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, userID, requestID string, since *time.Time) ([]Message, error) {
	if _, err := s.Participant(ctx, userID, requestID); err != nil {
		return nil, err
	}
	return s.store.List(ctx, requestID, since)
}
