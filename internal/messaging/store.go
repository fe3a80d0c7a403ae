package messaging

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

type Store interface {
	Append(ctx context.Context, m *Message) error
	// List returns the thread oldest first, only messages newer than since
	// when it is set.
	List(ctx context.Context, requestID string, since *time.Time) ([]Message, error)
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Append(ctx context.Context, m *Message) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO messages (request_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		m.RequestID, m.SenderID, m.Body,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return apperr.Internal("failed to send message", err)
	}
	return nil
}

func (s *PGStore) List(ctx context.Context, requestID string, since *time.Time) ([]Message, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if since != nil {
		rows, err = s.pool.Query(ctx, `
			SELECT id, request_id, sender_id, body, created_at
			FROM messages WHERE request_id = $1 AND created_at > $2
			ORDER BY created_at ASC, id ASC`, requestID, *since)
	} else {
		rows, err = s.pool.Query(ctx, `
			SELECT id, request_id, sender_id, body, created_at
			FROM messages WHERE request_id = $1
			ORDER BY created_at ASC, id ASC`, requestID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to list messages", err)
	}
	defer rows.Close()

	msgs := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.RequestID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, apperr.Internal("failed to parse message", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list messages", err)
	}
	return msgs, nil
}
