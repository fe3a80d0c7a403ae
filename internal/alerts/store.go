package alerts

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/db"
	"github.com/sudo-init-do/stringr/internal/utils"
)

type Store interface {
	// Insert adds n to its user's inbox once per taskID.
	Insert(ctx context.Context, n *Notification, taskID string) error
	Recipient(ctx context.Context, userID string) (email, name string, err error)
	List(ctx context.Context, userID string, page utils.Page) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Insert(ctx context.Context, n *Notification, taskID string) error {
	var task *string
	if taskID != "" {
		task = &taskID
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (user_id, type, title, body, reference, task_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (task_id) DO NOTHING`,
		n.UserID, n.Type, n.Title, n.Body, n.Reference, task,
	)
	if err != nil {
		return apperr.Internal("failed to create notification", err)
	}
	return nil
}

func (s *PGStore) Recipient(ctx context.Context, userID string) (string, string, error) {
	var email, name string
	err := s.pool.QueryRow(ctx, `
		SELECT u.email, COALESCE(p.full_name, '')
		FROM users u LEFT JOIN profiles p ON p.id = u.id
		WHERE u.id = $1`, userID,
	).Scan(&email, &name)
	if db.IsNoRows(err) {
		return "", "", apperr.NotFound("user")
	}
	if err != nil {
		return "", "", apperr.Internal("failed to fetch recipient", err)
	}
	return email, name, nil
}

func (s *PGStore) List(ctx context.Context, userID string, page utils.Page) ([]Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, type, title, body, reference::text, created_at, read_at
		FROM notifications WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, apperr.Internal("failed to load notifications", err)
	}
	defer rows.Close()

	items := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Reference, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, apperr.Internal("failed to parse notification", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to load notifications", err)
	}
	return items, nil
}

func (s *PGStore) MarkRead(ctx context.Context, id, userID string) error {
	res, err := s.pool.Exec(ctx, `
		UPDATE notifications SET read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL`, id, userID,
	)
	if err != nil {
		return apperr.Internal("failed to update notification", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("unread notification")
	}
	return nil
}
