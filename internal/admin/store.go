package admin

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/utils"
)

// User is a row of the admin user listing.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Stringer is a row of the admin stringer listing.
type Stringer struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	City         string    `json:"city"`
	MaxDailyJobs int       `json:"max_daily_jobs"`
	Suspended    bool      `json:"suspended"`
	ReviewCount  int       `json:"review_count"`
	AvgRating    *float64  `json:"avg_rating"`
	CreatedAt    time.Time `json:"created_at"`
}

// Request is a row of the admin request listing.
type Request struct {
	ID               string    `json:"id"`
	PlayerID         string    `json:"player_id"`
	PlayerName       string    `json:"player_name"`
	StringerID       *string   `json:"stringer_id"`
	Status           string    `json:"status"`
	IsRush           bool      `json:"is_rush"`
	QuotedPriceCents int64     `json:"quoted_price_cents"`
	PaymentStatus    string    `json:"payment_status"`
	CreatedAt        time.Time `json:"created_at"`
}

type Store interface {
	CountUsers(ctx context.Context) (int, error)
	CountStringers(ctx context.Context) (total, suspended int, err error)
	CountRequestsByStatus(ctx context.Context) (map[string]int, error)
	CountReviews(ctx context.Context) (int, error)
	CountMessages(ctx context.Context) (int, error)

	ListUsers(ctx context.Context, page utils.Page) ([]User, error)
	ListStringers(ctx context.Context, page utils.Page) ([]Stringer, error)
	// ListRequests lists requests newest first. An empty status lists all.
	ListRequests(ctx context.Context, status string, page utils.Page) ([]Request, error)
}

// Suspender flips a stringer's suspended flag. stringer.PGStore satisfies it.
type Suspender interface {
	SetSuspended(ctx context.Context, id string, suspended bool) error
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) count(ctx context.Context, what, query string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, apperr.Internal("failed to count "+what, err)
	}
	return n, nil
}

func (s *PGStore) CountUsers(ctx context.Context) (int, error) {
	return s.count(ctx, "users", `SELECT COUNT(*) FROM users`)
}

func (s *PGStore) CountReviews(ctx context.Context) (int, error) {
	return s.count(ctx, "reviews", `SELECT COUNT(*) FROM reviews`)
}

func (s *PGStore) CountMessages(ctx context.Context) (int, error) {
	return s.count(ctx, "messages", `SELECT COUNT(*) FROM messages`)
}

func (s *PGStore) CountStringers(ctx context.Context) (int, int, error) {
	var total, suspended int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE suspended)
		FROM stringer_settings`).Scan(&total, &suspended)
	if err != nil {
		return 0, 0, apperr.Internal("failed to count stringers", err)
	}
	return total, suspended, nil
}

func (s *PGStore) CountRequestsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT status, COUNT(*) FROM requests GROUP BY status`)
	if err != nil {
		return nil, apperr.Internal("failed to count requests", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, apperr.Internal("failed to read request counts", err)
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to count requests", err)
	}
	return out, nil
}

func (s *PGStore) ListUsers(ctx context.Context, page utils.Page) ([]User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.email, p.full_name, p.role, u.is_admin, u.created_at
		FROM users u
		JOIN profiles p ON p.id = u.id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset())
	if err != nil {
		return nil, apperr.Internal("failed to fetch users", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, apperr.Internal("failed to read user record", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch users", err)
	}
	return users, nil
}

func (s *PGStore) ListStringers(ctx context.Context, page utils.Page) ([]Stringer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ss.id, u.email, p.full_name, p.city, ss.max_daily_jobs, ss.suspended,
		       COALESCE(r.review_count, 0), r.avg_rating, ss.created_at
		FROM stringer_settings ss
		JOIN profiles p ON p.id = ss.id
		JOIN users u ON u.id = ss.id
		LEFT JOIN stringer_ratings r ON r.stringer_id = ss.id
		ORDER BY ss.created_at DESC
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset())
	if err != nil {
		return nil, apperr.Internal("failed to fetch stringers", err)
	}
	defer rows.Close()

	out := []Stringer{}
	for rows.Next() {
		var st Stringer
		if err := rows.Scan(&st.ID, &st.Email, &st.FullName, &st.City, &st.MaxDailyJobs,
			&st.Suspended, &st.ReviewCount, &st.AvgRating, &st.CreatedAt); err != nil {
			return nil, apperr.Internal("failed to read stringer record", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch stringers", err)
	}
	return out, nil
}

func (s *PGStore) ListRequests(ctx context.Context, status string, page utils.Page) ([]Request, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.player_id, p.full_name, r.stringer_id, r.status, r.is_rush,
		       r.quoted_price_cents, r.payment_status, r.created_at
		FROM requests r
		JOIN profiles p ON p.id = r.player_id
		WHERE ($1 = '' OR r.status = $1)
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`, status, page.Limit, page.Offset())
	if err != nil {
		return nil, apperr.Internal("failed to fetch requests", err)
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		var r Request
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.PlayerName, &r.StringerID, &r.Status,
			&r.IsRush, &r.QuotedPriceCents, &r.PaymentStatus, &r.CreatedAt); err != nil {
			return nil, apperr.Internal("failed to read request record", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch requests", err)
	}
	return out, nil
}
