package marketplace

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/db"
	"github.com/sudo-init-do/stringr/internal/stringer"
	"github.com/sudo-init-do/stringr/internal/utils"
)

//go:generate mockgen -destination=mocks/store.go -package=mocks . Store

// AdmitFunc decides, against the locked settings of the stringer and the
// number of its active requests created on the current day, whether a new
// request may be created and at what price.
type AdmitFunc func(settings *stringer.Settings, activeToday int) (quotedCents int64, err error)

type Store interface {
	// CreateRequest inserts r after admit accepts it. Admission and insert
	// are atomic per stringer. day is the UTC midnight starting the current
	// day.
	CreateRequest(ctx context.Context, r *Request, day time.Time, admit AdmitFunc) error
	GetRequest(ctx context.Context, id string) (*Request, error)
	// UpdateStatus moves a request from one status to another, failing with
	// a conflict when its status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Request, error)
	ListForUser(ctx context.Context, userID string, status Status) ([]Request, error)

	CreateReview(ctx context.Context, r *Review) error
	GetReviewForRequest(ctx context.Context, requestID string) (*ReviewWithDetails, error)
	ListReviews(ctx context.Context, stringerID string, page utils.Page) ([]ReviewWithDetails, error)
	RatingSummary(ctx context.Context, stringerID string) (*RatingSummary, error)
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const requestColumns = `id, player_id, stringer_id, status, racquet_brand, racquet_model, string_pref,
	tension_lbs::float8, notes, dropoff_method, address, lat, lng, is_rush, quoted_price_cents,
	payment_status, created_at, updated_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.PlayerID, &r.StringerID, &r.Status, &r.RacquetBrand, &r.RacquetModel,
		&r.StringPref, &r.TensionLbs, &r.Notes, &r.DropoffMethod, &r.Address, &r.Lat, &r.Lng, &r.IsRush,
		&r.QuotedPriceCents, &r.PaymentStatus, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGStore) CreateRequest(ctx context.Context, r *Request, day time.Time, admit AdmitFunc) error {
	if r.StringerID == nil {
		return apperr.Validation("stringer_id is required")
	}
	return db.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		settings, err := stringer.SelectSettingsForUpdate(ctx, tx, *r.StringerID)
		if err != nil {
			return err
		}

		var active int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM requests
			WHERE stringer_id = $1 AND status = ANY($2)
			  AND created_at >= $3 AND created_at < $4`,
			*r.StringerID, statusStrings(ActiveStatuses), day, day.Add(24*time.Hour),
		).Scan(&active)
		if err != nil {
			return apperr.Internal("failed to count active requests", err)
		}

		quote, err := admit(settings, active)
		if err != nil {
			return err
		}
		r.QuotedPriceCents = quote

		created, err := scanRequest(tx.QueryRow(ctx, `
			INSERT INTO requests (player_id, stringer_id, status, racquet_brand, racquet_model, string_pref,
				tension_lbs, notes, dropoff_method, address, lat, lng, is_rush, quoted_price_cents, payment_status)
			VALUES ($1, $2, 'requested', $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'unpaid')
			RETURNING `+requestColumns,
			r.PlayerID, *r.StringerID, r.RacquetBrand, r.RacquetModel, r.StringPref,
			r.TensionLbs, r.Notes, string(r.DropoffMethod), r.Address, r.Lat, r.Lng, r.IsRush, r.QuotedPriceCents,
		))
		if err != nil {
			return apperr.Internal("failed to create request", err)
		}
		*r = *created
		return nil
	})
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

func (s *PGStore) GetRequest(ctx context.Context, id string) (*Request, error) {
	r, err := scanRequest(s.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("request")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch request", err)
	}
	return r, nil
}

func (s *PGStore) UpdateStatus(ctx context.Context, id string, from, to Status) (*Request, error) {
	r, err := scanRequest(s.pool.QueryRow(ctx, `
		UPDATE requests SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+requestColumns,
		id, string(from), string(to),
	))
	if db.IsNoRows(err) {
		return nil, apperr.Conflict("request status changed concurrently").With("expected_status", from)
	}
	if err != nil {
		return nil, apperr.Internal("failed to update request status", err)
	}
	return r, nil
}

func (s *PGStore) ListForUser(ctx context.Context, userID string, status Status) ([]Request, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE (player_id = $1 OR stringer_id = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`, userID, string(status))
	if err != nil {
		return nil, apperr.Internal("failed to fetch requests", err)
	}
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, apperr.Internal("failed to parse request", err)
		}
		requests = append(requests, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch requests", err)
	}
	return requests, nil
}

func (s *PGStore) CreateReview(ctx context.Context, r *Review) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO reviews (request_id, player_id, stringer_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		r.RequestID, r.PlayerID, r.StringerID, r.Rating, r.Comment,
	).Scan(&r.ID, &r.CreatedAt)
	if db.IsUniqueViolation(err, "reviews_request_unique") {
		return apperr.Conflict("review already exists for this request")
	}
	if err != nil {
		return apperr.Internal("failed to create review", err)
	}
	return nil
}

const reviewColumns = `r.id, r.request_id, r.player_id, r.stringer_id, r.rating, r.comment, r.created_at, p.full_name`

func scanReview(row pgx.Row) (*ReviewWithDetails, error) {
	var r ReviewWithDetails
	if err := row.Scan(&r.ID, &r.RequestID, &r.PlayerID, &r.StringerID, &r.Rating, &r.Comment,
		&r.CreatedAt, &r.PlayerName); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGStore) GetReviewForRequest(ctx context.Context, requestID string) (*ReviewWithDetails, error) {
	r, err := scanReview(s.pool.QueryRow(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r JOIN profiles p ON p.id = r.player_id
		WHERE r.request_id = $1`, requestID))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("review")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch review", err)
	}
	return r, nil
}

func (s *PGStore) ListReviews(ctx context.Context, stringerID string, page utils.Page) ([]ReviewWithDetails, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r JOIN profiles p ON p.id = r.player_id
		WHERE r.stringer_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`, stringerID, page.Limit, page.Offset())
	if err != nil {
		return nil, apperr.Internal("failed to fetch reviews", err)
	}
	defer rows.Close()

	reviews := []ReviewWithDetails{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, apperr.Internal("failed to parse review", err)
		}
		reviews = append(reviews, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch reviews", err)
	}
	return reviews, nil
}

func (s *PGStore) RatingSummary(ctx context.Context, stringerID string) (*RatingSummary, error) {
	summary := &RatingSummary{StringerID: stringerID}
	err := s.pool.QueryRow(ctx, `
		SELECT p.full_name, COALESCE(r.review_count, 0), COALESCE(r.avg_rating, 0)
		FROM profiles p
		LEFT JOIN stringer_ratings r ON r.stringer_id = p.id
		WHERE p.id = $1 AND p.role = 'stringer'`, stringerID,
	).Scan(&summary.StringerName, &summary.TotalReviews, &summary.AverageRating)
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("stringer")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch rating summary", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT rating, COUNT(*) FROM reviews WHERE stringer_id = $1 GROUP BY rating`, stringerID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch rating breakdown", err)
	}
	defer rows.Close()
	for rows.Next() {
		var stars, n int
		if err := rows.Scan(&stars, &n); err != nil {
			return nil, apperr.Internal("failed to parse rating breakdown", err)
		}
		summary.Count(stars, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch rating breakdown", err)
	}
	return summary, nil
}
