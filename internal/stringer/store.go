package stringer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/db"
	"github.com/sudo-init-do/stringr/internal/geo"
)

//go:generate mockgen -destination=mocks/store.go -package=mocks . Store

type Store interface {
	CandidateLister
	GetSettings(ctx context.Context, id string) (*Settings, error)
	UpsertSettings(ctx context.Context, s *Settings) (*Settings, error)
	DeleteSettings(ctx context.Context, id string) error
	GetPublic(ctx context.Context, id string) (*Public, error)
	BecomeStringer(ctx context.Context, id string) (*Settings, error)
	SetSuspended(ctx context.Context, id string, suspended bool) error
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const settingsColumns = `id, base_price_cents, turnaround_hours, accepts_rush, rush_fee_cents,
	max_daily_jobs, services, availability, suspended, created_at, updated_at`

// ScanSettings reads a row selected with the settings column list.
func ScanSettings(row pgx.Row) (*Settings, error) {
	var (
		s            Settings
		services     []byte
		availability []byte
	)
	if err := row.Scan(&s.ID, &s.BasePriceCents, &s.TurnaroundHours, &s.AcceptsRush, &s.RushFeeCents,
		&s.MaxDailyJobs, &services, &availability, &s.Suspended, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(services, &s.Services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	if err := json.Unmarshal(availability, &s.Availability); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}
	return &s, nil
}

// encodeSchedule renders the jsonb columns of s.
func encodeSchedule(s *Settings) (services, availability []byte, err error) {
	if services, err = json.Marshal(s.Services); err != nil {
		return nil, nil, fmt.Errorf("encode services: %w", err)
	}
	if availability, err = json.Marshal(s.Availability); err != nil {
		return nil, nil, fmt.Errorf("encode availability: %w", err)
	}
	return services, availability, nil
}

// SelectSettingsForUpdate locks the settings row of a stringer for the rest
// of tx. Request admission uses it to serialise creations per stringer.
func SelectSettingsForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Settings, error) {
	s, err := ScanSettings(tx.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM stringer_settings WHERE id = $1 FOR UPDATE`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("stringer settings")
	}
	if err != nil {
		return nil, apperr.Internal("failed to lock stringer settings", err)
	}
	return s, nil
}

// InsertDefaults gives id the default settings unless it already has some.
func InsertDefaults(ctx context.Context, q db.Querier, id string) (*Settings, error) {
	d := DefaultSettings(id)
	services, availability, err := encodeSchedule(d)
	if err != nil {
		return nil, err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO stringer_settings (id, base_price_cents, turnaround_hours, accepts_rush,
			rush_fee_cents, max_daily_jobs, services, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		id, d.BasePriceCents, d.TurnaroundHours, d.AcceptsRush,
		d.RushFeeCents, d.MaxDailyJobs, services, availability,
	)
	if err != nil {
		return nil, err
	}
	return ScanSettings(q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM stringer_settings WHERE id = $1`, id))
}

func (s *PGStore) GetSettings(ctx context.Context, id string) (*Settings, error) {
	out, err := ScanSettings(s.pool.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM stringer_settings WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("stringer settings")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch stringer settings", err)
	}
	return out, nil
}

func (s *PGStore) UpsertSettings(ctx context.Context, in *Settings) (*Settings, error) {
	services, availability, err := encodeSchedule(in)
	if err != nil {
		return nil, apperr.Internal("failed to encode stringer settings", err)
	}

	out, err := ScanSettings(s.pool.QueryRow(ctx, `
		INSERT INTO stringer_settings (id, base_price_cents, turnaround_hours, accepts_rush,
			rush_fee_cents, max_daily_jobs, services, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			base_price_cents = EXCLUDED.base_price_cents,
			turnaround_hours = EXCLUDED.turnaround_hours,
			accepts_rush = EXCLUDED.accepts_rush,
			rush_fee_cents = EXCLUDED.rush_fee_cents,
			max_daily_jobs = EXCLUDED.max_daily_jobs,
			services = EXCLUDED.services,
			availability = EXCLUDED.availability,
			updated_at = NOW()
		RETURNING `+settingsColumns,
		in.ID, in.BasePriceCents, in.TurnaroundHours, in.AcceptsRush,
		in.RushFeeCents, in.MaxDailyJobs, services, availability,
	))
	if err != nil {
		return nil, apperr.Internal("failed to save stringer settings", err)
	}
	return out, nil
}

func (s *PGStore) DeleteSettings(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM stringer_settings WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal("failed to delete stringer settings", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("stringer settings")
	}
	return nil
}

// ListCandidates is the single discoverability rule: a stringer profile with a
// settings row that is not suspended and has coordinates.
func (s *PGStore) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.full_name, p.avatar_url, p.city, p.lat, p.lng,
		       ss.base_price_cents, ss.turnaround_hours, ss.accepts_rush, ss.rush_fee_cents,
		       COALESCE(r.avg_rating, 0), COALESCE(r.review_count, 0)
		FROM stringer_settings ss
		JOIN profiles p ON p.id = ss.id
		LEFT JOIN stringer_ratings r ON r.stringer_id = ss.id
		WHERE p.role = 'stringer'
		  AND ss.suspended = FALSE
		  AND p.lat IS NOT NULL AND p.lng IS NOT NULL
		ORDER BY ss.created_at, ss.id`)
	if err != nil {
		return nil, apperr.Internal("failed to fetch stringers", err)
	}
	defer rows.Close()

	candidates := []Candidate{}
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.FullName, &c.AvatarURL, &c.City, &c.Location.Lat, &c.Location.Lng,
			&c.BasePriceCents, &c.TurnaroundHours, &c.AcceptsRush, &c.RushFeeCents,
			&c.AvgRating, &c.ReviewCount); err != nil {
			return nil, apperr.Internal("failed to parse stringer", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch stringers", err)
	}
	return candidates, nil
}

func (s *PGStore) GetPublic(ctx context.Context, id string) (*Public, error) {
	var (
		p        Public
		lat, lng *float64
	)
	err := s.pool.QueryRow(ctx, `
		SELECT p.id, p.full_name, p.avatar_url, p.bio, p.city, p.lat, p.lng,
		       COALESCE(r.avg_rating, 0), COALESCE(r.review_count, 0)
		FROM profiles p
		LEFT JOIN stringer_ratings r ON r.stringer_id = p.id
		WHERE p.id = $1 AND p.role = 'stringer'`, id,
	).Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.Bio, &p.City, &lat, &lng,
		&p.Rating.AvgRating, &p.Rating.ReviewCount)
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("stringer")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch stringer", err)
	}
	if lat != nil && lng != nil {
		p.Location = &geo.Point{Lat: *lat, Lng: *lng}
	}

	settings, err := s.GetSettings(ctx, id)
	switch {
	case apperr.Is(err, apperr.KindNotFound):
		// a stringer who stopped offering services keeps a profile page
	case err != nil:
		return nil, err
	case !settings.Suspended:
		p.Settings = settings
	}
	return &p, nil
}

func (s *PGStore) BecomeStringer(ctx context.Context, id string) (*Settings, error) {
	var out *Settings
	err := db.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		var role string
		err := tx.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1 FOR UPDATE`, id).Scan(&role)
		if db.IsNoRows(err) {
			return apperr.NotFound("profile")
		}
		if err != nil {
			return apperr.Internal("failed to fetch profile", err)
		}
		if role == "stringer" {
			return apperr.Conflict("you are already a stringer")
		}

		if _, err := tx.Exec(ctx,
			`UPDATE profiles SET role = 'stringer', updated_at = NOW() WHERE id = $1`, id); err != nil {
			return apperr.Internal("failed to update role", err)
		}
		out, err = InsertDefaults(ctx, tx, id)
		if err != nil {
			return apperr.Internal("failed to create stringer settings", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PGStore) SetSuspended(ctx context.Context, id string, suspended bool) error {
	ct, err := s.pool.Exec(ctx,
		`UPDATE stringer_settings SET suspended = $2, updated_at = NOW() WHERE id = $1`, id, suspended)
	if err != nil {
		return apperr.Internal("failed to update stringer", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("stringer settings")
	}
	return nil
}
