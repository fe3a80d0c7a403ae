package profile

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/db"
)

type Store interface {
	Get(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, p *Profile) (*Profile, error)
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const columns = `id, role, full_name, avatar_url, bio, phone, city, lat, lng, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Role, &p.FullName, &p.AvatarURL, &p.Bio, &p.Phone, &p.City,
		&p.Lat, &p.Lng, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PGStore) Get(ctx context.Context, id string) (*Profile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx, `SELECT `+columns+` FROM profiles WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("profile")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch profile", err)
	}
	return p, nil
}

// Update writes every editable column of p. Role is not editable here.
func (s *PGStore) Update(ctx context.Context, p *Profile) (*Profile, error) {
	out, err := scanProfile(s.pool.QueryRow(ctx, `
		UPDATE profiles
		SET full_name = $2, avatar_url = $3, bio = $4, phone = $5, city = $6,
		    lat = $7, lng = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+columns,
		p.ID, p.FullName, p.AvatarURL, p.Bio, p.Phone, p.City, p.Lat, p.Lng,
	))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("profile")
	}
	if err != nil {
		return nil, apperr.Internal("failed to update profile", err)
	}
	return out, nil
}
