package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/db"
	"github.com/sudo-init-do/stringr/internal/stringer"
)

const (
	RolePlayer   = "player"
	RoleStringer = "stringer"
)

// Account joins a user's credentials with their profile role.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	Role         string    `json:"role"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type Store interface {
	// CreateAccount inserts the user and its profile, plus default settings
	// for stringers, in one transaction.
	CreateAccount(ctx context.Context, a *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	SetPassword(ctx context.Context, id, hash string) error
	SetAdmin(ctx context.Context, email string, admin bool) error
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) CreateAccount(ctx context.Context, a *Account) error {
	return db.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password_hash)
			VALUES ($1, $2)
			RETURNING id, is_admin, created_at`,
			a.Email, a.PasswordHash,
		).Scan(&a.ID, &a.IsAdmin, &a.CreatedAt)
		if db.IsUniqueViolation(err, "users_email_key") {
			return apperr.Conflict("email already registered")
		}
		if err != nil {
			return apperr.Internal("failed to create user", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO profiles (id, role, full_name) VALUES ($1, $2, $3)`,
			a.ID, a.Role, a.FullName,
		); err != nil {
			return apperr.Internal("failed to create profile", err)
		}

		if a.Role == RoleStringer {
			if _, err := stringer.InsertDefaults(ctx, tx, a.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

const accountQuery = `
	SELECT u.id, u.email, u.password_hash, u.is_admin, COALESCE(p.role, 'player'), COALESCE(p.full_name, ''), u.created_at
	FROM users u LEFT JOIN profiles p ON p.id = u.id`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.IsAdmin, &a.Role, &a.FullName, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PGStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	a, err := scanAccount(s.pool.QueryRow(ctx, accountQuery+` WHERE u.email = $1`, email))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch user", err)
	}
	return a, nil
}

func (s *PGStore) FindByID(ctx context.Context, id string) (*Account, error) {
	a, err := scanAccount(s.pool.QueryRow(ctx, accountQuery+` WHERE u.id = $1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch user", err)
	}
	return a, nil
}

func (s *PGStore) SetPassword(ctx context.Context, id, hash string) error {
	ct, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return apperr.Internal("failed to update password", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

// SetAdmin grants or revokes admin rights by email.
func (s *PGStore) SetAdmin(ctx context.Context, email string, admin bool) error {
	ct, err := s.pool.Exec(ctx, `UPDATE users SET is_admin = $1 WHERE email = $2`, admin, email)
	if err != nil {
		return apperr.Internal("failed to update user", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}
