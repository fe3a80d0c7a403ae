package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sudo-init-do/stringr/internal/middleware"
)

const (
	purposeReset = "password_reset"
	resetTTL     = 30 * time.Minute
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by every token. Access tokens have an empty Purpose.
type Claims struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role,omitempty"`
	Admin       bool   `json:"admin,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	Fingerprint string `json:"fp,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) sign(c Claims, ttl time.Duration) (string, error) {
	now := t.now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) parse(token string) (*Claims, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || c.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

// Issue returns an access token for userID.
func (t *Tokens) Issue(userID, role string, admin bool) (string, error) {
	return t.sign(Claims{UserID: userID, Role: role, Admin: admin}, t.ttl)
}

// ParseAccess verifies an access token. Reset tokens are rejected.
func (t *Tokens) ParseAccess(token string) (middleware.Identity, error) {
	c, err := t.parse(token)
	if err != nil {
		return middleware.Identity{}, err
	}
	if c.Purpose != "" {
		return middleware.Identity{}, ErrInvalidToken
	}
	return middleware.Identity{UserID: c.UserID, Role: c.Role, IsAdmin: c.Admin}, nil
}

// IssueReset returns a short lived password reset token bound to the
// current password hash, so it stops working once the password changes.
func (t *Tokens) IssueReset(userID, passwordHash string) (string, error) {
	return t.sign(Claims{UserID: userID, Purpose: purposeReset, Fingerprint: fingerprint(passwordHash)}, resetTTL)
}

// ParseReset verifies a reset token against the user's current hash.
func (t *Tokens) ParseReset(token string, currentHash func(userID string) (string, error)) (string, error) {
	c, err := t.parse(token)
	if err != nil {
		return "", err
	}
	if c.Purpose != purposeReset {
		return "", ErrInvalidToken
	}
	hash, err := currentHash(c.UserID)
	if err != nil {
		return "", err
	}
	if fingerprint(hash) != c.Fingerprint {
		return "", ErrInvalidToken
	}
	return c.UserID, nil
}

func fingerprint(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:8])
}
