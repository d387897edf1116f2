// Package session carries the authenticated workspace explicitly through a
// request instead of through process-wide state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Session identifies the caller and the workspace they act in.
type Session struct {
	WorkspaceID string
	UserID      string
	Email       string
}

// Claims is the JWT payload of a session token.
type Claims struct {
	WorkspaceID string `json:"workspaceId"`
	Email       string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// Issue signs an HS256 session token valid for ttl.
func Issue(secret []byte, s Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		WorkspaceID: s.WorkspaceID,
		Email:       s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Parse verifies a token and returns the session it carries.
func Parse(secret []byte, token string) (Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.WorkspaceID == "" {
		return Session{}, ErrInvalidToken
	}
	return Session{
		WorkspaceID: claims.WorkspaceID,
		UserID:      claims.Subject,
		Email:       claims.Email,
	}, nil
}
