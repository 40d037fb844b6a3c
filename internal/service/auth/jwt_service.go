package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
// Tokens are stateless values: they are never persisted server-side and
// there is no revocation list. A token is either valid-and-unexpired or it
// is rejected.
type JWTService interface {
	// GenerateToken creates a signed JWT access token containing the user's
	// identity and an absolute expiry. Returns the token string or an error
	// if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrMissingToken when the string is empty,
	// ErrExpiredToken when the embedded expiry has passed, and
	// ErrInvalidToken for malformed tokens or bad signatures.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified contents of a token. On success the
// service yields the embedded user ID and nothing else of consequence;
// the standard claims are carried for logging.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
