// Package refreshtokens declares the server-side repository contract for the
// per-user list of currently valid refresh tokens.
package refreshtokens

import (
	"context"
	"time"
)

// Repository defines operations for issuing, consuming, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Consume atomically removes the unexpired token owned by userID. It
	// returns common.ErrorNotFound when no such token is stored, which is how
	// a replayed (already rotated or revoked) token is detected.
	Consume(ctx context.Context, userID string, token string) error

	// Delete removes a refresh token by its token string. Deleting a
	// non-existent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired prunes the user's expired tokens.
	DeleteExpired(ctx context.Context, userID string) error
}
