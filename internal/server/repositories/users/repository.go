// Package users declares the server-side repository contract for user
// accounts and provides PostgreSQL and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/kanban/internal/server/models"
)

// Repository defines operations on user accounts. Lookups return
// common.ErrorNotFound when no user matches.
type Repository interface {
	// Create inserts the user and fills ID and timestamps. A username or
	// email that is already taken yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether any user holds the username or
	// the (case-insensitive) email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// GetUserByLogin finds a user by lowercased email or exact username,
	// preferring an email match. PasswordHash is populated.
	GetUserByLogin(ctx context.Context, emailOrUsername string) (*models.User, error)

	// GetUserByID returns the user without its password hash.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
