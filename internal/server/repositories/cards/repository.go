// Package cards declares the persistence contract for kanban cards. Every
// lookup is scoped by owner, so a card that belongs to someone else is
// reported exactly like a missing one.
package cards

import (
	"context"

	"github.com/dmitrijs2005/kanban/internal/server/models"
)

type Repository interface {
	// Create inserts card and returns it with ID and timestamps filled in.
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	// ListByOwner returns the owner's cards ordered by creation time. The
	// result is never nil.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Card, error)
	// GetByIDForOwner returns common.ErrorNotFound unless id exists and is owned by ownerID.
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Card, error)
	// Update applies the non-nil fields of patch and returns the updated card,
	// or common.ErrorNotFound.
	Update(ctx context.Context, id, ownerID string, patch models.CardPatch) (*models.Card, error)
	// Delete removes the card or returns common.ErrorNotFound.
	Delete(ctx context.Context, id, ownerID string) error
}
