package cards

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is a mutex-guarded in-process card store. Returned cards
// are copies; callers cannot mutate stored state.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.Card
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.Card)}
}

func clone(c *models.Card) *models.Card {
	cp := *c
	if c.DueDate != nil {
		d := *c.DueDate
		cp.DueDate = &d
	}
	return &cp
}

func (r *MemoryRepository) Create(_ context.Context, card *models.Card) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := clone(card)
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	if c.Status == "" {
		c.Status = models.CardStatusTodo
	}
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return clone(c), nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Card, 0)
	for _, id := range r.order {
		if c := r.byID[id]; c.OwnerID == ownerID {
			result = append(result, clone(c))
		}
	}
	return result, nil
}

func (r *MemoryRepository) GetByIDForOwner(_ context.Context, id, ownerID string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok || c.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return clone(c), nil
}

func (r *MemoryRepository) Update(_ context.Context, id, ownerID string, patch models.CardPatch) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.DueDate != nil {
		d := *patch.DueDate
		c.DueDate = &d
	}
	c.UpdatedAt = time.Now()
	return clone(c), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
