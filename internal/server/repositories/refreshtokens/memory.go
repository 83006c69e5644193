package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/models"
)

// MemoryRepository keeps refresh tokens in process memory. Consume holds the
// write lock for the whole check-and-remove, so it is as atomic as the SQL
// DELETE ... RETURNING.
type MemoryRepository struct {
	mu      sync.Mutex
	byToken map[string]models.RefreshToken
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byToken: make(map[string]models.RefreshToken),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(_ context.Context, userID string, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byToken[token]; ok {
		return common.ErrorAlreadyExists
	}
	now := r.now()
	r.byToken[token] = models.RefreshToken{
		UserID:    userID,
		Token:     token,
		Expires:   now.Add(validity),
		CreatedAt: now,
	}
	return nil
}

func (r *MemoryRepository) Consume(_ context.Context, userID string, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byToken[token]
	if !ok || t.UserID != userID || !t.Expires.After(r.now()) {
		return common.ErrorNotFound
	}
	delete(r.byToken, token)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byToken, token)
	return nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, t := range r.byToken {
		if t.UserID == userID && !t.Expires.After(now) {
			delete(r.byToken, k)
		}
	}
	return nil
}

// Count returns the number of stored tokens for userID.
func (r *MemoryRepository) Count(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, t := range r.byToken {
		if t.UserID == userID {
			n++
		}
	}
	return n
}
