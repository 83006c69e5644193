package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Safe for concurrent use.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.User
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range r.byID {
		if u.UserName == user.UserName || u.Email == email {
			return nil, common.ErrorAlreadyExists
		}
	}

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = *user
	r.order = append(r.order, user.ID)
	return user, nil
}

func (r *MemoryRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.byID {
		if u.UserName == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) GetUserByLogin(_ context.Context, emailOrUsername string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email := strings.ToLower(emailOrUsername)
	var byName *models.User
	for _, id := range r.order {
		u := r.byID[id]
		if u.Email == email {
			return &u, nil
		}
		if byName == nil && u.UserName == emailOrUsername {
			byName = &u
		}
	}
	if byName == nil {
		return nil, common.ErrorNotFound
	}
	return byName, nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}
