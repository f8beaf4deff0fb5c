package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

// UserRepo is the in-process account table used with STORE_DRIVER=memory.
type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]models.User
	order []string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: map[string]models.User{}}
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID]; ok {
		return utils.ErrConflict
	}
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return utils.ErrConflict
		}
	}
	r.byID[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		u := r.byID[id]
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}
