package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/thingful/internal/common"
	"github.com/dmitrijs2005/thingful/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is a process-local Repository. The lookup-and-insert in
// Create runs under one lock, so concurrent registrations of the same name
// yield exactly one success.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*models.User
	byName map[string]string
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*models.User),
		byName: make(map[string]string),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, dbError(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.UserName]; ok {
		return nil, common.ErrUsernameTaken
	}

	user.ID = uuid.NewString()
	user.DateCreated = r.now()

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byName[stored.UserName] = stored.ID

	return user, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, dbError(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, dbError(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.Nickname != nil {
		n := *u.Nickname
		c.Nickname = &n
	}
	return &c
}
