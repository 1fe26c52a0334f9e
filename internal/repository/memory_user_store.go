package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"ticketr/internal/model"
)

// MemoryUserStore is an in-memory UserStore used by tests and the
// STORE_DRIVER=memory development mode.
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID uint64
	users  map[uint64]model.User
}

// NewMemoryUserStore returns an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[uint64]model.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailExists
		}
	}
	u.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = copyUser(*u)
	return nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryUserStore) GetByVerifyToken(ctx context.Context, token string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.VerifyToken != nil && *u.VerifyToken == token {
			return copyUser(u), nil
		}
	}
	return model.User{}, ErrTokenNotFound
}

func (s *MemoryUserStore) ClearVerifyToken(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.VerifyToken = nil
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return nil
}

func copyUser(u model.User) model.User {
	if u.VerifyToken != nil {
		v := *u.VerifyToken
		u.VerifyToken = &v
	}
	return u
}
