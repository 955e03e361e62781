// Package memory provides the in-process repositories backing the server.
// All state lives in uncontended process memory; each store carries one
// exclusive lock so concurrent requests cannot race on id assignment or
// uniqueness checks. Nothing slow (hashing, token work) runs under a lock.
package memory

import (
	"context"
	"sync"

	"github.com/gatherhub/server/internal/domain/users"
	"github.com/gatherhub/server/internal/metrics"
)

// UserStore holds user records. Users are never deleted, so ids assigned
// from the counter are unique for the life of the process.
type UserStore struct {
	mu      sync.Mutex
	byEmail map[string]int64
	byID    map[int64]users.User
	nextID  int64
}

func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]int64),
		byID:    make(map[int64]users.User),
	}
}

func (s *UserStore) Create(_ context.Context, params users.CreateParams) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[params.Email]; ok {
		return users.User{}, users.ErrEmailTaken
	}

	s.nextID++
	user := users.User{
		ID:           s.nextID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
	}
	s.byEmail[user.Email] = user.ID
	s.byID[user.ID] = user

	metrics.UsersTotal.Set(float64(len(s.byID)))
	return user, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return users.User{}, users.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return users.User{}, users.ErrUserNotFound
	}
	return user, nil
}

func (s *UserStore) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
