package accounts

import (
	"context"
	"sync"

	"github.com/inkwell-web/inkwell/internal/auth"
	"github.com/inkwell-web/inkwell/internal/storage"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]auth.User
}

func newFakeUserStore(users ...auth.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[string]auth.User)}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (f *fakeUserStore) PutUser(_ context.Context, u auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return auth.User{}, storage.ErrNotFound
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return auth.User{}, storage.ErrNotFound
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]auth.Session)}
}

func (f *fakeSessionStore) PutSession(_ context.Context, s auth.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[sessionID]; !ok {
		return storage.ErrNotFound
	}
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}
