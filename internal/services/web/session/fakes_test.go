package session

import (
	"context"
	"errors"
	"sync"
	"time"

	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
)

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]webstorage.Session
	putErr   error
	sweepErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]webstorage.Session{}}
}

func (f *fakeSessionStore) PutSession(_ context.Context, session webstorage.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, id string, now time.Time) (webstorage.Session, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok || session.Expired(now) {
		return webstorage.Session{}, false, nil
	}
	return session, true, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionStore) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
	var deleted int64
	for id, session := range f.sessions {
		if session.Expired(now) {
			delete(f.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

var errStoreDown = errors.New("store down")

func sessionExpiringAt(id string, expiresAt time.Time) webstorage.Session {
	return webstorage.Session{ID: id, ExpiresAt: expiresAt}
}
