package teamcache

import (
	"context"
	"encoding/json"
	"sync"

	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

type fakeSource struct {
	adminResp  *taskmate.Response
	memberResp *taskmate.Response
	err        error
	adminCalls int
}

func (f *fakeSource) ListAdminTeams(context.Context, taskmate.Credentials) (*taskmate.Response, error) {
	f.adminCalls++
	return f.adminResp, f.err
}

func (f *fakeSource) ListMemberTeams(context.Context, taskmate.Credentials) (*taskmate.Response, error) {
	return f.memberResp, f.err
}

// memoryCache implements webstorage.CacheStore in memory.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]webstorage.CacheEntry
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]webstorage.CacheEntry{}}
}

func (m *memoryCache) GetCacheEntry(_ context.Context, key string) (webstorage.CacheEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	return entry, ok, nil
}

func (m *memoryCache) PutCacheEntry(_ context.Context, entry webstorage.CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.CacheKey] = entry
	return nil
}

func (m *memoryCache) DeleteCacheEntry(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) DeleteUserCacheEntries(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, entry := range m.entries {
		if entry.UserID == userID {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func teamsResponse(status int, teams []taskmate.Team) *taskmate.Response {
	raw, _ := json.Marshal(teams)
	return &taskmate.Response{
		OK:       status >= 200 && status < 300,
		Status:   status,
		Envelope: &taskmate.Envelope{Status: "success", Data: raw},
	}
}
