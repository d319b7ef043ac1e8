package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
)

const (
	selectCacheEntry = `SELECT cache_key, scope, user_id, payload_json, refreshed_at, expires_at
FROM cache_entries WHERE cache_key = ?`
	upsertCacheEntry = `INSERT INTO cache_entries (cache_key, scope, user_id, payload_json, refreshed_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(cache_key) DO UPDATE SET
	scope = excluded.scope,
	user_id = excluded.user_id,
	payload_json = excluded.payload_json,
	refreshed_at = excluded.refreshed_at,
	expires_at = excluded.expires_at`
	deleteCacheEntry = `DELETE FROM cache_entries WHERE cache_key = ?`
	deleteUserCache  = `DELETE FROM cache_entries WHERE user_id = ?`
)

// GetCacheEntry loads the entry stored under key. Expiry is the caller's
// concern, so stale entries are returned too.
func (s *Store) GetCacheEntry(ctx context.Context, key string) (webstorage.CacheEntry, bool, error) {
	db, err := s.db()
	if err != nil {
		return webstorage.CacheEntry{}, false, err
	}
	if key, err = required(key, "cache key"); err != nil {
		return webstorage.CacheEntry{}, false, err
	}
	var (
		entry              webstorage.CacheEntry
		refreshed, expires int64
	)
	err = db.QueryRowContext(ctx, selectCacheEntry, key).
		Scan(&entry.CacheKey, &entry.Scope, &entry.UserID, &entry.PayloadBytes, &refreshed, &expires)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return webstorage.CacheEntry{}, false, nil
	case err != nil:
		return webstorage.CacheEntry{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	entry.RefreshedAt = fromMillis(refreshed)
	entry.ExpiresAt = fromMillis(expires)
	return entry, true, nil
}

// PutCacheEntry upserts entry by its key.
func (s *Store) PutCacheEntry(ctx context.Context, entry webstorage.CacheEntry) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	if entry.CacheKey, err = required(entry.CacheKey, "cache key"); err != nil {
		return err
	}
	if entry.Scope, err = required(entry.Scope, "cache scope"); err != nil {
		return err
	}
	if len(entry.PayloadBytes) == 0 {
		return errors.New("cache payload is required")
	}
	if entry.RefreshedAt.IsZero() {
		entry.RefreshedAt = time.Now()
	}
	if _, err := db.ExecContext(ctx, upsertCacheEntry,
		entry.CacheKey, entry.Scope, strings.TrimSpace(entry.UserID), entry.PayloadBytes,
		millis(entry.RefreshedAt), millis(entry.ExpiresAt),
	); err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// DeleteCacheEntry removes the entry stored under key.
func (s *Store) DeleteCacheEntry(ctx context.Context, key string) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	if key, err = required(key, "cache key"); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, deleteCacheEntry, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// DeleteUserCacheEntries removes every entry owned by userID.
func (s *Store) DeleteUserCacheEntries(ctx context.Context, userID string) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	if userID, err = required(userID, "user id"); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, deleteUserCache, userID); err != nil {
		return fmt.Errorf("delete user cache entries: %w", err)
	}
	return nil
}
