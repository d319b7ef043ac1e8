package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
)

const (
	upsertSession = `INSERT INTO web_sessions (id, user_id, user_json, credentials, created_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	user_id = excluded.user_id,
	user_json = excluded.user_json,
	credentials = excluded.credentials,
	expires_at = excluded.expires_at`
	selectLiveSession = `SELECT id, user_json, credentials, created_at, expires_at
FROM web_sessions WHERE id = ? AND expires_at > ?`
	deleteSession  = `DELETE FROM web_sessions WHERE id = ?`
	deleteExpiries = `DELETE FROM web_sessions WHERE expires_at <= ?`
)

// PutSession inserts or replaces a session. The original creation time is
// kept on replace.
func (s *Store) PutSession(ctx context.Context, session webstorage.Session) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	if session.ID, err = required(session.ID, "session id"); err != nil {
		return err
	}
	if session.ExpiresAt.IsZero() {
		return errors.New("session expiry is required")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if _, err := db.ExecContext(ctx, upsertSession,
		session.ID, session.User.ID, user, session.Credentials,
		millis(session.CreatedAt), millis(session.ExpiresAt),
	); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession loads the session with id when it is still live at now.
func (s *Store) GetSession(ctx context.Context, id string, now time.Time) (webstorage.Session, bool, error) {
	db, err := s.db()
	if err != nil {
		return webstorage.Session{}, false, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return webstorage.Session{}, false, nil
	}
	var (
		session            webstorage.Session
		user               []byte
		created, expiresAt int64
	)
	err = db.QueryRowContext(ctx, selectLiveSession, id, millis(now)).
		Scan(&session.ID, &user, &session.Credentials, &created, &expiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return webstorage.Session{}, false, nil
	case err != nil:
		return webstorage.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	if err := json.Unmarshal(user, &session.User); err != nil {
		return webstorage.Session{}, false, fmt.Errorf("decode session user: %w", err)
	}
	session.CreatedAt = fromMillis(created)
	session.ExpiresAt = fromMillis(expiresAt)
	return session, true, nil
}

// DeleteSession removes a session. Unknown ids are not an error.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, deleteSession, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions expired at now and reports how many
// went.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	db, err := s.db()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, deleteExpiries, millis(now))
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired sessions: %w", err)
	}
	return n, nil
}
