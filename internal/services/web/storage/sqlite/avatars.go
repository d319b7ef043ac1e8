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
	upsertAvatar = `INSERT INTO avatars (user_id, content_type, data, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
	content_type = excluded.content_type,
	data = excluded.data,
	updated_at = excluded.updated_at`
	selectAvatar = `SELECT user_id, content_type, data, updated_at FROM avatars WHERE user_id = ?`
)

// PutAvatar stores or replaces the avatar of avatar.UserID.
func (s *Store) PutAvatar(ctx context.Context, avatar webstorage.Avatar) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	if avatar.UserID, err = required(avatar.UserID, "user id"); err != nil {
		return err
	}
	if len(avatar.Data) == 0 {
		return errors.New("avatar data is required")
	}
	if avatar.UpdatedAt.IsZero() {
		avatar.UpdatedAt = time.Now()
	}
	if _, err := db.ExecContext(ctx, upsertAvatar,
		avatar.UserID, avatar.ContentType, avatar.Data, millis(avatar.UpdatedAt),
	); err != nil {
		return fmt.Errorf("put avatar: %w", err)
	}
	return nil
}

// GetAvatar loads the avatar of userID.
func (s *Store) GetAvatar(ctx context.Context, userID string) (webstorage.Avatar, bool, error) {
	db, err := s.db()
	if err != nil {
		return webstorage.Avatar{}, false, err
	}
	var (
		avatar  webstorage.Avatar
		updated int64
	)
	err = db.QueryRowContext(ctx, selectAvatar, strings.TrimSpace(userID)).
		Scan(&avatar.UserID, &avatar.ContentType, &avatar.Data, &updated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return webstorage.Avatar{}, false, nil
	case err != nil:
		return webstorage.Avatar{}, false, fmt.Errorf("get avatar: %w", err)
	}
	avatar.UpdatedAt = fromMillis(updated)
	return avatar, true, nil
}
