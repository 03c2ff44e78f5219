package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Session is one user's Kite login, keyed by their Telegram user id.
// LoginTime is epoch milliseconds.
type Session struct {
	TelegramUserID string
	AccessToken    string
	PublicToken    string
	KiteUserID     string
	UserName       string
	AvatarURL      string
	LoginTime      int64
}

// SaveSession upserts the session for a user, overwriting all fields. A zero
// LoginTime is replaced with the current time.
func (s *Store) SaveSession(ctx context.Context, userID string, sess Session) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if sess.LoginTime == 0 {
		sess.LoginTime = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO sessions (telegram_user_id, access_token, public_token, kite_user_id, user_name, avatar_url, login_time)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(telegram_user_id) DO UPDATE SET
    access_token=excluded.access_token,
    public_token=excluded.public_token,
    kite_user_id=excluded.kite_user_id,
    user_name=excluded.user_name,
    avatar_url=excluded.avatar_url,
    login_time=excluded.login_time
`, userID, sess.AccessToken, sess.PublicToken, sess.KiteUserID, sess.UserName, sess.AvatarURL, sess.LoginTime)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetSession returns the stored session for a user, or (nil, nil) when the
// user has never logged in.
func (s *Store) GetSession(ctx context.Context, userID string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT telegram_user_id, access_token, public_token, kite_user_id, user_name, avatar_url, login_time
FROM sessions
WHERE telegram_user_id = ?
`, userID)

	var sess Session
	if err := row.Scan(&sess.TelegramUserID, &sess.AccessToken, &sess.PublicToken,
		&sess.KiteUserID, &sess.UserName, &sess.AvatarURL, &sess.LoginTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// DeleteSession removes a user's session. Deleting an absent session is not
// an error.
func (s *Store) DeleteSession(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE telegram_user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
