package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-web/inkwell/internal/auth"
	"github.com/inkwell-web/inkwell/internal/storage"
)

// PutUser inserts or updates a user record.
func (s *Store) PutUser(ctx context.Context, u auth.User) error {
	if err := s.ready(); err != nil {
		return err
	}
	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    username = excluded.username,
		    email = excluded.email,
		    password_hash = excluded.password_hash`,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		timeToUnixMillis(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (auth.User, error) {
	return s.getUserWhere(ctx, "id = ?", strings.TrimSpace(userID))
}

// GetUserByUsername loads a user by normalized username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (auth.User, error) {
	return s.getUserWhere(ctx, "username = ?", strings.ToLower(strings.TrimSpace(username)))
}

// GetUserByEmail loads a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	return s.getUserWhere(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) getUserWhere(ctx context.Context, where string, arg string) (auth.User, error) {
	if err := s.ready(); err != nil {
		return auth.User{}, err
	}
	if arg == "" {
		return auth.User{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE "+where,
		arg,
	)

	var u auth.User
	var createdAt int64
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return auth.User{}, storage.ErrNotFound
		}
		return auth.User{}, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = unixMillisToTime(createdAt)
	return u, nil
}

// PutSession stores a web session.
func (s *Store) PutSession(ctx context.Context, session auth.Session) error {
	if err := s.ready(); err != nil {
		return err
	}
	session.ID = strings.TrimSpace(session.ID)
	if session.ID == "" {
		return fmt.Errorf("session id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET expires_at = excluded.expires_at`,
		session.ID,
		session.UserID,
		timeToUnixMillis(session.CreatedAt),
		timeToUnixMillis(session.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession loads a web session by id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (auth.Session, error) {
	if err := s.ready(); err != nil {
		return auth.Session{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return auth.Session{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?",
		sessionID,
	)

	var session auth.Session
	var createdAt int64
	var expiresAt int64
	if err := row.Scan(&session.ID, &session.UserID, &createdAt, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return auth.Session{}, storage.ErrNotFound
		}
		return auth.Session{}, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = unixMillisToTime(createdAt)
	session.ExpiresAt = unixMillisToTime(expiresAt)
	return session, nil
}

// DeleteSession removes a web session.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", strings.TrimSpace(sessionID))
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every session past expiry.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", timeToUnixMillis(now))
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
