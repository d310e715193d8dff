package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-web/inkwell/internal/platform/id"
)

// SessionTTL bounds how long a web session stays valid.
const SessionTTL = 30 * 24 * time.Hour

// Session is one server-side web session.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// NewSession opens a session for the given user.
func NewSession(userID string, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, fmt.Errorf("user id is required")
	}
	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}
	createdAt := now().UTC()
	return Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(SessionTTL),
	}, nil
}
