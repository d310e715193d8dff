package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-web/inkwell/internal/blog"
)

// PutContact stores a contact message. Contacts are immutable once written.
func (s *Store) PutContact(ctx context.Context, c blog.Contact) error {
	if err := s.ready(); err != nil {
		return err
	}
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return fmt.Errorf("contact id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO contacts (id, name, email, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Name,
		c.Email,
		c.Subject,
		c.Message,
		timeToUnixMillis(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}
	return nil
}
