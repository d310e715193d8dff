package blog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-web/inkwell/internal/platform/id"
)

// ErrMissingContactFields indicates a required contact field is empty after trimming.
var ErrMissingContactFields = errors.New("name, email, and message are required")

// Contact is one submitted contact message. Records are write-only: created
// once by the contact form and never read back through the site.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// NewContactInput describes a contact form submission.
type NewContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// NewContact builds a contact record from validated input.
func NewContact(input NewContactInput, now func() time.Time, idGenerator func() (string, error)) (Contact, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if input.Name == "" || input.Email == "" || input.Message == "" {
		return Contact{}, ErrMissingContactFields
	}

	contactID, err := idGenerator()
	if err != nil {
		return Contact{}, fmt.Errorf("generate contact id: %w", err)
	}

	return Contact{
		ID:        contactID,
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: now().UTC(),
	}, nil
}
