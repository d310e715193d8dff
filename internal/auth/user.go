// Package auth provides user identity and server-side session management.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-web/inkwell/internal/platform/id"
)

var (
	// ErrEmptyUsername indicates a missing username.
	ErrEmptyUsername = errors.New("username is required")
	// ErrInvalidUsername indicates a username outside the canonical format.
	ErrInvalidUsername = errors.New("username must be 3-32 lowercase alphanumeric, dot, dash, or underscore characters")
	// ErrEmptyEmail indicates a missing email address.
	ErrEmptyEmail = errors.New("email is required")
	// ErrEmptyPassword indicates a missing password.
	ErrEmptyPassword = errors.New("password is required")
	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("username or password is incorrect")

	usernamePattern = regexp.MustCompile(`^[a-z0-9_.\-]{3,32}$`)
)

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserInput describes the data needed to register a user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// ValidateUsername enforces canonical username constraints.
func ValidateUsername(s string) error {
	if !usernamePattern.MatchString(s) {
		return ErrInvalidUsername
	}
	return nil
}

// CreateUser creates a durable user identity from validated input. The
// password is hashed with bcrypt; the plaintext is never stored.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateUserInput(input)
	if err != nil {
		return User{}, err
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	return User{
		ID:           userID,
		Username:     normalized.Username,
		Email:        normalized.Email,
		PasswordHash: string(hash),
		CreatedAt:    now().UTC(),
	}, nil
}

// NormalizeCreateUserInput trims and normalizes input before validation.
func NormalizeCreateUserInput(input CreateUserInput) (CreateUserInput, error) {
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	if input.Username == "" {
		return CreateUserInput{}, ErrEmptyUsername
	}
	if err := ValidateUsername(input.Username); err != nil {
		return CreateUserInput{}, err
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" {
		return CreateUserInput{}, ErrEmptyEmail
	}
	if input.Password == "" {
		return CreateUserInput{}, ErrEmptyPassword
	}
	return input, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func VerifyPassword(u User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
