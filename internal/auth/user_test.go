package auth

import (
	"errors"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
}

func staticID(value string) func() (string, error) {
	return func() (string, error) { return value, nil }
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	user, err := CreateUser(CreateUserInput{
		Username: "  Ada_Lovelace  ",
		Email:    " Ada@Example.COM ",
		Password: "hunter22",
	}, fixedNow, staticID("user-1"))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("ID = %q, want user-1", user.ID)
	}
	if user.Username != "ada_lovelace" {
		t.Fatalf("Username = %q, want lowercased and trimmed", user.Username)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("Email = %q, want lowercased and trimmed", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "hunter22" {
		t.Fatal("password was not hashed")
	}
	if !user.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("CreatedAt = %v, want %v", user.CreatedAt, fixedNow())
	}

	if err := VerifyPassword(user, "hunter22"); err != nil {
		t.Fatalf("VerifyPassword(correct): %v", err)
	}
	if err := VerifyPassword(user, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("VerifyPassword(wrong) = %v, want ErrInvalidCredentials", err)
	}
}

func TestNormalizeCreateUserInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   CreateUserInput
		wantErr error
	}{
		{name: "empty username", input: CreateUserInput{Email: "e@example.com", Password: "pw"}, wantErr: ErrEmptyUsername},
		{name: "too short", input: CreateUserInput{Username: "ab", Email: "e@example.com", Password: "pw"}, wantErr: ErrInvalidUsername},
		{name: "uppercase allowed via lowering", input: CreateUserInput{Username: "ADA", Email: "e@example.com", Password: "pw"}},
		{name: "illegal characters", input: CreateUserInput{Username: "ada!", Email: "e@example.com", Password: "pw"}, wantErr: ErrInvalidUsername},
		{name: "empty email", input: CreateUserInput{Username: "ada", Password: "pw"}, wantErr: ErrEmptyEmail},
		{name: "empty password", input: CreateUserInput{Username: "ada", Email: "e@example.com"}, wantErr: ErrEmptyPassword},
		{name: "valid", input: CreateUserInput{Username: "ada.b-c_1", Email: "e@example.com", Password: "pw"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NormalizeCreateUserInput(tc.input)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("err = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	valid := []string{"ada", "a_b", "a.b", "a-b", "abc123", "abcdefghijklmnopqrstuvwxyz012345"}
	for _, username := range valid {
		if err := ValidateUsername(username); err != nil {
			t.Fatalf("ValidateUsername(%q) = %v, want nil", username, err)
		}
	}

	invalid := []string{"", "ab", "ADA", "a b", "ada!", "abcdefghijklmnopqrstuvwxyz0123456"}
	for _, username := range invalid {
		if err := ValidateUsername(username); err == nil {
			t.Fatalf("ValidateUsername(%q) = nil, want error", username)
		}
	}
}
