package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-web/inkwell/internal/auth"
	"github.com/inkwell-web/inkwell/internal/storage"
	apperrors "github.com/inkwell-web/inkwell/internal/web/platform/errors"
)

type signUpForm struct {
	username  string
	email     string
	password  string
	password2 string
}

type service struct {
	users    UserStore
	sessions SessionStore
	now      func() time.Time
}

func newService(deps Deps) service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return service{users: deps.Users, sessions: deps.Sessions, now: now}
}

// signUp registers a new account and opens its first session. Every
// rejection is an invalid-input error carrying the user-facing message.
func (s service) signUp(ctx context.Context, form signUpForm) (auth.User, auth.Session, error) {
	if form.password != form.password2 {
		return auth.User{}, auth.Session{}, apperrors.E(apperrors.KindInvalidInput, "Passwords do not match")
	}

	input, err := auth.NormalizeCreateUserInput(auth.CreateUserInput{
		Username: form.username,
		Email:    form.email,
		Password: form.password,
	})
	if err != nil {
		return auth.User{}, auth.Session{}, apperrors.E(apperrors.KindInvalidInput, err.Error())
	}

	if _, err := s.users.GetUserByUsername(ctx, input.Username); err == nil {
		return auth.User{}, auth.Session{}, apperrors.E(apperrors.KindInvalidInput, "That username is taken")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return auth.User{}, auth.Session{}, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return auth.User{}, auth.Session{}, apperrors.E(apperrors.KindInvalidInput, "That email is already registered")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return auth.User{}, auth.Session{}, fmt.Errorf("check email: %w", err)
	}

	user, err := auth.CreateUser(input, s.now, nil)
	if err != nil {
		return auth.User{}, auth.Session{}, fmt.Errorf("create user: %w", err)
	}
	if err := s.users.PutUser(ctx, user); err != nil {
		return auth.User{}, auth.Session{}, fmt.Errorf("put user: %w", err)
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return auth.User{}, auth.Session{}, err
	}
	return user, session, nil
}

// signIn verifies credentials and opens a session. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s service) signIn(ctx context.Context, username, password string) (auth.User, auth.Session, error) {
	invalid := apperrors.E(apperrors.KindInvalidInput, auth.ErrInvalidCredentials.Error())

	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return auth.User{}, auth.Session{}, invalid
	}
	if err != nil {
		return auth.User{}, auth.Session{}, fmt.Errorf("get user: %w", err)
	}
	if err := auth.VerifyPassword(user, password); err != nil {
		return auth.User{}, auth.Session{}, invalid
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return auth.User{}, auth.Session{}, err
	}
	return user, session, nil
}

// signOut closes the session; a missing session is not an error.
func (s service) signOut(ctx context.Context, sessionID string) error {
	err := s.sessions.DeleteSession(ctx, sessionID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s service) openSession(ctx context.Context, userID string) (auth.Session, error) {
	session, err := auth.NewSession(userID, s.now, nil)
	if err != nil {
		return auth.Session{}, fmt.Errorf("new session: %w", err)
	}
	if err := s.sessions.PutSession(ctx, session); err != nil {
		return auth.Session{}, fmt.Errorf("put session: %w", err)
	}
	return session, nil
}
