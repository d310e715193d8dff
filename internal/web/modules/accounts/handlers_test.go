package accounts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/inkwell-web/inkwell/internal/auth"
	"github.com/inkwell-web/inkwell/internal/web/platform/flash"
	"github.com/inkwell-web/inkwell/internal/web/platform/htmx"
	"github.com/inkwell-web/inkwell/internal/web/platform/sessioncookie"
	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

func testHandler(t *testing.T, users *fakeUserStore, sessions *fakeSessionStore) http.Handler {
	t.Helper()
	mount, err := New(Deps{
		Users:    users,
		Sessions: sessions,
		Now:      func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}).Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return mount.Handler
}

func registeredUser(t *testing.T) auth.User {
	t.Helper()
	user, err := auth.CreateUser(auth.CreateUserInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	}, nil, nil)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func postForm(handler http.Handler, target string, form url.Values, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func flashMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name != flash.CookieName || cookie.Value == "" {
			continue
		}
		payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
		if err != nil {
			t.Fatalf("decode flash cookie: %v", err)
		}
		var notice flash.Notice
		if err := json.Unmarshal(payload, &notice); err != nil {
			t.Fatalf("unmarshal flash cookie: %v", err)
		}
		return notice.Message
	}
	return ""
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessioncookie.Name {
			return cookie
		}
	}
	return nil
}

func TestSignUpFormRenders(t *testing.T) {
	t.Parallel()

	handler := testHandler(t, newFakeUserStore(), newFakeSessionStore())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, routepath.SignUp, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "id=\"signup-form\"") {
		t.Fatal("response missing signup form")
	}
}

func TestSignUpSuccess(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	handler := testHandler(t, users, sessions)

	rec := postForm(handler, routepath.SignUp, url.Values{
		"username":  {"Ada"},
		"email":     {"Ada@Example.com"},
		"password":  {"hunter22"},
		"password2": {"hunter22"},
	}, nil)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != routepath.Root {
		t.Fatalf("Location = %q, want %q", got, routepath.Root)
	}

	user, err := users.GetUserByUsername(context.Background(), "ada")
	if err != nil {
		t.Fatalf("user not stored under normalized username: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
	if sessions.count() != 1 {
		t.Fatalf("session count = %d, want 1", sessions.count())
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("signup did not set the session cookie")
	}
	if msg := flashMessage(t, rec); !strings.Contains(msg, "Welcome") {
		t.Fatalf("flash = %q, want welcome notice", msg)
	}
}

func TestSignUpRejections(t *testing.T) {
	t.Parallel()

	existing := registeredUser(t)

	tests := []struct {
		name        string
		form        url.Values
		wantMessage string
	}{
		{
			name: "password mismatch",
			form: url.Values{
				"username": {"grace"}, "email": {"grace@example.com"},
				"password": {"one"}, "password2": {"two"},
			},
			wantMessage: "Passwords do not match",
		},
		{
			name: "username taken",
			form: url.Values{
				"username": {"ada"}, "email": {"other@example.com"},
				"password": {"pw"}, "password2": {"pw"},
			},
			wantMessage: "That username is taken",
		},
		{
			name: "email taken",
			form: url.Values{
				"username": {"grace"}, "email": {"ada@example.com"},
				"password": {"pw"}, "password2": {"pw"},
			},
			wantMessage: "That email is already registered",
		},
		{
			name: "invalid username",
			form: url.Values{
				"username": {"a!"}, "email": {"grace@example.com"},
				"password": {"pw"}, "password2": {"pw"},
			},
			wantMessage: "username must be",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			users := newFakeUserStore(existing)
			sessions := newFakeSessionStore()
			handler := testHandler(t, users, sessions)

			rec := postForm(handler, routepath.SignUp, tc.form, nil)
			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != routepath.SignUp {
				t.Fatalf("Location = %q, want back to %q", got, routepath.SignUp)
			}
			if msg := flashMessage(t, rec); !strings.Contains(msg, tc.wantMessage) {
				t.Fatalf("flash = %q, want %q", msg, tc.wantMessage)
			}
			if sessions.count() != 0 {
				t.Fatalf("session count = %d, want 0 after rejection", sessions.count())
			}
		})
	}
}

func TestSignInSuccess(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(registeredUser(t))
	sessions := newFakeSessionStore()
	handler := testHandler(t, users, sessions)

	rec := postForm(handler, routepath.SignIn, url.Values{
		"username": {"ada"},
		"password": {"hunter22"},
	}, nil)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != routepath.Root {
		t.Fatalf("Location = %q, want %q", got, routepath.Root)
	}
	if sessionCookie(rec) == nil {
		t.Fatal("signin did not set the session cookie")
	}
	if sessions.count() != 1 {
		t.Fatalf("session count = %d, want 1", sessions.count())
	}
}

func TestSignInFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form url.Values
	}{
		{name: "unknown user", form: url.Values{"username": {"nobody"}, "password": {"hunter22"}}},
		{name: "wrong password", form: url.Values{"username": {"ada"}, "password": {"wrong"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			users := newFakeUserStore(registeredUser(t))
			sessions := newFakeSessionStore()
			handler := testHandler(t, users, sessions)

			rec := postForm(handler, routepath.SignIn, tc.form, nil)
			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != routepath.SignIn {
				t.Fatalf("Location = %q, want back to %q", got, routepath.SignIn)
			}
			if msg := flashMessage(t, rec); !strings.Contains(msg, "incorrect") {
				t.Fatalf("flash = %q, want credentials message", msg)
			}
			if sessions.count() != 0 {
				t.Fatalf("session count = %d, want 0", sessions.count())
			}
		})
	}
}

func TestSignInHTMXRedirectHeader(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(registeredUser(t))
	handler := testHandler(t, users, newFakeSessionStore())

	rec := postForm(handler, routepath.SignIn, url.Values{
		"username": {"ada"},
		"password": {"hunter22"},
	}, func(r *http.Request) {
		r.Header.Set(htmx.RequestHeaderKey, "true")
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for htmx redirect", rec.Code)
	}
	if got := rec.Header().Get(htmx.RedirectHeaderKey); got != routepath.Root {
		t.Fatalf("%s = %q, want %q", htmx.RedirectHeaderKey, got, routepath.Root)
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	openSession := func(t *testing.T, sessions *fakeSessionStore) auth.Session {
		t.Helper()
		session, err := auth.NewSession("user-1", nil, nil)
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}
		if err := sessions.PutSession(context.Background(), session); err != nil {
			t.Fatalf("PutSession: %v", err)
		}
		return session
	}

	t.Run("same-origin logout closes the session", func(t *testing.T) {
		t.Parallel()

		sessions := newFakeSessionStore()
		session := openSession(t, sessions)
		handler := testHandler(t, newFakeUserStore(), sessions)

		rec := postForm(handler, "http://example.com"+routepath.Logout, nil, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: session.ID})
			r.Header.Set("Origin", "http://example.com")
		})

		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", rec.Code)
		}
		if sessions.count() != 0 {
			t.Fatalf("session count = %d, want 0", sessions.count())
		}
		cookie := sessionCookie(rec)
		if cookie == nil || cookie.MaxAge != -1 {
			t.Fatal("logout did not expire the session cookie")
		}
	})

	t.Run("cross-origin logout is rejected", func(t *testing.T) {
		t.Parallel()

		sessions := newFakeSessionStore()
		session := openSession(t, sessions)
		handler := testHandler(t, newFakeUserStore(), sessions)

		rec := postForm(handler, "http://example.com"+routepath.Logout, nil, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: session.ID})
			r.Header.Set("Origin", "http://evil.test")
		})

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if sessions.count() != 1 {
			t.Fatalf("session count = %d, want session kept", sessions.count())
		}
	})

	t.Run("logout without a session still clears and redirects", func(t *testing.T) {
		t.Parallel()

		handler := testHandler(t, newFakeUserStore(), newFakeSessionStore())
		rec := postForm(handler, routepath.Logout, nil, nil)

		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", rec.Code)
		}
		if got := rec.Header().Get("Location"); got != routepath.Root {
			t.Fatalf("Location = %q, want %q", got, routepath.Root)
		}
	})
}
