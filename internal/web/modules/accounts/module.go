// Package accounts serves registration, sign-in, and sign-out routes.
package accounts

import (
	"context"
	"net/http"
	"time"

	"github.com/inkwell-web/inkwell/internal/auth"
	module "github.com/inkwell-web/inkwell/internal/web/module"
	"github.com/inkwell-web/inkwell/internal/web/platform/requestmeta"
	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

// UserStore persists and resolves registered accounts.
type UserStore interface {
	PutUser(ctx context.Context, u auth.User) error
	GetUserByUsername(ctx context.Context, username string) (auth.User, error)
	GetUserByEmail(ctx context.Context, email string) (auth.User, error)
}

// SessionStore opens and closes server-side sessions.
type SessionStore interface {
	PutSession(ctx context.Context, s auth.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// Deps carries the collaborators the accounts module needs.
type Deps struct {
	Users    UserStore
	Sessions SessionStore

	ResolveIdentity module.ResolveIdentity
	SchemePolicy    requestmeta.SchemePolicy

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// Module provides the account lifecycle routes.
type Module struct {
	deps Deps
}

// New returns the accounts module.
func New(deps Deps) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	return "accounts"
}

// Mount wires the account routes at their site paths.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.deps)
	h := newHandlers(svc, m.deps.ResolveIdentity, m.deps.SchemePolicy)
	registerRoutes(mux, h)
	return module.Mount{
		Prefixes: []string{routepath.SignUp, routepath.SignIn, routepath.Logout},
		Handler:  mux,
	}, nil
}
