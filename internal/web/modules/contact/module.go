// Package contact serves the contact form and its submission endpoint.
package contact

import (
	"context"
	"net/http"
	"time"

	"github.com/inkwell-web/inkwell/internal/blog"
	module "github.com/inkwell-web/inkwell/internal/web/module"
	"github.com/inkwell-web/inkwell/internal/web/platform/requestmeta"
	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

// ContactStore persists submitted contact messages.
type ContactStore interface {
	PutContact(ctx context.Context, c blog.Contact) error
}

// Deps carries the collaborators the contact module needs.
type Deps struct {
	Contacts ContactStore

	ResolveIdentity module.ResolveIdentity
	SchemePolicy    requestmeta.SchemePolicy

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// Module provides the contact routes.
type Module struct {
	deps Deps
}

// New returns the contact module.
func New(deps Deps) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	return "contact"
}

// Mount wires the contact routes at their site paths.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(m.deps)
	registerRoutes(mux, h)
	return module.Mount{Prefixes: []string{routepath.Contact}, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Contact+"{$}", h.handleForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.ContactSubmit+"{$}", h.handleSubmit)
}
