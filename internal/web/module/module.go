// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Identity describes the authenticated requester, when any.
type Identity struct {
	UserID   string
	Username string
}

// ResolveIdentity resolves the authenticated identity for a request. The
// second return value is false for anonymous requests.
type ResolveIdentity func(*http.Request) (Identity, bool)

// Mount describes a module route mount. The handler is registered at every
// prefix and receives unstripped request paths, so module muxes use full
// site paths in their patterns.
type Mount struct {
	Prefixes []string
	Handler  http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
