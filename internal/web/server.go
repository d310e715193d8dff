// Package web composes the site handler from its feature modules.
package web

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/inkwell-web/inkwell/internal/media"
	"github.com/inkwell-web/inkwell/internal/storage"
	module "github.com/inkwell-web/inkwell/internal/web/module"
	"github.com/inkwell-web/inkwell/internal/web/modules/accounts"
	"github.com/inkwell-web/inkwell/internal/web/modules/articles"
	"github.com/inkwell-web/inkwell/internal/web/modules/contact"
	"github.com/inkwell-web/inkwell/internal/web/platform/httpx"
	"github.com/inkwell-web/inkwell/internal/web/platform/requestmeta"
	"github.com/inkwell-web/inkwell/internal/web/platform/sessioncookie"
)

// Deps carries everything the composed site handler needs.
type Deps struct {
	Users      storage.UserStore
	Sessions   storage.SessionStore
	Articles   storage.ArticleStore
	Categories storage.CategoryStore
	Contacts   storage.ContactStore

	Media *media.Store

	SchemePolicy requestmeta.SchemePolicy

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// NewHandler assembles the full site handler: feature modules, the media
// file server, and the shared middleware chain.
func NewHandler(deps Deps) (http.Handler, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	resolve := identityResolver(deps.Users, deps.Sessions, now)

	modules := []module.Module{
		accounts.New(accounts.Deps{
			Users:           deps.Users,
			Sessions:        deps.Sessions,
			ResolveIdentity: resolve,
			SchemePolicy:    deps.SchemePolicy,
			Now:             now,
		}),
		contact.New(contact.Deps{
			Contacts:        deps.Contacts,
			ResolveIdentity: resolve,
			SchemePolicy:    deps.SchemePolicy,
			Now:             now,
		}),
		articles.New(articles.Deps{
			Articles:        deps.Articles,
			Categories:      deps.Categories,
			Users:           deps.Users,
			Media:           deps.Media,
			ResolveIdentity: resolve,
			SchemePolicy:    deps.SchemePolicy,
			Now:             now,
		}),
	}

	mux := http.NewServeMux()
	for _, m := range modules {
		mount, err := m.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %s: %w", m.ID(), err)
		}
		for _, prefix := range mount.Prefixes {
			mux.Handle(prefix, mount.Handler)
		}
		log.Printf("module mounted id=%s prefixes=%s", m.ID(), strings.Join(mount.Prefixes, ","))
	}

	if deps.Media != nil {
		mux.Handle(http.MethodGet+" "+media.URLPrefix,
			http.StripPrefix(media.URLPrefix, http.FileServer(http.Dir(deps.Media.Root()))))
	}

	return httpx.Chain(mux, httpx.RequestID(), httpx.RecoverPanic()), nil
}

// identityResolver maps the session cookie to an authenticated identity.
// Expired or dangling sessions resolve as anonymous.
func identityResolver(users storage.UserStore, sessions storage.SessionStore, now func() time.Time) module.ResolveIdentity {
	return func(r *http.Request) (module.Identity, bool) {
		sessionID, ok := sessioncookie.Read(r)
		if !ok {
			return module.Identity{}, false
		}
		ctx := httpx.RequestContext(r)
		session, err := sessions.GetSession(ctx, sessionID)
		if err != nil {
			return module.Identity{}, false
		}
		if session.Expired(now()) {
			return module.Identity{}, false
		}
		user, err := users.GetUser(ctx, session.UserID)
		if err != nil {
			return module.Identity{}, false
		}
		return module.Identity{UserID: user.ID, Username: user.Username}, true
	}
}
