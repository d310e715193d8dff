// Package articles serves the article feed, detail, and authoring routes.
package articles

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/inkwell-web/inkwell/internal/auth"
	"github.com/inkwell-web/inkwell/internal/blog"
	"github.com/inkwell-web/inkwell/internal/storage"
	module "github.com/inkwell-web/inkwell/internal/web/module"
	"github.com/inkwell-web/inkwell/internal/web/platform/requestmeta"
	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

// ArticleStore persists and queries articles.
type ArticleStore interface {
	PutArticle(ctx context.Context, a blog.Article) error
	GetArticle(ctx context.Context, articleID string) (blog.Article, error)
	DeleteArticle(ctx context.Context, articleID string) error
	ListArticles(ctx context.Context, window storage.ArticleWindow) ([]blog.Article, error)
	CountArticles(ctx context.Context, categoryID string) (int, error)
}

// CategoryStore resolves and lists categories.
type CategoryStore interface {
	GetCategory(ctx context.Context, categoryID string) (blog.Category, error)
	GetCategoryByName(ctx context.Context, name string) (blog.Category, error)
	ListCategories(ctx context.Context) ([]blog.Category, error)
}

// UserStore resolves article authors for display.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (auth.User, error)
}

// MediaStore persists uploaded article images.
type MediaStore interface {
	SaveImage(filename string, content io.Reader) (string, error)
	Remove(relPath string) error
}

// Deps carries the collaborators the articles module needs.
type Deps struct {
	Articles   ArticleStore
	Categories CategoryStore
	Users      UserStore
	Media      MediaStore

	ResolveIdentity module.ResolveIdentity
	SchemePolicy    requestmeta.SchemePolicy

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// Module provides the feed and article CRUD routes.
type Module struct {
	deps Deps
}

// New returns the articles module.
func New(deps Deps) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	return "articles"
}

// Mount wires article routes at the site root.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.deps)
	h := newHandlers(svc, m.deps.ResolveIdentity, m.deps.SchemePolicy)
	registerRoutes(mux, h)
	return module.Mount{Prefixes: []string{routepath.Root}, Handler: mux}, nil
}
