// Package storage defines the persistence contracts for the site.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/inkwell-web/inkwell/internal/auth"
	"github.com/inkwell-web/inkwell/internal/blog"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// UserStore persists registered accounts.
type UserStore interface {
	PutUser(ctx context.Context, u auth.User) error
	GetUser(ctx context.Context, userID string) (auth.User, error)
	GetUserByUsername(ctx context.Context, username string) (auth.User, error)
	GetUserByEmail(ctx context.Context, email string) (auth.User, error)
}

// SessionStore persists server-side web sessions.
type SessionStore interface {
	PutSession(ctx context.Context, s auth.Session) error
	GetSession(ctx context.Context, sessionID string) (auth.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}

// CategoryStore persists article categories.
type CategoryStore interface {
	PutCategory(ctx context.Context, c blog.Category) error
	GetCategory(ctx context.Context, categoryID string) (blog.Category, error)
	GetCategoryByName(ctx context.Context, name string) (blog.Category, error)
	ListCategories(ctx context.Context) ([]blog.Category, error)
	// DeleteCategory removes the category and every dependent article in one
	// transaction. Cascading is an explicit, intentional operation here and
	// covers rows only; cascaded articles' image files stay on disk unless
	// the caller releases them through the media store beforehand.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ArticleWindow selects a recency-ordered slice of the feed.
type ArticleWindow struct {
	// CategoryID restricts the feed to one category when non-empty.
	CategoryID string
	Offset     int
	// Limit caps returned rows; zero means no cap.
	Limit int
}

// ArticleStore persists articles.
type ArticleStore interface {
	PutArticle(ctx context.Context, a blog.Article) error
	GetArticle(ctx context.Context, articleID string) (blog.Article, error)
	DeleteArticle(ctx context.Context, articleID string) error
	// ListArticles returns articles ordered by creation time descending,
	// id descending on ties.
	ListArticles(ctx context.Context, window ArticleWindow) ([]blog.Article, error)
	CountArticles(ctx context.Context, categoryID string) (int, error)
}

// ContactStore persists contact messages. Submissions are write-only; the
// site never reads them back.
type ContactStore interface {
	PutContact(ctx context.Context, c blog.Contact) error
}
