// Package blog provides the content domain: articles, categories, and
// contact messages.
package blog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-web/inkwell/internal/platform/id"
)

var (
	// ErrMissingFields indicates a required article field is empty after trimming.
	ErrMissingFields = errors.New("title, content, and category are required")
	// ErrMissingAuthor indicates the article has no author reference.
	ErrMissingAuthor = errors.New("author is required")
)

// Article is one published blog post.
type Article struct {
	ID         string
	Title      string
	Content    string
	AuthorID   string
	CategoryID string
	// ImagePath is the media-store path of the cover image, empty when none.
	ImagePath string
	CreatedAt time.Time
}

// HasImage reports whether the article references a stored image.
func (a Article) HasImage() bool {
	return strings.TrimSpace(a.ImagePath) != ""
}

// NewArticleInput describes the fields needed to create an article.
type NewArticleInput struct {
	Title      string
	Content    string
	CategoryID string
	AuthorID   string
	ImagePath  string
}

// NewArticle builds a durable article from validated input. CreatedAt is set
// once here and never mutated afterwards.
func NewArticle(input NewArticleInput, now func() time.Time, idGenerator func() (string, error)) (Article, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	input.CategoryID = strings.TrimSpace(input.CategoryID)
	input.AuthorID = strings.TrimSpace(input.AuthorID)

	if input.Title == "" || input.Content == "" || input.CategoryID == "" {
		return Article{}, ErrMissingFields
	}
	if input.AuthorID == "" {
		return Article{}, ErrMissingAuthor
	}

	articleID, err := idGenerator()
	if err != nil {
		return Article{}, fmt.Errorf("generate article id: %w", err)
	}

	return Article{
		ID:         articleID,
		Title:      input.Title,
		Content:    input.Content,
		AuthorID:   input.AuthorID,
		CategoryID: input.CategoryID,
		ImagePath:  strings.TrimSpace(input.ImagePath),
		CreatedAt:  now().UTC(),
	}, nil
}
