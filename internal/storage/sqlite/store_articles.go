package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/inkwell-web/inkwell/internal/blog"
	"github.com/inkwell-web/inkwell/internal/storage"
)

// PutArticle inserts or updates an article. The created_at column is written
// once on insert and left untouched on update.
func (s *Store) PutArticle(ctx context.Context, a blog.Article) error {
	if err := s.ready(); err != nil {
		return err
	}
	a.ID = strings.TrimSpace(a.ID)
	if a.ID == "" {
		return fmt.Errorf("article id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO articles (id, title, content, author_id, category_id, image_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    title = excluded.title,
		    content = excluded.content,
		    category_id = excluded.category_id,
		    image_path = excluded.image_path`,
		a.ID,
		a.Title,
		a.Content,
		a.AuthorID,
		a.CategoryID,
		a.ImagePath,
		timeToUnixMillis(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put article: %w", err)
	}
	return nil
}

// GetArticle loads an article by id.
func (s *Store) GetArticle(ctx context.Context, articleID string) (blog.Article, error) {
	if err := s.ready(); err != nil {
		return blog.Article{}, err
	}
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return blog.Article{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, content, author_id, category_id, image_path, created_at
		 FROM articles WHERE id = ?`,
		articleID,
	)
	article, err := scanArticle(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return blog.Article{}, storage.ErrNotFound
		}
		return blog.Article{}, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// DeleteArticle removes an article by id.
func (s *Store) DeleteArticle(ctx context.Context, articleID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", strings.TrimSpace(articleID))
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// ListArticles returns a recency-ordered window of the feed.
func (s *Store) ListArticles(ctx context.Context, window storage.ArticleWindow) ([]blog.Article, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := `SELECT id, title, content, author_id, category_id, image_path, created_at
	          FROM articles`
	args := make([]any, 0, 3)
	if categoryID := strings.TrimSpace(window.CategoryID); categoryID != "" {
		query += " WHERE category_id = ?"
		args = append(args, categoryID)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if window.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, window.Limit, window.Offset)
	} else if window.Offset > 0 {
		// SQLite requires LIMIT before OFFSET; -1 means unbounded.
		query += " LIMIT -1 OFFSET ?"
		args = append(args, window.Offset)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var articles []blog.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// CountArticles counts the feed, optionally restricted to one category.
func (s *Store) CountArticles(ctx context.Context, categoryID string) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	query := "SELECT COUNT(*) FROM articles"
	args := make([]any, 0, 1)
	if categoryID = strings.TrimSpace(categoryID); categoryID != "" {
		query += " WHERE category_id = ?"
		args = append(args, categoryID)
	}

	var count int
	if err := s.sqlDB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (blog.Article, error) {
	var a blog.Article
	var createdAt int64
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CategoryID, &a.ImagePath, &createdAt); err != nil {
		return blog.Article{}, err
	}
	a.CreatedAt = unixMillisToTime(createdAt)
	return a, nil
}
