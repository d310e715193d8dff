package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/inkwell-web/inkwell/internal/blog"
	"github.com/inkwell-web/inkwell/internal/storage"
)

// PutCategory inserts or updates a category.
func (s *Store) PutCategory(ctx context.Context, c blog.Category) error {
	if err := s.ready(); err != nil {
		return err
	}
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return fmt.Errorf("category id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO categories (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		c.ID,
		c.Name,
	)
	if err != nil {
		return fmt.Errorf("put category: %w", err)
	}
	return nil
}

// GetCategory loads a category by id.
func (s *Store) GetCategory(ctx context.Context, categoryID string) (blog.Category, error) {
	return s.getCategoryWhere(ctx, "id = ?", strings.TrimSpace(categoryID))
}

// GetCategoryByName loads a category by display name.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (blog.Category, error) {
	return s.getCategoryWhere(ctx, "name = ?", strings.TrimSpace(name))
}

func (s *Store) getCategoryWhere(ctx context.Context, where string, arg string) (blog.Category, error) {
	if err := s.ready(); err != nil {
		return blog.Category{}, err
	}
	if arg == "" {
		return blog.Category{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE "+where, arg)

	var c blog.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if err == sql.ErrNoRows {
			return blog.Category{}, storage.ErrNotFound
		}
		return blog.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]blog.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []blog.Category
	for rows.Next() {
		var c blog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes the category and every article that references it
// in a single transaction. The cascade is deliberate: dependent articles do
// not outlive their category. Only rows are removed; the store has no media
// access, so callers that care about cascaded articles' image files must
// collect their image paths first and release them through the media store.
func (s *Store) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return storage.ErrNotFound
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete category: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE category_id = ?", categoryID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete category articles: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", categoryID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete category: %w", err)
	}
	return nil
}
