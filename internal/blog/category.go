package blog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-web/inkwell/internal/platform/id"
)

// ErrEmptyCategoryName indicates a missing category name.
var ErrEmptyCategoryName = errors.New("category name is required")

// Category groups articles under a display name. Names are treated as
// unique in practice; lookup by name drives the category feed.
type Category struct {
	ID   string
	Name string
}

// NewCategory builds a category from a trimmed display name.
func NewCategory(name string, idGenerator func() (string, error)) (Category, error) {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyCategoryName
	}
	categoryID, err := idGenerator()
	if err != nil {
		return Category{}, fmt.Errorf("generate category id: %w", err)
	}
	return Category{ID: categoryID, Name: name}, nil
}
