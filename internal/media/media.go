// Package media stores uploaded images on the local filesystem.
//
// Stored paths are relative to the media root (for example
// "blog_images/abc123.png") and map to public URLs under URLPrefix.
package media

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/inkwell-web/inkwell/internal/platform/id"
)

// URLPrefix is the public URL prefix for stored media.
const URLPrefix = "/media/"

// imageDir is the subdirectory holding article images.
const imageDir = "blog_images"

// Store persists uploaded files under a single media root directory.
type Store struct {
	root string
}

// NewStore prepares a media store rooted at dir.
func NewStore(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("media root is required")
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(filepath.Join(dir, imageDir), 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Store{root: dir}, nil
}

// Root returns the media root directory for static file serving.
func (s *Store) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// SaveImage stores an uploaded image and returns its media-relative path.
// The original filename contributes only its extension; the stored name is
// a fresh random identifier.
func (s *Store) SaveImage(filename string, content io.Reader) (string, error) {
	if s == nil || s.root == "" {
		return "", fmt.Errorf("media store is not configured")
	}
	if content == nil {
		return "", fmt.Errorf("image content is required")
	}

	name, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate image name: %w", err)
	}
	ext := sanitizeExtension(filename)
	relPath := path.Join(imageDir, name+ext)

	file, err := os.Create(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(file, content); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return relPath, nil
}

// Remove releases a stored file. Removing an already-missing file is not an
// error so release-then-replace sequences stay idempotent.
func (s *Store) Remove(relPath string) error {
	if s == nil || s.root == "" {
		return fmt.Errorf("media store is not configured")
	}
	relPath = strings.TrimSpace(relPath)
	if relPath == "" {
		return nil
	}
	cleaned := path.Clean("/" + relPath)
	if cleaned == "/" {
		return nil
	}
	target := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

// URL maps a stored path to its public URL. Empty paths map to an empty URL.
func URL(relPath string) string {
	relPath = strings.TrimSpace(relPath)
	if relPath == "" {
		return ""
	}
	return URLPrefix + strings.TrimPrefix(relPath, "/")
}

func sanitizeExtension(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.TrimSpace(filename))))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return ext
	default:
		return ".img"
	}
}
