package articles

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/inkwell-web/inkwell/internal/auth"
	"github.com/inkwell-web/inkwell/internal/blog"
	"github.com/inkwell-web/inkwell/internal/storage"
)

type fakeArticleStore struct {
	mu       sync.Mutex
	articles map[string]blog.Article

	putErr    error
	deleteErr error
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{articles: make(map[string]blog.Article)}
}

func (f *fakeArticleStore) PutArticle(_ context.Context, a blog.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.articles[a.ID] = a
	return nil
}

func (f *fakeArticleStore) GetArticle(_ context.Context, articleID string) (blog.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	article, ok := f.articles[articleID]
	if !ok {
		return blog.Article{}, storage.ErrNotFound
	}
	return article, nil
}

func (f *fakeArticleStore) DeleteArticle(_ context.Context, articleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.articles[articleID]; !ok {
		return storage.ErrNotFound
	}
	delete(f.articles, articleID)
	return nil
}

func (f *fakeArticleStore) ListArticles(_ context.Context, window storage.ArticleWindow) ([]blog.Article, error) {
	ordered := f.ordered(window.CategoryID)
	if window.Offset >= len(ordered) {
		return nil, nil
	}
	ordered = ordered[window.Offset:]
	if window.Limit > 0 && window.Limit < len(ordered) {
		ordered = ordered[:window.Limit]
	}
	return ordered, nil
}

func (f *fakeArticleStore) CountArticles(_ context.Context, categoryID string) (int, error) {
	return len(f.ordered(categoryID)), nil
}

func (f *fakeArticleStore) ordered(categoryID string) []blog.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []blog.Article
	for _, article := range f.articles {
		if categoryID != "" && article.CategoryID != categoryID {
			continue
		}
		out = append(out, article)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	categories map[string]blog.Category
}

func newFakeCategoryStore(categories ...blog.Category) *fakeCategoryStore {
	store := &fakeCategoryStore{categories: make(map[string]blog.Category)}
	for _, category := range categories {
		store.categories[category.ID] = category
	}
	return store
}

func (f *fakeCategoryStore) GetCategory(_ context.Context, categoryID string) (blog.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[categoryID]
	if !ok {
		return blog.Category{}, storage.ErrNotFound
	}
	return category, nil
}

func (f *fakeCategoryStore) GetCategoryByName(_ context.Context, name string) (blog.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.categories {
		if category.Name == name {
			return category, nil
		}
	}
	return blog.Category{}, storage.ErrNotFound
}

func (f *fakeCategoryStore) ListCategories(_ context.Context) ([]blog.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []blog.Category
	for _, category := range f.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeUserStore struct {
	users map[string]auth.User
}

func newFakeUserStore(users ...auth.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[string]auth.User)}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (f *fakeUserStore) GetUser(_ context.Context, userID string) (auth.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return auth.User{}, storage.ErrNotFound
	}
	return user, nil
}

type fakeMediaStore struct {
	mu      sync.Mutex
	counter int
	saved   []string
	removed []string
	live    map[string]bool

	saveErr error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{live: make(map[string]bool)}
}

func (f *fakeMediaStore) SaveImage(filename string, content io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if content != nil {
		_, _ = io.Copy(io.Discard, content)
	}
	f.counter++
	relPath := fmt.Sprintf("blog_images/fake-%d-%s", f.counter, filename)
	f.saved = append(f.saved, relPath)
	f.live[relPath] = true
	return relPath, nil
}

func (f *fakeMediaStore) Remove(relPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, relPath)
	delete(f.live, relPath)
	return nil
}

func (f *fakeMediaStore) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}
