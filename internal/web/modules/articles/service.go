package articles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/inkwell-web/inkwell/internal/blog"
	"github.com/inkwell-web/inkwell/internal/media"
	"github.com/inkwell-web/inkwell/internal/storage"
	"github.com/inkwell-web/inkwell/internal/web/feed"
	apperrors "github.com/inkwell-web/inkwell/internal/web/platform/errors"
	"github.com/inkwell-web/inkwell/internal/web/routepath"
	"github.com/inkwell-web/inkwell/internal/web/templates"
)

const snippetRunes = 200

// imageUpload carries one uploaded image file.
type imageUpload struct {
	filename string
	content  io.Reader
}

// feedView is a render-ready feed page.
type feedView struct {
	list templates.ArticleListView
	page feed.Page
}

type createForm struct {
	title      string
	content    string
	categoryID string
	image      *imageUpload
}

type editForm struct {
	title       string
	content     string
	categoryID  string
	removeImage bool
	image       *imageUpload
}

type service struct {
	articles   ArticleStore
	categories CategoryStore
	users      UserStore
	media      MediaStore
	now        func() time.Time
}

func newService(deps Deps) service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return service{
		articles:   deps.Articles,
		categories: deps.Categories,
		users:      deps.Users,
		media:      deps.Media,
		now:        now,
	}
}

// feedPage assembles one recency-ordered feed page, optionally filtered to a
// category by display name.
func (s service) feedPage(ctx context.Context, categoryName string, pageNumber int) (feedView, error) {
	categoryID := ""
	view := feedView{}
	if name := strings.TrimSpace(categoryName); name != "" {
		category, err := s.categories.GetCategoryByName(ctx, name)
		if err != nil {
			return feedView{}, notFoundOr(err, "category not found")
		}
		categoryID = category.ID
		view.list.CategoryName = category.Name
	}

	total, err := s.articles.CountArticles(ctx, categoryID)
	if err != nil {
		return feedView{}, fmt.Errorf("count articles: %w", err)
	}

	page := feed.Paginate(total, pageNumber)
	view.page = page
	view.list.HasNext = page.HasNext
	view.list.NextPage = page.Number + 1

	items, err := s.articles.ListArticles(ctx, storage.ArticleWindow{
		CategoryID: categoryID,
		Offset:     page.Offset,
		Limit:      feed.PageSize,
	})
	if err != nil {
		return feedView{}, fmt.Errorf("list articles: %w", err)
	}

	view.list.Articles = make([]templates.ArticleCard, 0, len(items))
	names := newNameCache(s.categories, s.users)
	for _, article := range items {
		view.list.Articles = append(view.list.Articles, s.card(ctx, article, names))
	}
	return view, nil
}

// articleDetail loads one article with its render-ready card.
func (s service) articleDetail(ctx context.Context, articleID string) (blog.Article, templates.ArticleCard, error) {
	article, err := s.articles.GetArticle(ctx, articleID)
	if err != nil {
		return blog.Article{}, templates.ArticleCard{}, notFoundOr(err, "article not found")
	}
	return article, s.card(ctx, article, newNameCache(s.categories, s.users)), nil
}

// createArticle validates and persists a new article for the given author.
// Missing title/content/category is a soft validation failure; a category id
// that resolves to nothing is fatal to the request.
func (s service) createArticle(ctx context.Context, authorID string, form createForm) (blog.Article, error) {
	form.title = strings.TrimSpace(form.title)
	form.content = strings.TrimSpace(form.content)
	form.categoryID = strings.TrimSpace(form.categoryID)
	if form.title == "" || form.content == "" || form.categoryID == "" {
		return blog.Article{}, apperrors.E(apperrors.KindInvalidInput, "Fill all fields")
	}

	category, err := s.categories.GetCategory(ctx, form.categoryID)
	if err != nil {
		return blog.Article{}, notFoundOr(err, "category not found")
	}

	imagePath := ""
	if form.image != nil {
		imagePath, err = s.media.SaveImage(form.image.filename, form.image.content)
		if err != nil {
			return blog.Article{}, fmt.Errorf("save image: %w", err)
		}
	}

	article, err := blog.NewArticle(blog.NewArticleInput{
		Title:      form.title,
		Content:    form.content,
		CategoryID: category.ID,
		AuthorID:   authorID,
		ImagePath:  imagePath,
	}, s.now, nil)
	if err != nil {
		return blog.Article{}, fmt.Errorf("new article: %w", err)
	}

	if err := s.articles.PutArticle(ctx, article); err != nil {
		return blog.Article{}, fmt.Errorf("put article: %w", err)
	}
	return article, nil
}

// updateArticle overwrites an article's fields. Image handling releases the
// previous file before any reassignment so two files are never referenced
// at once.
func (s service) updateArticle(ctx context.Context, articleID string, form editForm) (blog.Article, error) {
	article, err := s.articles.GetArticle(ctx, articleID)
	if err != nil {
		return blog.Article{}, notFoundOr(err, "article not found")
	}

	form.title = strings.TrimSpace(form.title)
	form.content = strings.TrimSpace(form.content)
	if form.title == "" || form.content == "" {
		return blog.Article{}, apperrors.E(apperrors.KindInvalidInput, "Fill all fields")
	}
	article.Title = form.title
	article.Content = form.content

	if categoryID := strings.TrimSpace(form.categoryID); categoryID != "" {
		category, err := s.categories.GetCategory(ctx, categoryID)
		if err != nil {
			return blog.Article{}, notFoundOr(err, "category not found")
		}
		article.CategoryID = category.ID
	}

	if form.removeImage && article.HasImage() {
		if err := s.media.Remove(article.ImagePath); err != nil {
			return blog.Article{}, fmt.Errorf("remove image: %w", err)
		}
		article.ImagePath = ""
	}

	if form.image != nil {
		if article.HasImage() {
			if err := s.media.Remove(article.ImagePath); err != nil {
				return blog.Article{}, fmt.Errorf("remove previous image: %w", err)
			}
			article.ImagePath = ""
		}
		imagePath, err := s.media.SaveImage(form.image.filename, form.image.content)
		if err != nil {
			return blog.Article{}, fmt.Errorf("save image: %w", err)
		}
		article.ImagePath = imagePath
	}

	if err := s.articles.PutArticle(ctx, article); err != nil {
		return blog.Article{}, fmt.Errorf("put article: %w", err)
	}
	return article, nil
}

// deleteArticle removes an article and releases its image file.
func (s service) deleteArticle(ctx context.Context, articleID string) error {
	article, err := s.articles.GetArticle(ctx, articleID)
	if err != nil {
		return notFoundOr(err, "article not found")
	}
	if err := s.articles.DeleteArticle(ctx, article.ID); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if article.HasImage() {
		if err := s.media.Remove(article.ImagePath); err != nil {
			return fmt.Errorf("release image: %w", err)
		}
	}
	return nil
}

// categoryOptions lists every category for the form select.
func (s service) categoryOptions(ctx context.Context, selectedID string) ([]templates.CategoryOption, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	options := make([]templates.CategoryOption, 0, len(categories))
	for _, category := range categories {
		options = append(options, templates.CategoryOption{
			ID:       category.ID,
			Name:     category.Name,
			Selected: category.ID == selectedID,
		})
	}
	return options, nil
}

func (s service) card(ctx context.Context, article blog.Article, names *nameCache) templates.ArticleCard {
	return templates.ArticleCard{
		ID:           article.ID,
		Title:        article.Title,
		Snippet:      snippet(article.Content),
		AuthorName:   names.username(ctx, article.AuthorID),
		CategoryName: names.categoryName(ctx, article.CategoryID),
		CreatedLabel: article.CreatedAt.Format("Jan 2, 2006"),
		ImageURL:     imageURL(article.ImagePath),
		DetailURL:    routepath.ArticleDetail(article.ID),
	}
}

// nameCache memoizes author and category lookups within one request.
type nameCache struct {
	categories CategoryStore
	users      UserStore
	userNames  map[string]string
	catNames   map[string]string
}

func newNameCache(categories CategoryStore, users UserStore) *nameCache {
	return &nameCache{
		categories: categories,
		users:      users,
		userNames:  make(map[string]string),
		catNames:   make(map[string]string),
	}
}

func (c *nameCache) username(ctx context.Context, userID string) string {
	if name, ok := c.userNames[userID]; ok {
		return name
	}
	name := ""
	if user, err := c.users.GetUser(ctx, userID); err == nil {
		name = user.Username
	}
	c.userNames[userID] = name
	return name
}

func (c *nameCache) categoryName(ctx context.Context, categoryID string) string {
	if name, ok := c.catNames[categoryID]; ok {
		return name
	}
	name := ""
	if category, err := c.categories.GetCategory(ctx, categoryID); err == nil {
		name = category.Name
	}
	c.catNames[categoryID] = name
	return name
}

func imageURL(relPath string) string {
	return media.URL(relPath)
}

func snippet(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= snippetRunes {
		return content
	}
	return strings.TrimSpace(string(runes[:snippetRunes])) + "…"
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.E(apperrors.KindNotFound, message)
	}
	return err
}
