// Package routepath centralizes canonical route constants and builders.
package routepath

import (
	"net/url"
	"strconv"
)

const (
	// Root is the article feed.
	Root = "/"
	// CategoryPrefix prefixes category feed routes.
	CategoryPrefix = "/category/"
	// PostCreate serves the create form and its submission.
	PostCreate = "/post/create/"
	// PostPrefix prefixes article detail/edit/delete routes.
	PostPrefix = "/post/"
	// LoadMore serves incremental feed fragments.
	LoadMore = "/load-more/"
	// Contact serves the contact form.
	Contact = "/contact/"
	// ContactSubmit receives contact submissions.
	ContactSubmit = "/contact/submit/"
	// SignUp serves registration.
	SignUp = "/signup/"
	// SignIn serves login.
	SignIn = "/signin/"
	// Logout receives logout submissions.
	Logout = "/logout/"
	// MediaPrefix serves uploaded images.
	MediaPrefix = "/media/"
)

// ArticleDetail builds the detail route for an article id.
func ArticleDetail(articleID string) string {
	return PostPrefix + url.PathEscape(articleID) + "/"
}

// ArticleEdit builds the edit route for an article id.
func ArticleEdit(articleID string) string {
	return ArticleDetail(articleID) + "edit/"
}

// ArticleDelete builds the delete route for an article id.
func ArticleDelete(articleID string) string {
	return ArticleDetail(articleID) + "delete/"
}

// CategoryFeed builds the category feed route for a category name.
func CategoryFeed(name string) string {
	return CategoryPrefix + url.PathEscape(name) + "/"
}

// LoadMorePage builds the load-more route for a page number. A non-empty
// category name keeps the incremental load scoped to that category's feed.
func LoadMorePage(page int, categoryName string) string {
	route := LoadMore + "?page=" + strconv.Itoa(page)
	if categoryName != "" {
		route += "&category=" + url.QueryEscape(categoryName)
	}
	return route
}
