package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

// ArticleCard holds display-ready data for one feed entry.
type ArticleCard struct {
	ID           string
	Title        string
	Snippet      string
	AuthorName   string
	CategoryName string
	CreatedLabel string
	ImageURL     string
	DetailURL    string
}

// ArticleListView provides data for the feed fragment.
type ArticleListView struct {
	Articles []ArticleCard
	// CategoryName is set on category-filtered feeds.
	CategoryName string
	// HasNext controls the load-more trigger; NextPage is its target page.
	HasNext  bool
	NextPage int
}

// CategoryOption is one entry of the category select.
type CategoryOption struct {
	ID       string
	Name     string
	Selected bool
}

// ArticleFormView provides data for the create and edit forms.
type ArticleFormView struct {
	// Action is the form submission target.
	Action string
	// Error is the inline validation message, empty when none.
	Error      string
	Title      string
	Content    string
	Categories []CategoryOption
	// ImageURL shows the current image on edit forms.
	ImageURL string
	// ShowRemoveImage adds the remove-image checkbox on edit forms.
	ShowRemoveImage bool
	SubmitLabel     string
}

// ArticleDetailView provides data for the detail page.
type ArticleDetailView struct {
	Card ArticleCard
	// Content is the full article body, unlike the card snippet.
	Content  string
	IsAuthor bool
	EditURL  string
	// InlineForm is attached only when the requester authored the article.
	InlineForm *ArticleFormView
}

// DeleteConfirmView provides data for the deletion confirmation page.
type DeleteConfirmView struct {
	Title     string
	DeleteURL string
	CancelURL string
}

// ArticleList renders the feed fragment: cards plus the load-more trigger.
func ArticleList(view ArticleListView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<section id=\"article-list\">\n"); err != nil {
			return err
		}
		if view.CategoryName != "" {
			if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(view.CategoryName)); err != nil {
				return err
			}
		}
		if len(view.Articles) == 0 {
			if _, err := io.WriteString(w, "<p>No articles yet.</p>\n"); err != nil {
				return err
			}
		}
		for _, card := range view.Articles {
			if err := writeArticleCard(w, card); err != nil {
				return err
			}
		}
		if view.HasNext {
			if _, err := fmt.Fprintf(w,
				"<button hx-get=\"%s\" hx-target=\"#article-list\" hx-swap=\"outerHTML\">Load more</button>\n",
				routepath.LoadMorePage(view.NextPage, view.CategoryName)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

func writeArticleCard(w io.Writer, card ArticleCard) error {
	if _, err := fmt.Fprintf(w, "<article>\n<h2><a href=\"%s\">%s</a></h2>\n",
		card.DetailURL, html.EscapeString(card.Title)); err != nil {
		return err
	}
	if card.ImageURL != "" {
		if _, err := fmt.Fprintf(w, "<img src=\"%s\" alt=\"%s\">\n",
			card.ImageURL, html.EscapeString(card.Title)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "<p>%s</p>\n<footer>%s · %s · %s</footer>\n</article>\n",
		html.EscapeString(card.Snippet),
		html.EscapeString(card.AuthorName),
		html.EscapeString(card.CategoryName),
		html.EscapeString(card.CreatedLabel))
	return err
}

// ArticleDetail renders the detail fragment, attaching the inline edit form
// for the article's author.
func ArticleDetail(view ArticleDetailView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		card := view.Card
		if _, err := fmt.Fprintf(w, "<article id=\"article-detail\">\n<h1>%s</h1>\n",
			html.EscapeString(card.Title)); err != nil {
			return err
		}
		if card.ImageURL != "" {
			if _, err := fmt.Fprintf(w, "<img src=\"%s\" alt=\"%s\">\n",
				card.ImageURL, html.EscapeString(card.Title)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "<footer>%s · %s · %s</footer>\n<div>%s</div>\n",
			html.EscapeString(card.AuthorName),
			html.EscapeString(card.CategoryName),
			html.EscapeString(card.CreatedLabel),
			html.EscapeString(view.Content)); err != nil {
			return err
		}
		if view.IsAuthor {
			if _, err := fmt.Fprintf(w, "<a href=\"%s\">Edit</a> <a href=\"%s\">Delete</a>\n",
				view.EditURL, routepath.ArticleDelete(card.ID)); err != nil {
				return err
			}
			if view.InlineForm != nil {
				if err := ArticleForm(*view.InlineForm).Render(ctx, w); err != nil {
					return err
				}
			}
		}
		_, err := io.WriteString(w, "</article>\n")
		return err
	})
}

// ArticleForm renders the create/edit form fragment.
func ArticleForm(view ArticleFormView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<form id=\"article-form\" method=\"post\" action=\"%s\" enctype=\"multipart/form-data\">\n",
			view.Action); err != nil {
			return err
		}
		if view.Error != "" {
			if _, err := fmt.Fprintf(w, "<p class=\"error\">%s</p>\n", html.EscapeString(view.Error)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<input type="text" name="title" value="%s" placeholder="Title">
<textarea name="content" placeholder="Content">%s</textarea>
<select name="category">
<option value="">Choose a category</option>
`, html.EscapeString(view.Title), html.EscapeString(view.Content)); err != nil {
			return err
		}
		for _, option := range view.Categories {
			selected := ""
			if option.Selected {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, "<option value=\"%s\"%s>%s</option>\n",
				html.EscapeString(option.ID), selected, html.EscapeString(option.Name)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</select>\n<input type=\"file\" name=\"image\" accept=\"image/*\">\n"); err != nil {
			return err
		}
		if view.ShowRemoveImage {
			if view.ImageURL != "" {
				if _, err := fmt.Fprintf(w, "<img src=\"%s\" alt=\"Current image\">\n", view.ImageURL); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "<label><input type=\"checkbox\" name=\"remove_image\" value=\"1\"> Remove image</label>\n"); err != nil {
				return err
			}
		}
		label := view.SubmitLabel
		if label == "" {
			label = "Publish"
		}
		_, err := fmt.Fprintf(w, "<button type=\"submit\">%s</button>\n</form>\n", html.EscapeString(label))
		return err
	})
}

// DeleteConfirm renders the deletion confirmation fragment.
func DeleteConfirm(view DeleteConfirmView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section id="delete-confirm">
<h1>Delete "%s"?</h1>
<form method="post" action="%s"><button type="submit">Delete</button></form>
<a href="%s">Cancel</a>
</section>
`, html.EscapeString(view.Title), view.DeleteURL, view.CancelURL)
		return err
	})
}
