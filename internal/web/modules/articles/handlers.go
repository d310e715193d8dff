package articles

import (
	"mime/multipart"
	"net/http"

	"github.com/a-h/templ"

	module "github.com/inkwell-web/inkwell/internal/web/module"
	"github.com/inkwell-web/inkwell/internal/web/feed"
	apperrors "github.com/inkwell-web/inkwell/internal/web/platform/errors"
	"github.com/inkwell-web/inkwell/internal/web/platform/flash"
	"github.com/inkwell-web/inkwell/internal/web/platform/htmx"
	"github.com/inkwell-web/inkwell/internal/web/platform/httpx"
	"github.com/inkwell-web/inkwell/internal/web/platform/requestmeta"
	"github.com/inkwell-web/inkwell/internal/web/routepath"
	"github.com/inkwell-web/inkwell/internal/web/templates"
)

// maxUploadBytes caps multipart form memory for image uploads.
const maxUploadBytes = 10 << 20

type handlers struct {
	svc             service
	resolveIdentity module.ResolveIdentity
	policy          requestmeta.SchemePolicy
}

func newHandlers(svc service, resolveIdentity module.ResolveIdentity, policy requestmeta.SchemePolicy) handlers {
	return handlers{svc: svc, resolveIdentity: resolveIdentity, policy: policy}
}

func (h handlers) identity(r *http.Request) (module.Identity, bool) {
	if h.resolveIdentity == nil {
		return module.Identity{}, false
	}
	return h.resolveIdentity(r)
}

// requireSignedIn redirects anonymous requesters to the sign-in form.
func (h handlers) requireSignedIn(w http.ResponseWriter, r *http.Request) (module.Identity, bool) {
	identity, ok := h.identity(r)
	if !ok {
		htmx.Redirect(w, r, routepath.SignIn)
		return module.Identity{}, false
	}
	return identity, true
}

// renderPage writes the fragment for htmx requests and the full layout
// otherwise, consuming any pending flash notice on full renders.
func (h handlers) renderPage(w http.ResponseWriter, r *http.Request, title string, fragment templ.Component) {
	identity, signedIn := h.identity(r)
	page := templates.PageContext{Title: title, SignedIn: signedIn, Username: identity.Username}
	if !htmx.IsHTMXRequest(r) {
		if notice, ok := flash.ReadAndClear(w, r, h.policy); ok {
			page.Notice = &templates.Notice{Kind: string(notice.Kind), Message: notice.Message}
		}
	}
	htmx.RenderPage(w, r, fragment, templates.Layout(page, fragment))
}

func (h handlers) handleFeed(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.feedPage(httpx.RequestContext(r), "", 1)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.renderPage(w, r, "Latest articles", templates.ArticleList(view.list))
}

func (h handlers) handleCategoryFeed(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.feedPage(httpx.RequestContext(r), r.PathValue("name"), 1)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.renderPage(w, r, view.list.CategoryName, templates.ArticleList(view.list))
}

// handleLoadMore always answers with the list fragment; it exists for
// incremental feed loading regardless of the render-mode marker. The
// category query parameter keeps category feeds scoped across pages.
func (h handlers) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	page := feed.PageNumber(r.URL.Query())
	view, err := h.svc.feedPage(httpx.RequestContext(r), r.URL.Query().Get("category"), page)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := templates.ArticleList(view.list).Render(httpx.RequestContext(r), w); err != nil {
		httpx.WriteError(w, err)
	}
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	article, card, err := h.svc.articleDetail(ctx, r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	identity, signedIn := h.identity(r)
	view := templates.ArticleDetailView{
		Card:     card,
		Content:  article.Content,
		IsAuthor: signedIn && identity.UserID == article.AuthorID,
		EditURL:  routepath.ArticleEdit(article.ID),
	}
	if view.IsAuthor {
		options, err := h.svc.categoryOptions(ctx, article.CategoryID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		view.InlineForm = &templates.ArticleFormView{
			Action:      routepath.ArticleDetail(article.ID),
			Title:       article.Title,
			Content:     article.Content,
			Categories:  options,
			SubmitLabel: "Save",
		}
	}
	h.renderPage(w, r, article.Title, templates.ArticleDetail(view))
}

// handleInlineSave is the legacy inline edit/delete variant on the detail
// path. It only answers htmx requests from the article's author; anything
// else bounces back to the detail page.
func (h handlers) handleInlineSave(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	articleID := r.PathValue("id")
	article, _, err := h.svc.articleDetail(ctx, articleID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	identity, signedIn := h.identity(r)
	isAuthor := signedIn && identity.UserID == article.AuthorID
	if !isAuthor || !htmx.IsHTMXRequest(r) {
		http.Redirect(w, r, routepath.ArticleDetail(articleID), http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		_ = httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "errors": "malformed form"})
		return
	}

	if r.PostFormValue("delete") != "" {
		if err := h.svc.deleteArticle(ctx, articleID); err != nil {
			httpx.WriteError(w, err)
			return
		}
		_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
		return
	}

	_, err = h.svc.updateArticle(ctx, articleID, editForm{
		title:      r.PostFormValue("title"),
		content:    r.PostFormValue("content"),
		categoryID: r.PostFormValue("category"),
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidInput) {
			_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "error", "errors": err.Error()})
			return
		}
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func (h handlers) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSignedIn(w, r); !ok {
		return
	}
	options, err := h.svc.categoryOptions(httpx.RequestContext(r), "")
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.renderPage(w, r, "New post", templates.ArticleForm(templates.ArticleFormView{
		Action:     routepath.PostCreate,
		Categories: options,
	}))
}

func (h handlers) handleCreateSubmit(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireSignedIn(w, r)
	if !ok {
		return
	}
	ctx := httpx.RequestContext(r)

	form, file := h.parseArticleForm(r)
	if file != nil {
		defer func() { _ = file.Close() }()
	}

	_, err := h.svc.createArticle(ctx, identity.UserID, createForm{
		title:      form.title,
		content:    form.content,
		categoryID: form.categoryID,
		image:      form.image,
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidInput) {
			options, optErr := h.svc.categoryOptions(ctx, form.categoryID)
			if optErr != nil {
				httpx.WriteError(w, optErr)
				return
			}
			h.renderPage(w, r, "New post", templates.ArticleForm(templates.ArticleFormView{
				Action:     routepath.PostCreate,
				Error:      err.Error(),
				Title:      form.title,
				Content:    form.content,
				Categories: options,
			}))
			return
		}
		httpx.WriteError(w, err)
		return
	}

	flash.Write(w, r, flash.Success("Your article is live."), h.policy)
	htmx.Redirect(w, r, routepath.Root)
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSignedIn(w, r); !ok {
		return
	}
	ctx := httpx.RequestContext(r)
	article, _, err := h.svc.articleDetail(ctx, r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	options, err := h.svc.categoryOptions(ctx, article.CategoryID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.renderPage(w, r, "Edit post", templates.ArticleForm(templates.ArticleFormView{
		Action:          routepath.ArticleEdit(article.ID),
		Title:           article.Title,
		Content:         article.Content,
		Categories:      options,
		ImageURL:        imageURL(article.ImagePath),
		ShowRemoveImage: true,
		SubmitLabel:     "Save",
	}))
}

// handleEditSubmit requires a signed-in requester but does not verify
// ownership; any authenticated user can edit any article.
func (h handlers) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSignedIn(w, r); !ok {
		return
	}
	ctx := httpx.RequestContext(r)
	articleID := r.PathValue("id")

	form, file := h.parseArticleForm(r)
	if file != nil {
		defer func() { _ = file.Close() }()
	}

	article, err := h.svc.updateArticle(ctx, articleID, editForm{
		title:       form.title,
		content:     form.content,
		categoryID:  form.categoryID,
		removeImage: form.removeImage,
		image:       form.image,
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidInput) {
			options, optErr := h.svc.categoryOptions(ctx, form.categoryID)
			if optErr != nil {
				httpx.WriteError(w, optErr)
				return
			}
			h.renderPage(w, r, "Edit post", templates.ArticleForm(templates.ArticleFormView{
				Action:          routepath.ArticleEdit(articleID),
				Error:           err.Error(),
				Title:           form.title,
				Content:         form.content,
				Categories:      options,
				ShowRemoveImage: true,
				SubmitLabel:     "Save",
			}))
			return
		}
		httpx.WriteError(w, err)
		return
	}

	htmx.Redirect(w, r, routepath.ArticleDetail(article.ID))
}

func (h handlers) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	article, _, err := h.svc.articleDetail(httpx.RequestContext(r), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.renderPage(w, r, "Delete post", templates.DeleteConfirm(templates.DeleteConfirmView{
		Title:     article.Title,
		DeleteURL: routepath.ArticleDelete(article.ID),
		CancelURL: routepath.ArticleDetail(article.ID),
	}))
}

// handleDeleteSubmit deletes unconditionally: no authentication and no
// ownership check, matching the behavior this site ships with today.
func (h handlers) handleDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.deleteArticle(httpx.RequestContext(r), r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	flash.Write(w, r, flash.Info("The article was deleted."), h.policy)
	htmx.Redirect(w, r, routepath.Root)
}

type parsedArticleForm struct {
	title       string
	content     string
	categoryID  string
	removeImage bool
	image       *imageUpload
}

// parseArticleForm reads the multipart create/edit form. The returned file
// is non-nil when an image upload is attached; callers own closing it.
func (h handlers) parseArticleForm(r *http.Request) (parsedArticleForm, multipart.File) {
	// Plain urlencoded submissions (no image field) are also accepted.
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		_ = r.ParseForm()
	}

	form := parsedArticleForm{
		title:       r.PostFormValue("title"),
		content:     r.PostFormValue("content"),
		categoryID:  r.PostFormValue("category"),
		removeImage: r.PostFormValue("remove_image") == "1",
	}

	file, header, err := r.FormFile("image")
	if err != nil || header == nil {
		return form, nil
	}
	form.image = &imageUpload{filename: header.Filename, content: file}
	return form, file
}
