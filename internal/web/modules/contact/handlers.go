package contact

import (
	"errors"
	"net/http"
	"time"

	"github.com/inkwell-web/inkwell/internal/blog"
	module "github.com/inkwell-web/inkwell/internal/web/module"
	apperrors "github.com/inkwell-web/inkwell/internal/web/platform/errors"
	"github.com/inkwell-web/inkwell/internal/web/platform/flash"
	"github.com/inkwell-web/inkwell/internal/web/platform/htmx"
	"github.com/inkwell-web/inkwell/internal/web/platform/httpx"
	"github.com/inkwell-web/inkwell/internal/web/platform/requestmeta"
	"github.com/inkwell-web/inkwell/internal/web/templates"
)

type handlers struct {
	contacts        ContactStore
	resolveIdentity module.ResolveIdentity
	policy          requestmeta.SchemePolicy
	now             func() time.Time
}

func newHandlers(deps Deps) handlers {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return handlers{
		contacts:        deps.Contacts,
		resolveIdentity: deps.ResolveIdentity,
		policy:          deps.SchemePolicy,
		now:             now,
	}
}

func (h handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	identity := module.Identity{}
	signedIn := false
	if h.resolveIdentity != nil {
		identity, signedIn = h.resolveIdentity(r)
	}
	page := templates.PageContext{Title: "Contact", SignedIn: signedIn, Username: identity.Username}
	if !htmx.IsHTMXRequest(r) {
		if notice, ok := flash.ReadAndClear(w, r, h.policy); ok {
			page.Notice = &templates.Notice{Kind: string(notice.Kind), Message: notice.Message}
		}
	}
	fragment := templates.ContactForm()
	htmx.RenderPage(w, r, fragment, templates.Layout(page, fragment))
}

// handleSubmit always answers with the acknowledgment fragment; the form
// swaps it in place over htmx.
func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "malformed form"))
		return
	}

	contact, err := blog.NewContact(blog.NewContactInput{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}, h.now, nil)
	if err != nil {
		if errors.Is(err, blog.ErrMissingContactFields) {
			h.renderAck(w, r, false)
			return
		}
		httpx.WriteError(w, err)
		return
	}

	if err := h.contacts.PutContact(httpx.RequestContext(r), contact); err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.renderAck(w, r, true)
}

func (h handlers) renderAck(w http.ResponseWriter, r *http.Request, ok bool) {
	if err := templates.ContactAck(ok).Render(httpx.RequestContext(r), w); err != nil {
		httpx.WriteError(w, err)
	}
}
