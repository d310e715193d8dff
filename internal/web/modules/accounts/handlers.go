package accounts

import (
	"net/http"

	"github.com/a-h/templ"

	module "github.com/inkwell-web/inkwell/internal/web/module"
	apperrors "github.com/inkwell-web/inkwell/internal/web/platform/errors"
	"github.com/inkwell-web/inkwell/internal/web/platform/flash"
	"github.com/inkwell-web/inkwell/internal/web/platform/htmx"
	"github.com/inkwell-web/inkwell/internal/web/platform/httpx"
	"github.com/inkwell-web/inkwell/internal/web/platform/requestmeta"
	"github.com/inkwell-web/inkwell/internal/web/platform/sessioncookie"
	"github.com/inkwell-web/inkwell/internal/web/routepath"
	"github.com/inkwell-web/inkwell/internal/web/templates"
)

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

func (h handlers) handleSignUpForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "Sign up", templates.SignUpForm())
}

// handleSignUpSubmit registers an account. Rejections flash the reason and
// bounce back to the form; success signs the new account in directly.
func (h handlers) handleSignUpSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "malformed form"))
		return
	}

	user, session, err := h.svc.signUp(httpx.RequestContext(r), signUpForm{
		username:  r.PostFormValue("username"),
		email:     r.PostFormValue("email"),
		password:  r.PostFormValue("password"),
		password2: r.PostFormValue("password2"),
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidInput) {
			flash.Write(w, r, flash.Error(err.Error()), h.policy)
			htmx.Redirect(w, r, routepath.SignUp)
			return
		}
		httpx.WriteError(w, err)
		return
	}

	sessioncookie.Write(w, r, session.ID, h.policy)
	flash.Write(w, r, flash.Success("Welcome, "+user.Username+"!"), h.policy)
	htmx.Redirect(w, r, routepath.Root)
}

func (h handlers) handleSignInForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "Sign in", templates.SignInForm())
}

func (h handlers) handleSignInSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "malformed form"))
		return
	}

	user, session, err := h.svc.signIn(httpx.RequestContext(r),
		r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidInput) {
			flash.Write(w, r, flash.Error(err.Error()), h.policy)
			htmx.Redirect(w, r, routepath.SignIn)
			return
		}
		httpx.WriteError(w, err)
		return
	}

	sessioncookie.Write(w, r, session.ID, h.policy)
	flash.Write(w, r, flash.Success("Welcome back, "+user.Username+"!"), h.policy)
	htmx.Redirect(w, r, routepath.Root)
}

// handleLogout closes the current session. Because logout is reachable by a
// plain form post, a cookie-bearing request must prove same-origin intent.
func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessioncookie.Read(r)
	if ok {
		if !requestmeta.HasSameOriginProof(r, h.policy) {
			httpx.WriteError(w, apperrors.E(apperrors.KindForbidden, "cross-origin logout rejected"))
			return
		}
		if err := h.svc.signOut(httpx.RequestContext(r), sessionID); err != nil {
			httpx.WriteError(w, err)
			return
		}
	}

	sessioncookie.Clear(w, r, h.policy)
	flash.Write(w, r, flash.Info("You have signed out."), h.policy)
	htmx.Redirect(w, r, routepath.Root)
}
