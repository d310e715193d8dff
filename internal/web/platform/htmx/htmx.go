// Package htmx detects partial-content requests and renders full pages or
// fragments accordingly.
package htmx

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeaderKey is the HTMX request header used to detect partial updates.
const RequestHeaderKey = "HX-Request"

// RedirectHeaderKey instructs the HTMX client to navigate after a request.
const RedirectHeaderKey = "HX-Redirect"

// IsHTMXRequest reports whether the request was initiated by HTMX. This is
// the render-mode marker: fragment for HTMX requests, full page otherwise.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// RenderPage renders fragment for HTMX requests and full otherwise.
//
// If fragment is nil, full is used for both paths; the reverse also holds,
// so handlers with a single representation can pass it once.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component) {
	var target templ.Component
	if IsHTMXRequest(r) {
		target = fragment
		if target == nil {
			target = full
		}
	} else {
		target = full
		if target == nil {
			target = fragment
		}
	}
	if target == nil {
		return
	}
	templ.Handler(target).ServeHTTP(w, r)
}

// Redirect sends the client to url: a plain 302 for regular requests, an
// HX-Redirect header with 200 for HTMX requests so the client swaps the
// whole page instead of the fragment target.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMXRequest(r) {
		w.Header().Set(RedirectHeaderKey, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
