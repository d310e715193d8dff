// Package templates renders HTML for the site as templ components.
//
// Components are hand-written against the templ API: each builds escaped
// HTML into the response writer. View types carry display-ready strings so
// handlers own all formatting decisions.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

// AppName is the site display name.
const AppName = "Inkwell"

// Notice is a one-time banner shown at the top of the page.
type Notice struct {
	// Kind is one of success, info, error.
	Kind    string
	Message string
}

// PageContext provides shared layout context for full pages.
type PageContext struct {
	Title    string
	SignedIn bool
	Username string
	Notice   *Notice
}

// ComposePageTitle appends the site name to a page title.
func ComposePageTitle(title string) string {
	if title == "" {
		return AppName
	}
	return title + " | " + AppName
}

// Layout wraps content in the full page shell: head, navigation, flash
// banner, and the <main> region htmx swaps against.
func Layout(page PageContext, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
</head>
<body>
`, html.EscapeString(ComposePageTitle(page.Title))); err != nil {
			return err
		}
		if err := writeNav(w, page); err != nil {
			return err
		}
		if err := writeNotice(w, page.Notice); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<main id=\"main\">\n"); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n</main>\n</body>\n</html>\n")
		return err
	})
}

func writeNav(w io.Writer, page PageContext) error {
	if _, err := fmt.Fprintf(w, `<nav>
<a href="%s">%s</a>
<a href="%s">Contact</a>
`, routepath.Root, html.EscapeString(AppName), routepath.Contact); err != nil {
		return err
	}
	if page.SignedIn {
		_, err := fmt.Fprintf(w, `<a href="%s">New post</a>
<form method="post" action="%s"><button type="submit">Log out (%s)</button></form>
</nav>
`, routepath.PostCreate, routepath.Logout, html.EscapeString(page.Username))
		return err
	}
	_, err := fmt.Fprintf(w, `<a href="%s">Sign in</a>
<a href="%s">Sign up</a>
</nav>
`, routepath.SignIn, routepath.SignUp)
	return err
}

func writeNotice(w io.Writer, notice *Notice) error {
	if notice == nil || notice.Message == "" {
		return nil
	}
	kind := notice.Kind
	switch kind {
	case "success", "info", "error":
	default:
		kind = "info"
	}
	_, err := fmt.Fprintf(w, "<div class=\"notice notice-%s\">%s</div>\n", kind, html.EscapeString(notice.Message))
	return err
}

// Text renders an escaped text node.
func Text(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html.EscapeString(text))
		return err
	})
}
