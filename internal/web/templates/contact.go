package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

// ContactForm renders the contact form fragment. The submit posts over htmx
// and swaps in the short acknowledgment.
func ContactForm() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<form id="contact-form" hx-post="%s" hx-target="#contact-form" hx-swap="outerHTML" method="post" action="%s">
<h1>Contact</h1>
<input type="text" name="name" placeholder="Name">
<input type="email" name="email" placeholder="Email">
<input type="text" name="subject" placeholder="Subject (optional)">
<textarea name="message" placeholder="Message"></textarea>
<button type="submit">Send</button>
</form>
`, routepath.ContactSubmit, routepath.ContactSubmit)
		return err
	})
}

// ContactAck renders the short acknowledgment fragment returned by the
// contact submission endpoint.
func ContactAck(ok bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		message := "Thanks! Your message has been sent."
		if !ok {
			message = "Please fill in your name, email, and message."
		}
		_, err := fmt.Fprintf(w, "<p id=\"contact-form\" class=\"contact-ack\">%s</p>\n", message)
		return err
	})
}
