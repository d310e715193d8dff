package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

// SignUpForm renders the registration form fragment. Validation outcomes
// surface through the layout flash banner after redirect-to-self.
func SignUpForm() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<form id="signup-form" method="post" action="%s">
<h1>Sign up</h1>
<input type="text" name="username" placeholder="Username" autocomplete="username">
<input type="email" name="email" placeholder="Email" autocomplete="email">
<input type="password" name="password" placeholder="Password" autocomplete="new-password">
<input type="password" name="password2" placeholder="Confirm password" autocomplete="new-password">
<button type="submit">Create account</button>
<a href="%s">Already have an account?</a>
</form>
`, routepath.SignUp, routepath.SignIn)
		return err
	})
}

// SignInForm renders the login form fragment.
func SignInForm() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<form id="signin-form" method="post" action="%s">
<h1>Sign in</h1>
<input type="text" name="username" placeholder="Username" autocomplete="username">
<input type="password" name="password" placeholder="Password" autocomplete="current-password">
<button type="submit">Sign in</button>
<a href="%s">Need an account?</a>
</form>
`, routepath.SignIn, routepath.SignUp)
		return err
	})
}
