package accounts

import (
	"net/http"

	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.SignUp+"{$}", h.handleSignUpForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.SignUp+"{$}", h.handleSignUpSubmit)

	mux.HandleFunc(http.MethodGet+" "+routepath.SignIn+"{$}", h.handleSignInForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.SignIn+"{$}", h.handleSignInSubmit)

	mux.HandleFunc(http.MethodPost+" "+routepath.Logout+"{$}", h.handleLogout)
}
