package screens

import (
	"context"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

// Login is the login screen. On mount it prefills the remembered email
// when a previous login opted in.
type Login struct {
	Form *form.Controller

	deps       Deps
	rememberMe bool
}

// NewLogin builds the login screen.
func NewLogin(d Deps) *Login {
	s := &Login{deps: d}
	s.Form = form.NewController(form.Config{
		Validate: d.Engine.ValidateLoginForm,
		Locale:   d.Locale,
		Load: func(ctx context.Context) *errors.Errno {
			if email := d.Auth.RememberedEmail(ctx); email != "" {
				s.Form.SetField("email", email)
				s.rememberMe = true
			}
			return nil
		},
		Submit: s.submit,
	})
	return s
}

// SetRememberMe toggles whether the email is persisted after login.
func (s *Login) SetRememberMe(v bool) {
	s.rememberMe = v
}

// RememberMe reports the current toggle state.
func (s *Login) RememberMe() bool {
	return s.rememberMe
}

func (s *Login) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	// The controller already validated the form.
	res, _ := s.deps.Auth.Login(ctx, f, s.rememberMe)
	return res
}

// Close releases the controller.
func (s *Login) Close() {
	s.Form.Close()
}
