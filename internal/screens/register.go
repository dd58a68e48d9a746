package screens

import (
	"context"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

// Register is the staff registration screen. Unlike the other screens
// it is reachable without credentials; a successful registration routes
// back to login rather than starting a session.
type Register struct {
	Form *form.Controller

	deps Deps
}

// NewRegister builds the registration screen.
func NewRegister(d Deps) *Register {
	s := &Register{deps: d}
	s.Form = form.NewController(form.Config{
		Validate: d.Engine.ValidateRegistrationForm,
		Locale:   d.Locale,
		Submit:   s.submit,
	})
	return s
}

// PasswordStrength reports the live strength meter for the password
// field.
func (s *Register) PasswordStrength() validation.Strength {
	password, _ := s.Form.Field("password").(string)
	return s.deps.Engine.PasswordStrength(password)
}

func (s *Register) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	// The controller already validated; Register revalidates and then
	// performs the call.
	res, _ := s.deps.Auth.Register(ctx, f)
	return res
}

// Close releases the controller.
func (s *Register) Close() {
	s.Form.Close()
}
