// Package form implements the screen-controller pattern shared by every
// management screen: fetch reference data, hold form state, validate
// locally, submit through the API client, and classify the outcome for
// presentation. Controllers are UI-agnostic; a CLI command or a mobile
// shell drives them the same way.
package form

import (
	"context"
	"sync"

	"github.com/kart-io/logger"

	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/locale"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

// Phase is a controller's lifecycle state.
type Phase int

// Lifecycle phases: Idle until Mount, Loading while the initial fetch
// runs, Ready for editing, Submitting while a request is in flight.
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseSubmitting
)

// AlertKind distinguishes the non-validation error categories a screen
// must present differently.
type AlertKind int

// Alert kinds.
const (
	AlertAuth AlertKind = iota
	AlertBusiness
	AlertNetwork
	AlertPermission
)

// Alert is a blocking message for the user.
type Alert struct {
	Kind    AlertKind
	Message string
}

// Outcome reports what a Submit ended as.
type Outcome int

// Submit outcomes.
const (
	OutcomeInvalid Outcome = iota // local validation failed, no call made
	OutcomeSuccess
	OutcomeFieldErrors // backend rejected with per-field errors
	OutcomeAlert       // business, network or auth alert raised
	OutcomeDiscarded   // controller closed while the call was in flight
	OutcomeBusy        // a submit was already in flight
)

// Config wires a Controller.
type Config struct {
	// Validate runs the entity's rule set against the form.
	Validate func(validation.FormState) *validation.Result

	// Load fetches reference data on Mount. Optional.
	Load func(ctx context.Context) *errors.Errno

	// Submit performs the network call for a validated form.
	Submit func(ctx context.Context, form validation.FormState) apiclient.Result

	// OnSuccess runs after a successful submit, before the form resets.
	// Optional.
	OnSuccess func(ctx context.Context, res apiclient.Result)

	// Authenticated reports whether usable credentials exist. Mount
	// stops with an auth alert when it returns an error.
	Authenticated func(ctx context.Context) *errors.Errno

	Locale *locale.Provider
}

// Controller is the generic form controller. All methods are safe for
// use from a single logical UI thread; the mutex exists because a slow
// response may land after the screen moved on.
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	phase  Phase
	form   validation.FormState
	errors map[string]string
	alert  *Alert
	closed bool
}

// NewController creates a Controller in the Idle phase with an empty
// form.
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg:    cfg,
		phase:  PhaseIdle,
		form:   make(validation.FormState),
		errors: make(map[string]string),
	}
}

// Mount transitions Idle → Loading → Ready. Missing credentials surface
// an auth alert and stop the screen; no retry is attempted.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.phase != PhaseIdle {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseLoading
	c.mu.Unlock()

	if c.cfg.Authenticated != nil {
		if err := c.cfg.Authenticated(ctx); err != nil {
			c.raise(Alert{Kind: AlertAuth, Message: c.localized(err)})
			c.setPhase(PhaseIdle)
			return
		}
	}

	if c.cfg.Load != nil {
		if err := c.cfg.Load(ctx); err != nil {
			c.raise(Alert{Kind: kindOf(err), Message: c.localized(err)})
			c.setPhase(PhaseIdle)
			return
		}
	}

	c.setPhase(PhaseReady)
}

// SetField records user input. Touching a field that currently holds an
// error clears just that field's error; nothing is revalidated until
// the next Submit.
func (c *Controller) SetField(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.form[name] = value
	delete(c.errors, name)
}

// Seed fills the form from an existing record for editing.
func (c *Controller) Seed(values validation.FormState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range values {
		c.form[k] = v
	}
}

// Submit validates and, on success, performs the network call. Invalid
// forms never reach the network. A second Submit while one is in flight
// is refused rather than queued.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return OutcomeDiscarded
	}
	if c.phase == PhaseSubmitting {
		c.mu.Unlock()
		return OutcomeBusy
	}

	snapshot := make(validation.FormState, len(c.form))
	for k, v := range c.form {
		snapshot[k] = v
	}
	c.mu.Unlock()

	if c.cfg.Validate != nil {
		result := c.cfg.Validate(snapshot)
		if !result.Valid {
			c.mu.Lock()
			c.errors = result.Errors
			c.mu.Unlock()
			return OutcomeInvalid
		}
	}

	c.setPhase(PhaseSubmitting)
	res := c.cfg.Submit(ctx, snapshot)

	c.mu.Lock()
	if c.closed {
		// The screen is gone; discard the result rather than mutate
		// state nobody renders.
		c.mu.Unlock()
		return OutcomeDiscarded
	}
	c.phase = PhaseReady
	c.mu.Unlock()

	return c.react(ctx, res)
}

func (c *Controller) react(ctx context.Context, res apiclient.Result) Outcome {
	if res.Success {
		if c.cfg.OnSuccess != nil {
			c.cfg.OnSuccess(ctx, res)
		}
		c.mu.Lock()
		c.form = make(validation.FormState)
		c.errors = make(map[string]string)
		c.alert = nil
		c.mu.Unlock()
		return OutcomeSuccess
	}

	if res.NetworkError {
		c.raise(Alert{Kind: AlertNetwork, Message: c.cfg.Locale.T(locale.KeyConnectionError)})
		return OutcomeAlert
	}

	if len(res.Errors) > 0 {
		c.mu.Lock()
		c.errors = res.Errors
		c.mu.Unlock()
		return OutcomeFieldErrors
	}

	message := res.Message
	if message == "" {
		message = c.cfg.Locale.T(locale.KeyGenericError)
	}
	logger.Warnw("submit rejected", "status", res.Status, "message", res.Message)
	c.raise(Alert{Kind: AlertBusiness, Message: message})
	return OutcomeAlert
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Field returns the current value of a form field.
func (c *Controller) Field(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form[name]
}

// FieldError returns the error shown under a field, if any.
func (c *Controller) FieldError(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, ok := c.errors[name]
	return msg, ok
}

// Errors returns a copy of the field error map.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Alert returns the pending alert, if any.
func (c *Controller) Alert() (Alert, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alert == nil {
		return Alert{}, false
	}
	return *c.alert, true
}

// DismissAlert clears the pending alert.
func (c *Controller) DismissAlert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = nil
}

// Close marks the screen unmounted. In-flight results are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller) raise(a Alert) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.alert = &a
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.phase = p
	}
}

func (c *Controller) localized(err *errors.Errno) string {
	return err.Message(c.cfg.Locale.Active().Code)
}

func kindOf(err *errors.Errno) AlertKind {
	switch err.Category() {
	case errors.CategoryAuthentication:
		return AlertAuth
	case errors.CategoryNetwork:
		return AlertNetwork
	case errors.CategoryPermission:
		return AlertPermission
	default:
		return AlertBusiness
	}
}
