// Package errors provides the structured error system for the Tijarah client.
//
// Every failure a controller can surface belongs to one of five categories:
//
//	01: Validation errors (local, field-scoped, block submission)
//	02: Authentication errors (missing/expired local token)
//	03: Business errors (backend body-level status != 200)
//	04: Network errors (transport failure, malformed JSON)
//	05: Permission errors (device capability denied)
//
// Error Code Format: BBCCC (5 digits): BB is the category, CCC the
// sequence within it. Messages carry both English and Arabic text; the
// active language picks one at presentation time.
package errors

import (
	"fmt"
	"sync"
)

// Category codes. The category decides how a controller presents the
// error: inline under a field, blocking alert, or connection banner.
const (
	CategoryValidation     = 1
	CategoryAuthentication = 2
	CategoryBusiness       = 3
	CategoryNetwork        = 4
	CategoryPermission     = 5
)

// Errno represents a structured error with a code and localized messages.
type Errno struct {
	// Code is the unique error code.
	Code int `json:"code"`

	// MessageEN is the English error message.
	MessageEN string `json:"message"`

	// MessageAR is the Arabic error message.
	MessageAR string `json:"message_ar,omitempty"`

	// Fields carries per-field error messages for validation and
	// backend field errors. Nil for non-field errors.
	Fields map[string]string `json:"fields,omitempty"`

	// cause is the underlying error.
	cause error
}

// MakeCode builds an error code from category and sequence.
func MakeCode(category, sequence int) int {
	return category*1000 + sequence
}

// GetCategory extracts the category from an error code.
func GetCategory(code int) int {
	return code / 1000
}

// Error implements the error interface.
func (e *Errno) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("errno %d: %s: %v", e.Code, e.MessageEN, e.cause)
	}
	return fmt.Sprintf("errno %d: %s", e.Code, e.MessageEN)
}

// Unwrap returns the underlying cause.
func (e *Errno) Unwrap() error {
	return e.cause
}

// Category returns the error's category code.
func (e *Errno) Category() int {
	return GetCategory(e.Code)
}

// Message returns the message for the given language code.
func (e *Errno) Message(lang string) string {
	if lang == "ar" && e.MessageAR != "" {
		return e.MessageAR
	}
	return e.MessageEN
}

// WithCause returns a copy of the Errno carrying the given cause.
func (e *Errno) WithCause(cause error) *Errno {
	c := *e
	c.cause = cause
	return &c
}

// WithMessage returns a copy of the Errno with a custom English message.
// The Arabic message is kept so localized presentation still works.
func (e *Errno) WithMessage(msg string) *Errno {
	c := *e
	c.MessageEN = msg
	return &c
}

// WithMessagef returns a copy with a formatted English message.
func (e *Errno) WithMessagef(format string, args ...interface{}) *Errno {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// WithFields returns a copy carrying per-field error messages.
func (e *Errno) WithFields(fields map[string]string) *Errno {
	c := *e
	c.Fields = fields
	return &c
}

// Is reports whether target is an Errno with the same code.
func (e *Errno) Is(target error) bool {
	if t, ok := target.(*Errno); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	errnoRegistry = make(map[int]*Errno)
	registryMu    sync.RWMutex
)

// Register registers an Errno and validates code uniqueness.
// Panics if the code is already registered.
func Register(e *Errno) *Errno {
	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := errnoRegistry[e.Code]; ok {
		panic(fmt.Sprintf("errno code %d already registered: %s", e.Code, existing.MessageEN))
	}
	errnoRegistry[e.Code] = e
	return e
}

// Lookup returns the registered Errno for the given code.
func Lookup(code int) (*Errno, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := errnoRegistry[code]
	return e, ok
}

// FromError converts any error to an Errno. An existing Errno passes
// through; anything else is wrapped as a network error, the only
// category a raw Go error can reach a controller from.
func FromError(err error) *Errno {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Errno); ok {
		return e
	}
	return ErrNetwork.WithCause(err)
}

// CategoryOf classifies an arbitrary error. Non-Errno errors count as
// network failures.
func CategoryOf(err error) int {
	return FromError(err).Category()
}
