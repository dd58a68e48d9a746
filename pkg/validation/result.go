package validation

import (
	"fmt"
	"sort"
	"strings"
)

// FormState is the in-memory field values a screen is currently
// editing: field name to current input value (string, number, date or
// bool). Only the owning controller mutates it.
type FormState map[string]any

// Result is the outcome of one validation pass. Produced fresh on every
// pass, never mutated in place, always replaced.
type Result struct {
	Valid  bool              `json:"is_valid"`
	Errors map[string]string `json:"errors"`
}

func newResult() *Result {
	return &Result{Valid: true, Errors: make(map[string]string)}
}

// Fail records the first error for a field; later errors on an already
// failed field are dropped. Callers compose it when a form needs a
// check the rule vocabulary cannot express.
func (r *Result) Fail(field, message string) {
	if _, seen := r.Errors[field]; seen {
		return
	}
	r.Errors[field] = message
	r.Valid = false
}

func (r *Result) fail(field, message string) {
	r.Fail(field, message)
}

// Has reports whether the field carries an error.
func (r *Result) Has(field string) bool {
	_, ok := r.Errors[field]
	return ok
}

// Message returns the error for a field, or empty string.
func (r *Result) Message(field string) string {
	return r.Errors[field]
}

// Fields returns the failed field names in sorted order.
func (r *Result) Fields() []string {
	fields := make([]string, 0, len(r.Errors))
	for f := range r.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// String renders the result for logs.
func (r *Result) String() string {
	if r.Valid {
		return "valid"
	}
	var sb strings.Builder
	sb.WriteString("invalid:")
	for _, f := range r.Fields() {
		fmt.Fprintf(&sb, " %s=%q", f, r.Errors[f])
	}
	return sb.String()
}
