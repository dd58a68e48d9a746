// Package validation implements the client-side validation engine: pure
// field checks, bespoke per-form validators, and a rule-table driven
// generic path. Validators never return Go errors for bad input; a
// failed check is data, not an exception.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	// Deliberately permissive: non-whitespace, @, non-whitespace, dot,
	// non-whitespace. Not RFC 5322; the backend has the final say.
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

	nationalIDPattern = regexp.MustCompile(`^[0-9]{10}$`)

	// Accepted regional prefixes followed by 8-9 digits.
	phonePattern = regexp.MustCompile(`^(?:\+966|00966|966|05)[0-9]{8,9}$`)
)

// IsRequired reports whether the value counts as present. Nil and
// strings that trim to empty fail; every other value passes.
func IsRequired(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// IsValidEmail matches the permissive email shape described above.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// IsValidRegionalPhone accepts a regional prefix followed by 8-9 digits.
// All whitespace is stripped before matching, so "05 1234 5678" passes.
func IsValidRegionalPhone(value string) bool {
	stripped := strings.Join(strings.Fields(value), "")
	return phonePattern.MatchString(stripped)
}

// IsValidNationalID accepts exactly 10 digits.
func IsValidNationalID(value string) bool {
	return nationalIDPattern.MatchString(strings.TrimSpace(value))
}

// HasMinLength passes vacuously on empty values; only IsRequired
// enforces presence.
func HasMinLength(value string, min int) bool {
	if value == "" {
		return true
	}
	return len([]rune(value)) >= min
}

// HasMaxLength passes vacuously on empty values.
func HasMaxLength(value string, max int) bool {
	if value == "" {
		return true
	}
	return len([]rune(value)) <= max
}

// ToNumber coerces numeric-looking values to float64. This is the
// single coercion point shared by the numeric checks and the payload
// builders.
func ToNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// IsNumeric passes vacuously on empty values.
func IsNumeric(value any) bool {
	if isEmpty(value) {
		return true
	}
	_, ok := ToNumber(value)
	return ok
}

// IsPositiveNumber passes vacuously on empty values and requires a
// strictly positive number otherwise.
func IsPositiveNumber(value any) bool {
	if isEmpty(value) {
		return true
	}
	n, ok := ToNumber(value)
	return ok && n > 0
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	time.RFC3339,
}

// ToDate coerces a date value. Strings are tried against the accepted
// layouts in order.
func ToDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// IsValidDate passes vacuously on empty values.
func IsValidDate(value any) bool {
	if isEmpty(value) {
		return true
	}
	_, ok := ToDate(value)
	return ok
}

// IsFutureDate passes vacuously on empty or unparseable values.
func IsFutureDate(value any) bool {
	if isEmpty(value) {
		return true
	}
	t, ok := ToDate(value)
	if !ok {
		return true
	}
	return t.After(time.Now())
}

// IsPastDate passes vacuously on empty or unparseable values.
func IsPastDate(value any) bool {
	if isEmpty(value) {
		return true
	}
	t, ok := ToDate(value)
	if !ok {
		return true
	}
	return t.Before(time.Now())
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func asString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if value == nil {
		return ""
	}
	if n, ok := ToNumber(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func hasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func hasLower(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasSpecial(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
	}) >= 0
}
