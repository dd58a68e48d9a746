package validation

import "github.com/tijarah-io/tijarah/pkg/locale"

// MinPasswordLength is the only blocking password requirement.
const MinPasswordLength = 6

// PasswordReport is the composite result of the password checks.
//
// Valid is true iff MinLength holds. The four character-class flags are
// advisory strength signals only and never block validation. The
// asymmetry is intentional and mirrors the backend's contract; do not
// tighten it here.
type PasswordReport struct {
	Valid      bool `json:"is_valid"`
	MinLength  bool `json:"min_length"`
	HasUpper   bool `json:"has_upper_case"`
	HasLower   bool `json:"has_lower_case"`
	HasNumber  bool `json:"has_numbers"`
	HasSpecial bool `json:"has_special_char"`
}

// CheckPassword evaluates the five password sub-checks.
func CheckPassword(password string) PasswordReport {
	r := PasswordReport{
		MinLength:  len([]rune(password)) >= MinPasswordLength,
		HasUpper:   hasUpper(password),
		HasLower:   hasLower(password),
		HasNumber:  hasDigit(password),
		HasSpecial: hasSpecial(password),
	}
	r.Valid = r.MinLength
	return r
}

// Strength labels.
const (
	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

// Strength is a password strength report with localized feedback.
type Strength struct {
	Score    int      `json:"score"` // satisfied flags, 0-5
	Strength string   `json:"strength"`
	Feedback []string `json:"feedback"` // one line per unsatisfied flag
}

// PasswordStrength scores a password: one point per satisfied sub-check,
// strong at 4+, medium at 2+, weak below. Feedback lines are resolved
// through the locale provider.
func (e *Engine) PasswordStrength(password string) Strength {
	r := CheckPassword(password)

	score := 0
	var feedback []string

	flags := []struct {
		ok  bool
		key string
	}{
		{r.MinLength, locale.KeyPasswordNeedLength},
		{r.HasUpper, locale.KeyPasswordNeedUpper},
		{r.HasLower, locale.KeyPasswordNeedLower},
		{r.HasNumber, locale.KeyPasswordNeedNumber},
		{r.HasSpecial, locale.KeyPasswordNeedSpecial},
	}
	for _, f := range flags {
		if f.ok {
			score++
		} else {
			feedback = append(feedback, e.loc.T(f.key))
		}
	}

	s := Strength{Score: score, Feedback: feedback}
	switch {
	case score >= 4:
		s.Strength = StrengthStrong
	case score >= 2:
		s.Strength = StrengthMedium
	default:
		s.Strength = StrengthWeak
	}
	return s
}
