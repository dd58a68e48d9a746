package validation

import "github.com/tijarah-io/tijarah/pkg/locale"

// RuleType identifies a rule-table check.
type RuleType string

// Rule types accepted by ValidateForm and ValidateField.
const (
	Required   RuleType = "required"
	Email      RuleType = "email"
	MinLength  RuleType = "min_length"
	MaxLength  RuleType = "max_length"
	Numeric    RuleType = "numeric"
	Positive   RuleType = "positive"
	Phone      RuleType = "phone"
	NationalID RuleType = "national_id"
	Match      RuleType = "match"    // Value: the value that must be equal
	OneOf      RuleType = "one_of"   // Value: []string of accepted values
	PastDate   RuleType = "past_date"
	ValidDate  RuleType = "date"
)

// Rule is one ordered check descriptor for a field. Value parameterizes
// the check (length bound, comparand, accepted set). Message, when set,
// overrides the default localized message for the rule type.
type Rule struct {
	Type    RuleType
	Value   any
	Message string
}

// Rules maps a field name to its ordered check list.
type Rules map[string][]Rule

// ValidateField applies a field's rules in order and returns the first
// failure message, or the empty string when all checks pass.
func (e *Engine) ValidateField(name string, value any, rules []Rule) string {
	for _, rule := range rules {
		if ok := e.applyRule(value, rule); !ok {
			if rule.Message != "" {
				return rule.Message
			}
			return e.defaultMessage(rule.Type)
		}
	}
	return ""
}

// ValidateForm applies a rule table to a form. Per field, the first
// failing check wins and later checks on that field are skipped; other
// fields are still validated (short-circuit per field, not per form).
//
// For any rule set, this produces the same outcome as the bespoke
// per-form validators built from the same checks; the two paths are
// interchangeable and covered by a cross-check test.
func (e *Engine) ValidateForm(form FormState, rules Rules) *Result {
	result := newResult()
	for name, fieldRules := range rules {
		if msg := e.ValidateField(name, form[name], fieldRules); msg != "" {
			result.fail(name, msg)
		}
	}
	return result
}

func (e *Engine) applyRule(value any, rule Rule) bool {
	switch rule.Type {
	case Required:
		return IsRequired(value)
	case Email:
		return isEmpty(value) || IsValidEmail(asString(value))
	case MinLength:
		min, _ := ToNumber(rule.Value)
		return HasMinLength(asString(value), int(min))
	case MaxLength:
		max, _ := ToNumber(rule.Value)
		return HasMaxLength(asString(value), int(max))
	case Numeric:
		return IsNumeric(value)
	case Positive:
		return IsPositiveNumber(value)
	case Phone:
		return isEmpty(value) || IsValidRegionalPhone(asString(value))
	case NationalID:
		return isEmpty(value) || IsValidNationalID(asString(value))
	case Match:
		return isEmpty(value) || asString(value) == asString(rule.Value)
	case OneOf:
		if isEmpty(value) {
			return true
		}
		accepted, _ := rule.Value.([]string)
		v := asString(value)
		for _, a := range accepted {
			if v == a {
				return true
			}
		}
		return false
	case PastDate:
		return IsValidDate(value) && IsPastDate(value)
	case ValidDate:
		return IsValidDate(value)
	default:
		// Unknown rule types pass; the backend remains the authority.
		return true
	}
}

func (e *Engine) defaultMessage(t RuleType) string {
	switch t {
	case Required:
		return e.loc.T(locale.KeyRequired)
	case Email:
		return e.loc.T(locale.KeyInvalidEmail)
	case MinLength:
		return e.loc.T(locale.KeyTooShort)
	case MaxLength:
		return e.loc.T(locale.KeyTooLong)
	case Numeric:
		return e.loc.T(locale.KeyInvalidNumber)
	case Positive:
		return e.loc.T(locale.KeyNotPositive)
	case Phone:
		return e.loc.T(locale.KeyInvalidPhone)
	case NationalID:
		return e.loc.T(locale.KeyInvalidNationalID)
	case Match:
		return e.loc.T(locale.KeyPasswordMismatch)
	case OneOf:
		return e.loc.T(locale.KeyInvalidRole)
	case PastDate:
		return e.loc.T(locale.KeyDateNotPast)
	case ValidDate:
		return e.loc.T(locale.KeyInvalidDate)
	default:
		return e.loc.T(locale.KeyGenericError)
	}
}
