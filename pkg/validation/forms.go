package validation

import "github.com/tijarah-io/tijarah/pkg/locale"

// Bespoke per-form validators. Each applies an ordered sequence of
// checks; the first failing check for a field wins and later checks on
// that field are skipped. The rule-table constructors below each
// validator describe the same checks for the generic path; the two must
// stay in agreement (see the cross-check tests).

// AcceptedRoleIDs are the role ids the registration form accepts.
var AcceptedRoleIDs = []string{"1", "2", "3"}

// ValidateRegistrationForm checks the staff registration form.
func (e *Engine) ValidateRegistrationForm(form FormState) *Result {
	result := newResult()

	if !IsRequired(form["first_name"]) {
		result.fail("first_name", e.loc.T(locale.KeyRequired))
	}
	if !IsRequired(form["last_name"]) {
		result.fail("last_name", e.loc.T(locale.KeyRequired))
	}

	if !IsRequired(form["email"]) {
		result.fail("email", e.loc.T(locale.KeyRequired))
	} else if !IsValidEmail(asString(form["email"])) {
		result.fail("email", e.loc.T(locale.KeyInvalidEmail))
	}

	if !IsRequired(form["national_id"]) {
		result.fail("national_id", e.loc.T(locale.KeyRequired))
	} else if !IsValidNationalID(asString(form["national_id"])) {
		result.fail("national_id", e.loc.T(locale.KeyInvalidNationalID))
	}

	if !IsRequired(form["dob"]) {
		result.fail("dob", e.loc.T(locale.KeyRequired))
	} else if !IsValidDate(form["dob"]) {
		result.fail("dob", e.loc.T(locale.KeyInvalidDate))
	} else if !IsPastDate(form["dob"]) {
		result.fail("dob", e.loc.T(locale.KeyDateNotPast))
	}

	if !IsRequired(form["password"]) {
		result.fail("password", e.loc.T(locale.KeyRequired))
	} else if !CheckPassword(asString(form["password"])).Valid {
		result.fail("password", e.loc.T(locale.KeyPasswordTooShort))
	}

	if !IsRequired(form["password_confirmation"]) {
		result.fail("password_confirmation", e.loc.T(locale.KeyRequired))
	} else if asString(form["password_confirmation"]) != asString(form["password"]) {
		result.fail("password_confirmation", e.loc.T(locale.KeyPasswordMismatch))
	}

	if !IsRequired(form["role_id"]) {
		result.fail("role_id", e.loc.T(locale.KeyRequired))
	} else if !oneOf(asString(form["role_id"]), AcceptedRoleIDs) {
		result.fail("role_id", e.loc.T(locale.KeyInvalidRole))
	}

	return result
}

// RegistrationRules is the rule-table equivalent of
// ValidateRegistrationForm. The match comparand is the current password
// value, so build the rules against the form being validated.
func (e *Engine) RegistrationRules(form FormState) Rules {
	return Rules{
		"first_name":  {{Type: Required}},
		"last_name":   {{Type: Required}},
		"email":       {{Type: Required}, {Type: Email}},
		"national_id": {{Type: Required}, {Type: NationalID}},
		"dob":         {{Type: Required}, {Type: ValidDate}, {Type: PastDate}},
		"password":    {{Type: Required}, {Type: MinLength, Value: MinPasswordLength, Message: e.loc.T(locale.KeyPasswordTooShort)}},
		"password_confirmation": {
			{Type: Required},
			{Type: Match, Value: form["password"]},
		},
		"role_id": {{Type: Required}, {Type: OneOf, Value: AcceptedRoleIDs}},
	}
}

// ValidateLoginForm checks the login form.
func (e *Engine) ValidateLoginForm(form FormState) *Result {
	result := newResult()

	if !IsRequired(form["email"]) {
		result.fail("email", e.loc.T(locale.KeyRequired))
	} else if !IsValidEmail(asString(form["email"])) {
		result.fail("email", e.loc.T(locale.KeyInvalidEmail))
	}

	if !IsRequired(form["password"]) {
		result.fail("password", e.loc.T(locale.KeyRequired))
	}

	return result
}

// LoginRules is the rule-table equivalent of ValidateLoginForm.
func (e *Engine) LoginRules() Rules {
	return Rules{
		"email":    {{Type: Required}, {Type: Email}},
		"password": {{Type: Required}},
	}
}

// ValidateCustomerForm checks the customer form. Territory is a
// backend-mandated picker; submitting without one is rejected here
// before any HTTP call is made.
func (e *Engine) ValidateCustomerForm(form FormState) *Result {
	result := newResult()

	if !IsRequired(form["name"]) {
		result.fail("name", e.loc.T(locale.KeyRequired))
	}
	if !IsRequired(form["territory"]) {
		result.fail("territory", e.loc.T(locale.KeyRequired))
	}
	if IsRequired(form["email"]) && !IsValidEmail(asString(form["email"])) {
		result.fail("email", e.loc.T(locale.KeyInvalidEmail))
	}
	if IsRequired(form["phone"]) && !IsValidRegionalPhone(asString(form["phone"])) {
		result.fail("phone", e.loc.T(locale.KeyInvalidPhone))
	}

	return result
}

// CustomerRules is the rule-table equivalent of ValidateCustomerForm.
func (e *Engine) CustomerRules() Rules {
	return Rules{
		"name":      {{Type: Required}},
		"territory": {{Type: Required}},
		"email":     {{Type: Email}},
		"phone":     {{Type: Phone}},
	}
}

// ValidateProductForm checks the inventory item form.
func (e *Engine) ValidateProductForm(form FormState) *Result {
	result := newResult()

	if !IsRequired(form["name"]) {
		result.fail("name", e.loc.T(locale.KeyRequired))
	}

	if !IsRequired(form["price"]) {
		result.fail("price", e.loc.T(locale.KeyRequired))
	} else if !IsNumeric(form["price"]) {
		result.fail("price", e.loc.T(locale.KeyInvalidNumber))
	} else if !IsPositiveNumber(form["price"]) {
		result.fail("price", e.loc.T(locale.KeyNotPositive))
	}

	if IsRequired(form["quantity"]) && !IsNumeric(form["quantity"]) {
		result.fail("quantity", e.loc.T(locale.KeyInvalidNumber))
	}

	return result
}

// ProductRules is the rule-table equivalent of ValidateProductForm.
func (e *Engine) ProductRules() Rules {
	return Rules{
		"name":     {{Type: Required}},
		"price":    {{Type: Required}, {Type: Numeric}, {Type: Positive}},
		"quantity": {{Type: Numeric}},
	}
}

// ValidateSalesForm checks the sales invoice form.
func (e *Engine) ValidateSalesForm(form FormState) *Result {
	result := newResult()

	if !IsRequired(form["customer"]) {
		result.fail("customer", e.loc.T(locale.KeyRequired))
	}

	if !IsRequired(form["date"]) {
		result.fail("date", e.loc.T(locale.KeyRequired))
	} else if !IsValidDate(form["date"]) {
		result.fail("date", e.loc.T(locale.KeyInvalidDate))
	}

	if !IsRequired(form["total"]) {
		result.fail("total", e.loc.T(locale.KeyRequired))
	} else if !IsNumeric(form["total"]) {
		result.fail("total", e.loc.T(locale.KeyInvalidNumber))
	} else if !IsPositiveNumber(form["total"]) {
		result.fail("total", e.loc.T(locale.KeyNotPositive))
	}

	if IsRequired(form["paid_amount"]) && !IsNumeric(form["paid_amount"]) {
		result.fail("paid_amount", e.loc.T(locale.KeyInvalidNumber))
	}

	return result
}

// SalesRules is the rule-table equivalent of ValidateSalesForm.
func (e *Engine) SalesRules() Rules {
	return Rules{
		"customer":    {{Type: Required}},
		"date":        {{Type: Required}, {Type: ValidDate}},
		"total":       {{Type: Required}, {Type: Numeric}, {Type: Positive}},
		"paid_amount": {{Type: Numeric}},
	}
}

// SupplierRules is the supplier form rule table.
func (e *Engine) SupplierRules() Rules {
	return Rules{
		"name":  {{Type: Required}},
		"email": {{Type: Email}},
		"phone": {{Type: Phone}},
	}
}

// ExpenseRules is the expense form rule table.
func (e *Engine) ExpenseRules() Rules {
	return Rules{
		"type":   {{Type: Required}},
		"amount": {{Type: Required}, {Type: Numeric}, {Type: Positive}},
		"date":   {{Type: Required}, {Type: ValidDate}},
	}
}

// PurchaseOrderRules is the purchase order form rule table.
func (e *Engine) PurchaseOrderRules() Rules {
	return Rules{
		"supplier": {{Type: Required}},
		"date":     {{Type: Required}, {Type: ValidDate}},
		"total":    {{Type: Required}, {Type: Numeric}, {Type: Positive}},
	}
}

// PaymentRules is the payment form rule table.
func (e *Engine) PaymentRules() Rules {
	return Rules{
		"party_type": {{Type: Required}, {Type: OneOf, Value: []string{"customer", "supplier"}}},
		"party":      {{Type: Required}},
		"amount":     {{Type: Required}, {Type: Numeric}, {Type: Positive}},
		"date":       {{Type: Required}, {Type: ValidDate}},
	}
}

// StaffRules is the staff form rule table.
func (e *Engine) StaffRules() Rules {
	return Rules{
		"first_name":  {{Type: Required}},
		"last_name":   {{Type: Required}},
		"email":       {{Type: Required}, {Type: Email}},
		"phone":       {{Type: Phone}},
		"national_id": {{Type: NationalID}},
		"role_id":     {{Type: Required}, {Type: OneOf, Value: AcceptedRoleIDs}},
	}
}

// SalesTargetRules is the sales target form rule table.
func (e *Engine) SalesTargetRules() Rules {
	return Rules{
		"staff":      {{Type: Required}},
		"period_key": {{Type: Required}},
		"amount":     {{Type: Required}, {Type: Numeric}, {Type: Positive}},
	}
}

func oneOf(v string, accepted []string) bool {
	for _, a := range accepted {
		if v == a {
			return true
		}
	}
	return false
}
