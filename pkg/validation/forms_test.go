package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tijarah-io/tijarah/pkg/locale"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(locale.NewProvider(context.Background(), nil))
}

func validRegistrationForm() FormState {
	return FormState{
		"first_name":            "Sara",
		"last_name":             "Hassan",
		"email":                 "sara@example.com",
		"national_id":           "1234567890",
		"dob":                   "1990-04-15",
		"password":              "abcdef",
		"password_confirmation": "abcdef",
		"role_id":               "2",
	}
}

func TestValidateRegistrationForm(t *testing.T) {
	e := newTestEngine(t)

	t.Run("valid form passes", func(t *testing.T) {
		result := e.ValidateRegistrationForm(validRegistrationForm())
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("missing first name yields exactly one error", func(t *testing.T) {
		form := validRegistrationForm()
		form["first_name"] = ""

		result := e.ValidateRegistrationForm(form)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.True(t, result.Has("first_name"))
	})

	t.Run("first failing check per field wins", func(t *testing.T) {
		form := validRegistrationForm()
		form["email"] = "" // fails required before email format

		result := e.ValidateRegistrationForm(form)
		assert.Equal(t, e.Locale().T(locale.KeyRequired), result.Message("email"))
	})

	t.Run("length-only password gate", func(t *testing.T) {
		form := validRegistrationForm()
		form["password"] = "aaaaaa" // no upper, no digit, no special
		form["password_confirmation"] = "aaaaaa"

		result := e.ValidateRegistrationForm(form)
		assert.True(t, result.Valid)
	})

	t.Run("future dob rejected", func(t *testing.T) {
		form := validRegistrationForm()
		form["dob"] = "2099-01-01"

		result := e.ValidateRegistrationForm(form)
		assert.True(t, result.Has("dob"))
	})

	t.Run("role outside accepted set rejected", func(t *testing.T) {
		form := validRegistrationForm()
		form["role_id"] = "7"

		result := e.ValidateRegistrationForm(form)
		assert.True(t, result.Has("role_id"))
	})

	t.Run("mismatched confirmation rejected", func(t *testing.T) {
		form := validRegistrationForm()
		form["password_confirmation"] = "different"

		result := e.ValidateRegistrationForm(form)
		assert.Equal(t, e.Locale().T(locale.KeyPasswordMismatch), result.Message("password_confirmation"))
	})
}

func TestValidateLoginForm(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name       string
		form       FormState
		wantValid  bool
		wantFields []string
	}{
		{
			name:      "valid credentials",
			form:      FormState{"email": "admin@gmail.com", "password": "password123"},
			wantValid: true,
		},
		{
			name:       "both missing",
			form:       FormState{},
			wantValid:  false,
			wantFields: []string{"email", "password"},
		},
		{
			name:       "bad email format",
			form:       FormState{"email": "admin", "password": "x"},
			wantValid:  false,
			wantFields: []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.ValidateLoginForm(tt.form)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantFields, resultFields(result))
		})
	}
}

func resultFields(r *Result) []string {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Fields()
}

func TestValidateCustomerForm(t *testing.T) {
	e := newTestEngine(t)

	t.Run("missing territory blocks submission", func(t *testing.T) {
		result := e.ValidateCustomerForm(FormState{"name": "Acme", "territory": ""})
		assert.False(t, result.Valid)
		assert.True(t, result.Has("territory"))
		assert.False(t, result.Has("name"))
	})

	t.Run("optional contact fields validate only when present", func(t *testing.T) {
		form := FormState{"name": "Acme", "territory": "Riyadh"}
		assert.True(t, e.ValidateCustomerForm(form).Valid)

		form["phone"] = "123"
		assert.True(t, e.ValidateCustomerForm(form).Has("phone"))
	})
}

// The bespoke validators and the rule-table path are two interfaces
// over the same semantics; for equivalent rule sets they must agree on
// pass/fail and on the failing fields.
func TestRuleTableAgreesWithBespokeValidators(t *testing.T) {
	e := newTestEngine(t)

	forms := []FormState{
		validRegistrationForm(),
		func() FormState { f := validRegistrationForm(); f["first_name"] = ""; return f }(),
		func() FormState { f := validRegistrationForm(); f["email"] = "bad"; return f }(),
		func() FormState { f := validRegistrationForm(); f["national_id"] = "12"; return f }(),
		func() FormState { f := validRegistrationForm(); f["dob"] = "2099-01-01"; return f }(),
		func() FormState { f := validRegistrationForm(); f["password"] = "abc"; f["password_confirmation"] = "abc"; return f }(),
		func() FormState { f := validRegistrationForm(); f["password_confirmation"] = "nope"; return f }(),
		func() FormState { f := validRegistrationForm(); f["role_id"] = "9"; return f }(),
		{},
	}

	for _, form := range forms {
		bespoke := e.ValidateRegistrationForm(form)
		generic := e.ValidateForm(form, e.RegistrationRules(form))

		assert.Equal(t, bespoke.Valid, generic.Valid, "form: %v", form)
		assert.Equal(t, bespoke.Errors, generic.Errors, "form: %v", form)
	}

	loginForms := []FormState{
		{"email": "admin@gmail.com", "password": "password123"},
		{"email": "", "password": ""},
		{"email": "nope", "password": "x"},
	}
	for _, form := range loginForms {
		assert.Equal(t, e.ValidateLoginForm(form).Errors, e.ValidateForm(form, e.LoginRules()).Errors)
	}

	customerForms := []FormState{
		{"name": "Acme", "territory": "Riyadh"},
		{"name": "Acme", "territory": ""},
		{"name": "", "territory": "", "email": "bad", "phone": "123"},
	}
	for _, form := range customerForms {
		assert.Equal(t, e.ValidateCustomerForm(form).Errors, e.ValidateForm(form, e.CustomerRules()).Errors)
	}

	productForms := []FormState{
		{"name": "Widget", "price": "10.5", "quantity": "3"},
		{"name": "", "price": "-1"},
		{"name": "Widget", "price": "abc"},
	}
	for _, form := range productForms {
		assert.Equal(t, e.ValidateProductForm(form).Errors, e.ValidateForm(form, e.ProductRules()).Errors)
	}

	salesForms := []FormState{
		{"customer": "CUST-1", "date": "2024-01-10", "total": "100"},
		{"customer": "", "date": "bad", "total": "0"},
	}
	for _, form := range salesForms {
		assert.Equal(t, e.ValidateSalesForm(form).Errors, e.ValidateForm(form, e.SalesRules()).Errors)
	}
}

// Validation holds no hidden state: the same form validates to the same
// result every time.
func TestValidationIdempotence(t *testing.T) {
	e := newTestEngine(t)
	form := validRegistrationForm()
	form["email"] = "broken"

	first := e.ValidateRegistrationForm(form)
	second := e.ValidateRegistrationForm(form)

	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, first.Errors, second.Errors)
}

func TestValidateFieldReturnsFirstFailure(t *testing.T) {
	e := newTestEngine(t)
	rules := []Rule{{Type: Required}, {Type: Email}}

	assert.Equal(t, e.Locale().T(locale.KeyRequired), e.ValidateField("email", "", rules))
	assert.Equal(t, e.Locale().T(locale.KeyInvalidEmail), e.ValidateField("email", "nope", rules))
	assert.Equal(t, "", e.ValidateField("email", "a@b.c", rules))
}

func TestValidateStructUsesJSONFieldNames(t *testing.T) {
	e := newTestEngine(t)

	payload := struct {
		Name  string `json:"name" validate:"required"`
		Phone string `json:"phone" validate:"omitempty,phone"`
	}{Name: "", Phone: "123"}

	result := e.ValidateStruct(&payload)
	assert.False(t, result.Valid)
	assert.True(t, result.Has("name"))
	assert.True(t, result.Has("phone"))
}
