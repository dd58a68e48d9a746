package validation

import (
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ar_translations "github.com/go-playground/validator/v10/translations/ar"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/tijarah-io/tijarah/pkg/locale"
)

// Engine is the validation engine. It bundles the bespoke per-form
// validators, the rule-table path, and a struct-tag validator for typed
// request payloads. Construct one at app start and inject it; there is
// no package-level instance, so tests can build their own with a fake
// locale provider.
type Engine struct {
	loc      *locale.Provider
	validate *validator.Validate
	trans    map[string]ut.Translator
}

// NewEngine creates an Engine wired to the given locale provider.
func NewEngine(loc *locale.Provider) *Engine {
	e := &Engine{
		loc:      loc,
		validate: validator.New(),
		trans:    make(map[string]ut.Translator),
	}

	// Error field names come from JSON tags so they line up with the
	// form field names the backend echoes in its errors map.
	e.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	if enTrans, ok := loc.Translator(locale.LangEN); ok {
		_ = en_translations.RegisterDefaultTranslations(e.validate, enTrans)
		e.trans[locale.LangEN] = enTrans
	}
	if arTrans, ok := loc.Translator(locale.LangAR); ok {
		_ = ar_translations.RegisterDefaultTranslations(e.validate, arTrans)
		e.trans[locale.LangAR] = arTrans
	}

	e.registerCustomTags()
	return e
}

// registerCustomTags adds the domain tags shared with the rule table.
func (e *Engine) registerCustomTags() {
	_ = e.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidRegionalPhone(fl.Field().String())
	})
	_ = e.validate.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		return IsValidNationalID(fl.Field().String())
	})

	custom := map[string]map[string]string{
		"phone": {
			locale.LangEN: "{0} must be a valid phone number",
			locale.LangAR: "{0} يجب أن يكون رقم هاتف صحيح",
		},
		"national_id": {
			locale.LangEN: "{0} must be a 10-digit national ID",
			locale.LangAR: "{0} يجب أن يكون رقم هوية من 10 أرقام",
		},
	}
	for tag, msgs := range custom {
		for lang, msg := range msgs {
			trans, ok := e.trans[lang]
			if !ok {
				continue
			}
			message := msg
			_ = e.validate.RegisterTranslation(tag, trans,
				func(ut ut.Translator) error {
					return ut.Add(tag, message, true)
				},
				func(ut ut.Translator, fe validator.FieldError) string {
					t, _ := ut.T(tag, fe.Field())
					return t
				},
			)
		}
	}
}

// ValidateStruct validates a tagged request payload and converts the
// outcome into a field-keyed Result, messages translated for the active
// language. Callers get the same Result shape as the form validators.
func (e *Engine) ValidateStruct(s any) *Result {
	result := newResult()

	err := e.validate.Struct(s)
	if err == nil {
		return result
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.fail("form", e.loc.T(locale.KeyGenericError))
		return result
	}

	trans := e.trans[e.loc.Active().Code]
	for _, fe := range verrs {
		if trans != nil {
			result.fail(fe.Field(), fe.Translate(trans))
		} else {
			result.fail(fe.Field(), fe.Error())
		}
	}
	return result
}

// Locale exposes the provider, for controllers reusing the engine's
// message catalog.
func (e *Engine) Locale() *locale.Provider {
	return e.loc
}
