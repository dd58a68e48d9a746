// Package locale resolves message keys for the active language and
// tracks the selected language and its layout direction. English and
// Arabic are the two supported languages; Arabic renders right-to-left.
package locale

import (
	"context"
	"sync"

	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
)

// Language codes.
const (
	LangEN = "en"
	LangAR = "ar"
)

// Locale describes an active language.
type Locale struct {
	Code string `json:"code"`
	RTL  bool   `json:"rtl"`
}

var supported = map[string]Locale{
	LangEN: {Code: LangEN, RTL: false},
	LangAR: {Code: LangAR, RTL: true},
}

// Preference persists the selected language code between runs.
type Preference interface {
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, code string) error
}

// Provider resolves message keys for the active language.
type Provider struct {
	mu      sync.RWMutex
	active  Locale
	pref    Preference
	uni     *ut.UniversalTranslator
	catalog map[string]map[string]string // lang -> key -> message
}

// NewProvider creates a Provider, restoring the persisted language
// preference when one exists. Unknown or missing codes fall back to
// English.
func NewProvider(ctx context.Context, pref Preference) *Provider {
	p := &Provider{
		active:  supported[LangEN],
		pref:    pref,
		uni:     ut.New(en.New(), en.New(), ar.New()),
		catalog: map[string]map[string]string{LangEN: {}, LangAR: {}},
	}
	p.loadCatalog()

	if pref != nil {
		if code, err := pref.Language(ctx); err == nil {
			if loc, ok := supported[code]; ok {
				p.active = loc
			}
		}
	}
	return p
}

// Active returns the active locale.
func (p *Provider) Active() Locale {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

// SetLanguage switches the active language and persists the choice.
func (p *Provider) SetLanguage(ctx context.Context, code string) error {
	loc, ok := supported[code]
	if !ok {
		loc = supported[LangEN]
	}

	p.mu.Lock()
	p.active = loc
	p.mu.Unlock()

	if p.pref != nil {
		return p.pref.SetLanguage(ctx, loc.Code)
	}
	return nil
}

// T resolves a message key for the active language. Resolution order:
// active language, English, then the key itself.
func (p *Provider) T(key string) string {
	p.mu.RLock()
	code := p.active.Code
	p.mu.RUnlock()

	if msg, ok := p.catalog[code][key]; ok {
		return msg
	}
	if msg, ok := p.catalog[LangEN][key]; ok {
		return msg
	}
	return key
}

// Translator returns the universal-translator for the given language,
// used by the struct-tag validator to register translations.
func (p *Provider) Translator(code string) (ut.Translator, bool) {
	return p.uni.GetTranslator(code)
}

// Register adds or overrides a catalog entry for a language. Screens
// with one-off strings register them at construction.
func (p *Provider) Register(lang, key, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.catalog[lang]; !ok {
		p.catalog[lang] = make(map[string]string)
	}
	p.catalog[lang][key] = message
}
