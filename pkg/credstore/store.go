// Package credstore persists the small set of values that outlive a
// screen: the auth token, the logged-in user, the remembered login
// email, and the selected language. The file-backed implementation
// encrypts the document at rest; the memory implementation backs tests.
package credstore

import (
	"context"

	"github.com/bytedance/sonic"
)

// Storage keys. The names match the backend client contract; renaming
// one silently logs every existing install out.
const (
	KeyUserToken       = "userToken"
	KeyUserID          = "userId"
	KeyRememberedEmail = "rememberedEmail"
	KeyRememberMe      = "rememberMe"
	KeyUserData        = "userData"
	KeyLanguage        = "language"
)

// Store is an async key-value store for persisted client state.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Credentials is the persisted login state.
type Credentials struct {
	Token           string `json:"token"`
	UserID          string `json:"user_id"`
	RememberedEmail string `json:"remembered_email,omitempty"`
	RememberMe      bool   `json:"remember_me"`
}

// Vault wraps a Store with the typed accessors the rest of the client
// uses. It also satisfies locale.Preference.
type Vault struct {
	store Store
}

// NewVault creates a Vault over the given store.
func NewVault(store Store) *Vault {
	return &Vault{store: store}
}

// Credentials reads the persisted login state. A zero Token means the
// user is not logged in.
func (v *Vault) Credentials(ctx context.Context) (Credentials, error) {
	var c Credentials
	var err error

	if c.Token, _, err = v.store.Get(ctx, KeyUserToken); err != nil {
		return Credentials{}, err
	}
	if c.UserID, _, err = v.store.Get(ctx, KeyUserID); err != nil {
		return Credentials{}, err
	}
	if c.RememberedEmail, _, err = v.store.Get(ctx, KeyRememberedEmail); err != nil {
		return Credentials{}, err
	}
	remember, _, err := v.store.Get(ctx, KeyRememberMe)
	if err != nil {
		return Credentials{}, err
	}
	c.RememberMe = remember == "true"
	return c, nil
}

// SaveCredentials persists a successful login. When RememberMe is off
// the remembered email is cleared, per the opt-out contract.
func (v *Vault) SaveCredentials(ctx context.Context, c Credentials) error {
	if err := v.store.Set(ctx, KeyUserToken, c.Token); err != nil {
		return err
	}
	if err := v.store.Set(ctx, KeyUserID, c.UserID); err != nil {
		return err
	}
	if c.RememberMe {
		if err := v.store.Set(ctx, KeyRememberMe, "true"); err != nil {
			return err
		}
		return v.store.Set(ctx, KeyRememberedEmail, c.RememberedEmail)
	}
	if err := v.store.Set(ctx, KeyRememberMe, "false"); err != nil {
		return err
	}
	return v.store.Delete(ctx, KeyRememberedEmail)
}

// ClearCredentials removes the login state but keeps the language
// preference and, when remember-me is on, the remembered email.
func (v *Vault) ClearCredentials(ctx context.Context) error {
	if err := v.store.Delete(ctx, KeyUserToken); err != nil {
		return err
	}
	if err := v.store.Delete(ctx, KeyUserID); err != nil {
		return err
	}
	return v.store.Delete(ctx, KeyUserData)
}

// SaveUserData caches the login response's user object as JSON.
func (v *Vault) SaveUserData(ctx context.Context, user any) error {
	raw, err := sonic.Marshal(user)
	if err != nil {
		return err
	}
	return v.store.Set(ctx, KeyUserData, string(raw))
}

// UserData decodes the cached user object into out. Returns false when
// nothing is cached.
func (v *Vault) UserData(ctx context.Context, out any) (bool, error) {
	raw, ok, err := v.store.Get(ctx, KeyUserData)
	if err != nil || !ok || raw == "" {
		return false, err
	}
	if err := sonic.Unmarshal([]byte(raw), out); err != nil {
		return false, err
	}
	return true, nil
}

// Language returns the persisted language code.
func (v *Vault) Language(ctx context.Context) (string, error) {
	code, _, err := v.store.Get(ctx, KeyLanguage)
	return code, err
}

// SetLanguage persists the language code.
func (v *Vault) SetLanguage(ctx context.Context, code string) error {
	return v.store.Set(ctx, KeyLanguage, code)
}

// Close closes the underlying store.
func (v *Vault) Close() error {
	return v.store.Close()
}
