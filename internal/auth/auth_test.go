package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/credstore"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/locale"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *credstore.Vault) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	vault := credstore.NewVault(credstore.NewMemoryStore())
	loc := locale.NewProvider(context.Background(), vault)
	engine := validation.NewEngine(loc)

	api := apiclient.New(srv.URL)
	return NewService(api, vault, engine), vault
}

func decodeJSON(r *http.Request, out any) error {
	return sonic.ConfigDefault.NewDecoder(r.Body).Decode(out)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestLoginPersistsSession(t *testing.T) {
	svc, vault := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 200,
			"data": {
				"token": "tok-abc",
				"user": {"id": 7, "first_name": "Sara", "last_name": "Nasser", "email": "sara@example.com", "role_id": 2}
			}
		}`))
	}))

	ctx := context.Background()
	form := validation.FormState{"email": "sara@example.com", "password": "abcdef"}
	res, vr := svc.Login(ctx, form, true)
	require.Nil(t, vr)
	require.True(t, res.Success)

	creds, err := vault.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", creds.Token)
	assert.Equal(t, "7", creds.UserID)
	assert.Equal(t, "sara@example.com", creds.RememberedEmail)
	assert.True(t, creds.RememberMe)

	user, ok := svc.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "Sara", user.FirstName)

	tok, err := svc.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)
}

func TestLoginInvalidFormSkipsNetwork(t *testing.T) {
	called := false
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, vr := svc.Login(context.Background(), validation.FormState{"email": "not-an-email", "password": ""}, false)
	require.NotNil(t, vr)
	assert.False(t, vr.Valid)
	assert.True(t, vr.Has("email"))
	assert.True(t, vr.Has("password"))
	assert.False(t, called)
}

func TestLoginRejectedByBackend(t *testing.T) {
	svc, vault := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 401, "message": "Invalid credentials"}`))
	}))

	ctx := context.Background()
	res, vr := svc.Login(ctx, validation.FormState{"email": "sara@example.com", "password": "wrongpw"}, false)
	require.Nil(t, vr)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Message)

	creds, err := vault.Credentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, creds.Token)
}

func TestRegisterSubmitsCoercedPayload(t *testing.T) {
	var got model.RegisterRequest
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register", r.URL.Path)
		require.NoError(t, decodeJSON(r, &got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 200, "message": "Registered"}`))
	}))

	form := validation.FormState{
		"first_name":            "Sara",
		"last_name":             "Nasser",
		"email":                 "sara@example.com",
		"national_id":           "1234567890",
		"dob":                   "1990-04-15",
		"password":              "abcdef",
		"password_confirmation": "abcdef",
		"role_id":               "2",
	}
	res, vr := svc.Register(context.Background(), form)
	require.Nil(t, vr)
	require.True(t, res.Success)
	assert.Equal(t, 2, got.RoleID)
	assert.Equal(t, "1234567890", got.NationalID)
}

func TestLogoutClearsSessionEvenWhenOffline(t *testing.T) {
	_, vault := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ctx := context.Background()
	require.NoError(t, vault.SaveCredentials(ctx, credstore.Credentials{Token: "tok", UserID: "1"}))

	// Point at a dead server for the logout call itself.
	dead := NewService(apiclient.New("http://127.0.0.1:1"), vault, nil)
	res := dead.Logout(ctx)
	assert.True(t, res.NetworkError)

	creds, err := vault.Credentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, creds.Token)
}

func TestEnsureAuthenticated(t *testing.T) {
	svc, vault := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ctx := context.Background()

	err := svc.EnsureAuthenticated(ctx)
	require.NotNil(t, err)
	assert.True(t, errors.ErrNotAuthenticated.Is(err))

	require.NoError(t, vault.SaveCredentials(ctx, credstore.Credentials{Token: "opaque-token", UserID: "1"}))
	assert.Nil(t, svc.EnsureAuthenticated(ctx))

	expired := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, vault.SaveCredentials(ctx, credstore.Credentials{Token: expired, UserID: "1"}))
	err = svc.EnsureAuthenticated(ctx)
	require.NotNil(t, err)
	assert.True(t, errors.ErrTokenExpired.Is(err))

	fresh := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, vault.SaveCredentials(ctx, credstore.Credentials{Token: fresh, UserID: "1"}))
	assert.Nil(t, svc.EnsureAuthenticated(ctx))

	// A JWT without an exp claim never counts as expired.
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"})
	s, err2 := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err2)
	require.NoError(t, vault.SaveCredentials(ctx, credstore.Credentials{Token: s, UserID: "1"}))
	assert.Nil(t, svc.EnsureAuthenticated(ctx))
}
