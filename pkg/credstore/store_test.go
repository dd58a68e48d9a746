package credstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultCredentialsRoundTrip(t *testing.T) {
	ctx := context.Background()
	v := NewVault(NewMemoryStore())

	creds, err := v.Credentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, creds.Token)

	err = v.SaveCredentials(ctx, Credentials{
		Token:           "tok-1",
		UserID:          "42",
		RememberedEmail: "admin@gmail.com",
		RememberMe:      true,
	})
	require.NoError(t, err)

	creds, err = v.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", creds.Token)
	assert.Equal(t, "42", creds.UserID)
	assert.Equal(t, "admin@gmail.com", creds.RememberedEmail)
	assert.True(t, creds.RememberMe)
}

// Opting out of remember-me clears the remembered email.
func TestVaultRememberMeOptOut(t *testing.T) {
	ctx := context.Background()
	v := NewVault(NewMemoryStore())

	require.NoError(t, v.SaveCredentials(ctx, Credentials{
		Token: "t", UserID: "1", RememberedEmail: "a@b.c", RememberMe: true,
	}))
	require.NoError(t, v.SaveCredentials(ctx, Credentials{
		Token: "t2", UserID: "1", RememberMe: false,
	}))

	creds, err := v.Credentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, creds.RememberedEmail)
	assert.False(t, creds.RememberMe)
}

// Logout clears login state but keeps the language preference.
func TestVaultClearKeepsLanguage(t *testing.T) {
	ctx := context.Background()
	v := NewVault(NewMemoryStore())

	require.NoError(t, v.SetLanguage(ctx, "ar"))
	require.NoError(t, v.SaveCredentials(ctx, Credentials{Token: "t", UserID: "1"}))
	require.NoError(t, v.SaveUserData(ctx, map[string]string{"name": "Sara"}))

	require.NoError(t, v.ClearCredentials(ctx))

	creds, err := v.Credentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, creds.Token)

	var user map[string]string
	ok, err := v.UserData(ctx, &user)
	require.NoError(t, err)
	assert.False(t, ok)

	lang, err := v.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ar", lang)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.enc")

	s, err := OpenFileStore(path, "passphrase")
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyUserToken, "tok-9"))
	require.NoError(t, s.Close())

	s2, err := OpenFileStore(path, "passphrase")
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get(ctx, KeyUserToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-9", v)
}

func TestFileStoreRejectsWrongPassphrase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.enc")

	s, err := OpenFileStore(path, "right")
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyUserToken, "tok"))
	require.NoError(t, s.Close())

	_, err = OpenFileStore(path, "wrong")
	assert.Error(t, err)
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.enc")

	s, err := OpenFileStore(path, "p")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, KeyUserID, "7"))
	require.NoError(t, s.Delete(ctx, KeyUserID))

	_, ok, err := s.Get(ctx, KeyUserID)
	require.NoError(t, err)
	assert.False(t, ok)
}
