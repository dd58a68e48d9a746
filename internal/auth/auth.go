// Package auth implements the login, registration and logout flows and
// the credential checks every authenticated screen performs on mount.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/kart-io/logger"

	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/credstore"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

// API endpoints.
const (
	loginPath    = "/login"
	registerPath = "/register"
	logoutPath   = "/logout"
)

// Service performs authentication against the backend and manages the
// persisted session. It is the apiclient.TokenSource for the rest of
// the client.
type Service struct {
	api    *apiclient.Client
	vault  *credstore.Vault
	engine *validation.Engine
}

// NewService creates an auth service.
func NewService(api *apiclient.Client, vault *credstore.Vault, engine *validation.Engine) *Service {
	return &Service{api: api, vault: vault, engine: engine}
}

// Token implements apiclient.TokenSource from the persisted session.
// An empty token with a nil error means "no session"; the client then
// sends the request without a bearer header.
func (s *Service) Token(ctx context.Context) (string, error) {
	creds, err := s.vault.Credentials(ctx)
	if err != nil {
		return "", err
	}
	return creds.Token, nil
}

// Login validates the form locally, calls the backend without a bearer
// header, and on success persists the session. Validation failures are
// returned as a Result so the caller renders them like any other form.
func (s *Service) Login(ctx context.Context, form validation.FormState, rememberMe bool) (apiclient.Result, *validation.Result) {
	if vr := s.engine.ValidateLoginForm(form); !vr.Valid {
		return apiclient.Result{}, vr
	}

	email, _ := form["email"].(string)
	password, _ := form["password"].(string)
	res := s.api.Do(ctx, apiclient.Request{
		Method: "POST",
		Path:   loginPath,
		Body:   model.LoginRequest{Email: email, Password: password},
	})
	if !res.Success {
		return res, nil
	}

	payload, err := apiclient.DecodeData[model.LoginResponse](res)
	if err != nil {
		logger.Warnw("login payload decode failed", "error", err)
		return apiclient.Result{NetworkError: true}, nil
	}

	creds := credstore.Credentials{
		Token:      payload.Token,
		UserID:     strconv.FormatUint(payload.User.ID, 10),
		RememberMe: rememberMe,
	}
	if rememberMe {
		creds.RememberedEmail = email
	}
	if err := s.vault.SaveCredentials(ctx, creds); err != nil {
		logger.Errorw("credential save failed", "error", err)
	}
	if err := s.vault.SaveUserData(ctx, payload.User); err != nil {
		logger.Warnw("user data save failed", "error", err)
	}
	return res, nil
}

// Register validates the registration form locally and submits it. The
// new account is not logged in; the caller routes back to login.
func (s *Service) Register(ctx context.Context, form validation.FormState) (apiclient.Result, *validation.Result) {
	if vr := s.engine.ValidateRegistrationForm(form); !vr.Valid {
		return apiclient.Result{}, vr
	}

	roleID, _ := validation.ToNumber(form["role_id"])
	req := model.RegisterRequest{
		FirstName:            str(form, "first_name"),
		LastName:             str(form, "last_name"),
		Email:                str(form, "email"),
		Phone:                str(form, "phone"),
		NationalID:           str(form, "national_id"),
		DOB:                  str(form, "dob"),
		Password:             str(form, "password"),
		PasswordConfirmation: str(form, "password_confirmation"),
		RoleID:               int(roleID),
	}
	return s.api.Do(ctx, apiclient.Request{Method: "POST", Path: registerPath, Body: req}), nil
}

// Logout tells the backend, then clears the session locally either
// way. A dead network must not trap the user in a session.
func (s *Service) Logout(ctx context.Context) apiclient.Result {
	res := s.api.Post(ctx, logoutPath, nil)
	if res.NetworkError {
		logger.Warnw("logout request failed, clearing session anyway")
	}
	if err := s.vault.ClearCredentials(ctx); err != nil {
		logger.Errorw("credential clear failed", "error", err)
	}
	return res
}

// EnsureAuthenticated reports whether a usable session exists. A token
// whose exp claim already passed is rejected locally so screens fail
// fast instead of burning a request on a guaranteed 401.
func (s *Service) EnsureAuthenticated(ctx context.Context) *errors.Errno {
	creds, err := s.vault.Credentials(ctx)
	if err != nil {
		return errors.ErrNotAuthenticated.WithCause(err)
	}
	if creds.Token == "" {
		return errors.ErrNotAuthenticated
	}
	if expired(creds.Token) {
		return errors.ErrTokenExpired
	}
	return nil
}

// CurrentUser returns the cached user object, if one was saved.
func (s *Service) CurrentUser(ctx context.Context) (model.User, bool) {
	var u model.User
	ok, err := s.vault.UserData(ctx, &u)
	if err != nil || !ok {
		return model.User{}, false
	}
	return u, true
}

// RememberedEmail returns the email persisted by a remember-me login.
func (s *Service) RememberedEmail(ctx context.Context) string {
	creds, err := s.vault.Credentials(ctx)
	if err != nil {
		return ""
	}
	return creds.RememberedEmail
}

// expired checks the exp claim without verifying the signature. The
// backend remains the authority; this only short-circuits the obvious
// case. Opaque tokens parse as not-expired and go through normally.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return false
	}
	// required=false: tokens without an exp claim pass.
	return !claims.VerifyExpiresAt(time.Now().Unix(), false)
}

func str(form validation.FormState, key string) string {
	v, ok := form[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
