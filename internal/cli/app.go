// Package cli assembles the tijarah command line client: it builds the
// service stack from the options and exposes the screens as
// subcommands.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kart-io/logger"

	"github.com/tijarah-io/tijarah/internal/auth"
	"github.com/tijarah-io/tijarah/internal/refdata"
	"github.com/tijarah-io/tijarah/internal/screens"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/app"
	"github.com/tijarah-io/tijarah/pkg/credstore"
	"github.com/tijarah-io/tijarah/pkg/locale"
	"github.com/tijarah-io/tijarah/pkg/observability"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const (
	appName        = "tijarah"
	appDescription = `Tijarah business management client

Manage customers, inventory, suppliers, sales invoices, expenses,
purchase orders, payments, staff and sales targets against a Tijarah
backend.`
)

// NewApp creates the CLI application.
func NewApp() *app.App {
	opts := NewOptions()

	var a *app.App
	a = app.New(
		app.WithName(appName),
		app.WithShortDescription("Tijarah business management client"),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithSubCommands(commands(func() (*Stack, error) {
			// Subcommands bypass the root RunE, so config loading and
			// option completion happen here.
			if err := a.Prepare(a.Command()); err != nil {
				return nil, err
			}
			return NewStack(context.Background(), opts)
		})...),
	)
	return a
}

// Stack is the assembled client: every screen is built from the same
// shared services.
type Stack struct {
	Vault   *credstore.Vault
	Locale  *locale.Provider
	Engine  *validation.Engine
	API     *apiclient.Client
	Auth    *auth.Service
	Refdata *refdata.Service

	tracing *observability.Provider
}

// NewStack wires the full client from the options.
func NewStack(ctx context.Context, opts *Options) (*Stack, error) {
	opts.Log.AddInitialField("service.name", appName)
	if err := opts.Log.Init(); err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	tracing, err := observability.NewProvider(ctx, opts.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	var store credstore.Store
	if opts.Passphrase != "" {
		if err := os.MkdirAll(opts.StatePath, 0o700); err != nil {
			return nil, err
		}
		store, err = credstore.OpenFileStore(filepath.Join(opts.StatePath, "credentials.dat"), opts.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("open credential store: %w", err)
		}
	} else {
		store = credstore.NewMemoryStore()
	}
	vault := credstore.NewVault(store)

	loc := locale.NewProvider(ctx, vault)
	if opts.Language != "" {
		if err := loc.SetLanguage(ctx, opts.Language); err != nil {
			return nil, err
		}
	}
	engine := validation.NewEngine(loc)

	api := apiclient.New(opts.BaseURL,
		apiclient.WithTimeout(opts.Timeout),
		apiclient.WithTracer(tracing.Tracer("apiclient")),
		apiclient.WithTokenSource(apiclient.TokenFunc(func(ctx context.Context) (string, error) {
			creds, err := vault.Credentials(ctx)
			return creds.Token, err
		})),
	)
	authSvc := auth.NewService(api, vault, engine)

	var refdataPath string
	if opts.Passphrase != "" {
		refdataPath = filepath.Join(opts.StatePath, "refdata.db")
	}
	rd, err := refdata.NewService(api, refdataPath)
	if err != nil {
		return nil, fmt.Errorf("open reference data store: %w", err)
	}

	logger.Infow("client ready", "base_url", opts.BaseURL, "language", loc.Active().Code)
	return &Stack{
		Vault:   vault,
		Locale:  loc,
		Engine:  engine,
		API:     api,
		Auth:    authSvc,
		Refdata: rd,
		tracing: tracing,
	}, nil
}

// Screens builds the screen dependency set.
func (s *Stack) Screens() screens.Deps {
	return screens.Deps{
		API:     s.API,
		Auth:    s.Auth,
		Refdata: s.Refdata,
		Engine:  s.Engine,
		Locale:  s.Locale,
	}
}

// Close releases everything the stack holds.
func (s *Stack) Close(ctx context.Context) {
	if err := s.Refdata.Close(); err != nil {
		logger.Warnw("refdata close failed", "error", err)
	}
	if err := s.Vault.Close(); err != nil {
		logger.Warnw("credential store close failed", "error", err)
	}
	if err := s.tracing.Shutdown(ctx); err != nil {
		logger.Warnw("tracing shutdown failed", "error", err)
	}
}
