package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/tijarah-io/tijarah/pkg/locale"
	"github.com/tijarah-io/tijarah/pkg/observability"
	logopts "github.com/tijarah-io/tijarah/pkg/options/logger"
)

// Options carries everything the client binary needs: where the
// backend is, where session state lives, and the ambient logging and
// tracing configuration.
type Options struct {
	// BaseURL is the backend API root.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout bounds each API call.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// StatePath is the directory for the credential store and the
	// offline reference data snapshot.
	StatePath string `json:"state-path" mapstructure:"state-path"`

	// Passphrase encrypts the credential store on disk. Empty keeps
	// credentials in memory only.
	Passphrase string `json:"passphrase" mapstructure:"passphrase"`

	// Language forces the UI language (en|ar); empty follows the
	// persisted preference.
	Language string `json:"language" mapstructure:"language"`

	Log     *logopts.Options       `json:"log" mapstructure:"log"`
	Tracing *observability.Options `json:"tracing" mapstructure:"tracing"`
}

// NewOptions returns Options with defaults.
func NewOptions() *Options {
	return &Options{
		BaseURL: "http://localhost:8080",
		Timeout: 30 * time.Second,
		Log:     logopts.NewOptions(),
		Tracing: observability.NewOptions(),
	}
}

// AddFlags adds all client flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BaseURL, "base-url", o.BaseURL, "Backend API base URL")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Per-request timeout")
	fs.StringVar(&o.StatePath, "state-path", o.StatePath, "Directory for credentials and offline data")
	fs.StringVar(&o.Passphrase, "passphrase", o.Passphrase, "Passphrase for the on-disk credential store")
	fs.StringVar(&o.Language, "language", o.Language, "UI language (en|ar)")
	o.Log.AddFlags(fs)
	o.Tracing.AddFlags(fs)
}

// Complete fills in the state directory default.
func (o *Options) Complete() error {
	if o.StatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		o.StatePath = filepath.Join(home, ".tijarah")
	}
	return nil
}

// Validate rejects bad combinations.
func (o *Options) Validate() error {
	if o.BaseURL == "" {
		return fmt.Errorf("base-url is required")
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if o.Language != "" && o.Language != locale.LangEN && o.Language != locale.LangAR {
		return fmt.Errorf("unsupported language: %q", o.Language)
	}
	if err := o.Log.Validate(); err != nil {
		return err
	}
	return o.Tracing.Validate()
}
