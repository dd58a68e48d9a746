package mockd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kart-io/logger"
	"github.com/spf13/pflag"

	"github.com/tijarah-io/tijarah/pkg/app"
	logopts "github.com/tijarah-io/tijarah/pkg/options/logger"
)

// Options configures the mock backend command.
type Options struct {
	Addr string           `json:"addr" mapstructure:"addr"`
	Log  *logopts.Options `json:"log" mapstructure:"log"`
}

// NewOptions returns defaults.
func NewOptions() *Options {
	return &Options{
		Addr: ":8080",
		Log:  logopts.NewOptions(),
	}
}

// AddFlags adds the mockd flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Addr, "addr", o.Addr, "Listen address")
	o.Log.AddFlags(fs)
}

// Complete fills defaults.
func (o *Options) Complete() error { return nil }

// Validate checks the options.
func (o *Options) Validate() error {
	if o.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	return o.Log.Validate()
}

// NewApp creates the mockd application.
func NewApp() *app.App {
	opts := NewOptions()
	return app.New(
		app.WithName("tijarah-mockd"),
		app.WithShortDescription("In-memory mock of the Tijarah backend"),
		app.WithOptions(opts),
		app.WithRunFunc(func(_ []string) error {
			return Run(opts)
		}),
	)
}

// Run serves the mock backend until the process exits.
func Run(opts *Options) error {
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           New(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Infow("mock backend listening",
		"addr", opts.Addr,
		"email", DefaultAccount.Email,
		"password", DefaultAccount.Password,
	)
	return srv.ListenAndServe()
}
