// Package app bootstraps the CLI binaries: Cobra for commands, Viper
// for configuration layering (file, environment, flags) and Pflag for
// the flag surface.
//
// Usage:
//
//	app := app.New(
//	    app.WithName("tijarah"),
//	    app.WithOptions(opts),
//	    app.WithRunFunc(run),
//	)
//	app.Run()
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kart-io/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RunFunc is the application's run function.
type RunFunc func(args []string) error

// App is a CLI application.
type App struct {
	name      string
	shortDesc string
	longDesc  string
	options   CliOptions
	runFunc   RunFunc
	cmd       *cobra.Command
	args      cobra.PositionalArgs
	noVersion bool
	noConfig  bool
	subcmds   []*cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithName sets the application name.
func WithName(name string) Option {
	return func(a *App) { a.name = name }
}

// WithShortDescription sets the short description.
func WithShortDescription(desc string) Option {
	return func(a *App) { a.shortDesc = desc }
}

// WithDescription sets the long description.
func WithDescription(desc string) Option {
	return func(a *App) { a.longDesc = desc }
}

// WithOptions sets the CLI options.
func WithOptions(opts CliOptions) Option {
	return func(a *App) { a.options = opts }
}

// WithRunFunc sets the run function.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.runFunc = run }
}

// WithArgs sets the positional args validation.
func WithArgs(args cobra.PositionalArgs) Option {
	return func(a *App) { a.args = args }
}

// WithNoVersion disables the version flag.
func WithNoVersion() Option {
	return func(a *App) { a.noVersion = true }
}

// WithNoConfig disables config file loading.
func WithNoConfig() Option {
	return func(a *App) { a.noConfig = true }
}

// WithSubCommands attaches subcommands to the root.
func WithSubCommands(cmds ...*cobra.Command) Option {
	return func(a *App) { a.subcmds = append(a.subcmds, cmds...) }
}

// New creates an application.
func New(opts ...Option) *App {
	a := &App{name: filepath.Base(os.Args[0])}
	for _, opt := range opts {
		opt(a)
	}
	a.buildCommand()
	return a
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:          a.name,
		Short:        a.shortDesc,
		Long:         a.longDesc,
		RunE:         a.runCommand,
		Args:         a.args,
		SilenceUsage: true,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true

	if !a.noConfig {
		cmd.PersistentFlags().StringP("config", "c", "", "Path to config file")
	}
	if !a.noVersion {
		version.AddFlags(cmd.PersistentFlags())
	}

	if a.options != nil {
		a.options.AddFlags(cmd.PersistentFlags())
	}
	cmd.AddCommand(a.subcmds...)
	a.cmd = cmd
}

func (a *App) runCommand(cmd *cobra.Command, args []string) error {
	if !a.noVersion {
		version.PrintAndExitIfRequested()
	}
	if err := a.Prepare(cmd); err != nil {
		return err
	}
	if a.runFunc != nil {
		return a.runFunc(args)
	}
	return cmd.Help()
}

// Prepare loads configuration and completes the options. Subcommands
// call it from their own RunE since cobra runs the root's RunE only
// for the bare command.
func (a *App) Prepare(cmd *cobra.Command) error {
	if !a.noConfig {
		if err := a.loadConfig(cmd); err != nil {
			return err
		}
	}
	if a.options != nil {
		if err := a.options.Complete(); err != nil {
			return err
		}
		if err := a.options.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig layers the config file, environment and flags. Changed
// flags win over file and environment values.
func (a *App) loadConfig(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(a.name)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(os.Getenv("HOME"), "."+a.name))
		viper.AddConfigPath("/etc/" + a.name)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	viper.SetEnvPrefix(strings.ToUpper(strings.ReplaceAll(a.name, "-", "_")))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if a.options != nil {
		changed := make(map[string]string)
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changed[f.Name] = f.Value.String()
			}
		})
		if err := viper.Unmarshal(a.options); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		for name, val := range changed {
			if err := cmd.Flags().Set(name, val); err != nil {
				return fmt.Errorf("re-apply flag %s: %w", name, err)
			}
		}
	}
	return nil
}

// Run executes the application.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command returns the root cobra command.
func (a *App) Command() *cobra.Command {
	return a.cmd
}
