package app

import "github.com/spf13/pflag"

// CliOptions is the contract an options struct fulfills to plug into
// App: declare flags, fill defaults, then reject bad combinations.
type CliOptions interface {
	// AddFlags adds flags to the flagset.
	AddFlags(fs *pflag.FlagSet)
	// Complete fills in defaults derived from other options.
	Complete() error
	// Validate validates the completed options.
	Validate() error
}
