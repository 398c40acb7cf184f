// Package cli implements the socialctl command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-social/pkg/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Env      string
	Fixtures string
	DSN      string
	Viewer   string
	Owner    string
	App      string
	Features []string
}

// NewRootCommand creates the root command. Flag defaults come from cfg so
// environment settings apply unless a flag overrides them.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	if cfg == nil {
		cfg = &config.Config{Env: "development"}
	}
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "socialctl",
		Short: "Query and update a social graph community",
		Long: `socialctl serves people, application data and activities from a
YAML fixtures file (the built-in sample community by default) or a SQL
database, and prints the result envelope as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved := config.Config{
				Env:          opts.Env,
				FixturesPath: opts.Fixtures,
				DSN:          opts.DSN,
			}
			if err := resolved.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Env, "env", cfg.Env, "environment (production|development|test)")
	flags.StringVar(&opts.Fixtures, "fixtures", cfg.FixturesPath, "YAML fixtures file (defaults to the sample community)")
	flags.StringVar(&opts.DSN, "dsn", cfg.DSN, "database DSN (sqlite://path or postgres://...)")
	flags.StringVar(&opts.Viewer, "viewer", cfg.Viewer, "viewer id of the security token")
	flags.StringVar(&opts.Owner, "owner", cfg.Owner, "owner id of the security token")
	flags.StringVar(&opts.App, "app", cfg.App, "application id of the security token")
	flags.StringSliceVar(&opts.Features, "feature", cfg.Features, "enabled feature keys")

	cmd.AddCommand(NewPeopleCommand(opts))
	cmd.AddCommand(NewPersonCommand(opts))
	cmd.AddCommand(NewAppDataCommand(opts))
	cmd.AddCommand(NewActivitiesCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

func commandError(message string, err error) error {
	return WrapExitError(ExitCommandError, message, err)
}

func usageError(format string, args ...any) error {
	return NewExitError(ExitCommandError, fmt.Sprintf(format, args...))
}
