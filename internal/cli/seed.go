package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-social/pkg/result"
)

// SeedSummary reports what the seed command wrote.
type SeedSummary struct {
	People     int `json:"people"`
	Friends    int `json:"friendLists"`
	AppData    int `json:"appDataEntries"`
	Activities int `json:"activities"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate the database and write the fixtures into it",
		Long: `Migrate the database named by --dsn and write the fixtures (--fixtures,
or the sample community) into it. Existing friend lists, application data
and activities are replaced; people are upserted.

Example:
  socialctl seed --dsn sqlite://social.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.DSN == "" {
				return usageError("seed requires --dsn")
			}
			ctx := cmd.Context()
			rt, err := newRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.seedFromFixtures(ctx); err != nil {
				return err
			}
			if err := rt.connect(ctx); err != nil {
				return err
			}
			if err := rt.persist(ctx); err != nil {
				return err
			}

			ds := rt.mem.Snapshot(ctx)
			summary := SeedSummary{
				People:     len(ds.People),
				Friends:    len(ds.Friends),
				Activities: len(ds.Activities),
			}
			for _, values := range ds.AppData {
				summary.AppData += len(values)
			}
			rt.logger.Info("seed complete", "people", summary.People, "activities", summary.Activities)
			return writeResult(cmd, result.Of(summary))
		},
	}
}
