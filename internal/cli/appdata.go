package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-social/command"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/query"
)

// NewAppDataCommand creates the appdata command group.
func NewAppDataCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appdata",
		Short: "Read and write per-person application data",
	}
	cmd.AddCommand(newAppDataGetCommand(rootOpts))
	cmd.AddCommand(newAppDataSetCommand(rootOpts))
	cmd.AddCommand(newAppDataDeleteCommand(rootOpts))
	return cmd
}

func newAppDataGetCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		group  string
		fields []string
	)
	cmd := &cobra.Command{
		Use:   "get <user-ref>...",
		Short: "Show application data keyed by person id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := parseUserRefs(args)
			if err != nil {
				return err
			}
			rt, err := openRuntime(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.svc.AppData().GetPersonData(cmd.Context(), query.PersonDataQueryInput{
				Users:  users,
				Group:  types.ParseGroupRef(group),
				AppID:  rootOpts.App,
				Fields: fields,
				Token:  rt.token(),
			})
			return writeResult(cmd, res)
		},
	}
	cmd.Flags().StringVar(&group, "group", "@self", "group to resolve (@self|@friends|<group-id>)")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "keys to keep (all keys when empty)")
	return cmd
}

func newAppDataSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <user-ref> <key=value>...",
		Short: "Upsert application data for one person",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := parseUserRef(args[0])
			if err != nil {
				return err
			}
			values, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			rt, err := openRuntime(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.svc.AppData().UpdatePersonData(cmd.Context(), command.AppDataUpdateInput{
				User:   user,
				AppID:  rootOpts.App,
				Values: values,
				Token:  rt.token(),
			})
			if res.OK() {
				if err := rt.persist(cmd.Context()); err != nil {
					return err
				}
			}
			return writeResult(cmd, res)
		},
	}
}

func newAppDataDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-ref> <key>...",
		Short: "Remove application data keys for one person",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := parseUserRef(args[0])
			if err != nil {
				return err
			}
			rt, err := openRuntime(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.svc.AppData().DeletePersonData(cmd.Context(), command.AppDataDeleteInput{
				User:  user,
				AppID: rootOpts.App,
				Keys:  args[1:],
				Token: rt.token(),
			})
			if res.OK() {
				if err := rt.persist(cmd.Context()); err != nil {
					return err
				}
			}
			return writeResult(cmd, res)
		},
	}
}

func parseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, usageError("expected key=value, got %q", arg)
		}
		values[key] = value
	}
	return values, nil
}
