package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/query"
)

// PeopleOptions holds flags for the people command.
type PeopleOptions struct {
	*RootOptions
	Group  string
	Offset int
	Limit  int
}

// NewPeopleCommand creates the people command.
func NewPeopleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PeopleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "people <user-ref>...",
		Short: "List the people related to one or more users",
		Long: `List the people related to one or more users, paged by offset and limit.

User references are person ids or @viewer, @owner, @me. Groups are @self
(the default) or @friends; any other group id resolves to friends.

Example:
  socialctl people john.doe --group @friends --offset 1 --limit 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := parseUserRefs(args)
			if err != nil {
				return err
			}
			rt, err := openRuntime(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.svc.People().GetPeople(cmd.Context(), query.PeopleQueryInput{
				Users:   users,
				Group:   types.ParseGroupRef(opts.Group),
				Options: types.CollectionOptions{Offset: opts.Offset, Limit: opts.Limit},
				Token:   rt.token(),
			})
			return writeResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&opts.Group, "group", "@self", "group to resolve (@self|@friends|<group-id>)")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "index of the first person returned")
	cmd.Flags().IntVar(&opts.Limit, "limit", types.DefaultPageSize, "maximum number of people returned")

	return cmd
}

// NewPersonCommand creates the person command.
func NewPersonCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "person <user-ref>",
		Short: "Show one person",
		Args:  cobra.ExactArgs(1),
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

			res := rt.svc.People().GetPerson(cmd.Context(), query.PersonQueryInput{
				User:  user,
				Token: rt.token(),
			})
			return writeResult(cmd, res)
		},
	}
}

func parseUserRef(value string) (types.UserRef, error) {
	ref, err := types.ParseUserRef(value)
	if err != nil {
		return types.UserRef{}, commandError("invalid user reference", err)
	}
	return ref, nil
}

func parseUserRefs(values []string) ([]types.UserRef, error) {
	refs := make([]types.UserRef, 0, len(values))
	for _, value := range values {
		ref, err := parseUserRef(value)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
