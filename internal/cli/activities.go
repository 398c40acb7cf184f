package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-social/command"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/query"
)

// NewActivitiesCommand creates the activities command group.
func NewActivitiesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List, read, post and remove activities",
	}
	cmd.AddCommand(newActivitiesListCommand(rootOpts))
	cmd.AddCommand(newActivitiesGetCommand(rootOpts))
	cmd.AddCommand(newActivitiesCreateCommand(rootOpts))
	cmd.AddCommand(newActivitiesDeleteCommand(rootOpts))
	return cmd
}

func newActivitiesListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		group string
		appID string
	)
	cmd := &cobra.Command{
		Use:   "list <user-ref>...",
		Short: "List the activities of the related people",
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

			res := rt.svc.Activities().GetActivities(cmd.Context(), query.ActivityFeedQueryInput{
				Users: users,
				Group: types.ParseGroupRef(group),
				AppID: appID,
				Token: rt.token(),
			})
			return writeResult(cmd, res)
		},
	}
	cmd.Flags().StringVar(&group, "group", "@self", "group to resolve (@self|@friends|<group-id>)")
	cmd.Flags().StringVar(&appID, "app-id", "", "only activities of this application")
	return cmd
}

func newActivitiesGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-ref> <activity-id>...",
		Short: "Show activities of one person by id",
		Long: `Show activities of one person by id. A single id prints the activity
itself; several ids print the matching activities in posting order.`,
		Args: cobra.MinimumNArgs(2),
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

			ids := args[1:]
			if len(ids) == 1 {
				return writeResult(cmd, rt.svc.Activities().GetActivity(cmd.Context(), query.ActivityQueryInput{
					User:       user,
					ActivityID: ids[0],
					Token:      rt.token(),
				}))
			}
			return writeResult(cmd, rt.svc.Activities().GetActivitiesByID(cmd.Context(), query.ActivitySelectionQueryInput{
				User:        user,
				ActivityIDs: ids,
				Token:       rt.token(),
			}))
		},
	}
}

func newActivitiesCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var activity types.Activity
	cmd := &cobra.Command{
		Use:   "create <user-ref>",
		Short: "Post an activity on behalf of a person",
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

			res := rt.svc.Activities().CreateActivity(cmd.Context(), command.ActivityCreateInput{
				User:     user,
				AppID:    rootOpts.App,
				Activity: activity,
				Token:    rt.token(),
			})
			if res.OK() {
				if err := rt.persist(cmd.Context()); err != nil {
					return err
				}
			}
			return writeResult(cmd, res)
		},
	}
	cmd.Flags().StringVar(&activity.Title, "title", "", "activity title")
	cmd.Flags().StringVar(&activity.Body, "body", "", "activity body")
	cmd.Flags().StringVar(&activity.URL, "url", "", "activity link")
	cmd.Flags().StringVar(&activity.AppID, "app-id", "", "application id (defaults to --app)")
	return cmd
}

func newActivitiesDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-ref> <activity-id>...",
		Short: "Remove activities owned by one person",
		Long: `Remove activities owned by one person. Requires the activities.delete
feature (--feature activities.delete or SOCIAL_FEATURES).`,
		Args: cobra.MinimumNArgs(2),
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

			res := rt.svc.Activities().DeleteActivities(cmd.Context(), command.ActivityDeleteInput{
				User:        user,
				AppID:       rootOpts.App,
				ActivityIDs: args[1:],
				Token:       rt.token(),
			})
			if res.OK() && res.Value() > 0 {
				if err := rt.persist(cmd.Context()); err != nil {
					return err
				}
			}
			return writeResult(cmd, res)
		},
	}
}
