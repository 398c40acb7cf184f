package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-social/pkg/types"
)

// ActivityCommandConfig wires dependencies for activity commands.
type ActivityCommandConfig struct {
	Resolver    personResolver
	Repository  types.ActivityRepository
	Hooks       types.Hooks
	Clock       types.Clock
	Logger      types.Logger
	FeatureGate featuregate.FeatureGate
}

// ActivityCreateInput posts an activity on behalf of a person. Blank owner
// and app fields on the activity are filled from the reference and AppID.
type ActivityCreateInput struct {
	User     types.UserRef
	AppID    string
	Activity types.Activity
	Token    types.SecurityToken
	Result   *types.Activity
}

// Type implements gocommand.Message.
func (ActivityCreateInput) Type() string {
	return "command.activity.create"
}

// Validate implements gocommand.Message.
func (input ActivityCreateInput) Validate() error {
	if input.User.IsZero() && input.Activity.UserID == "" {
		return ErrUserRefRequired
	}
	return nil
}

// ActivityCreateCommand stores new activities.
type ActivityCreateCommand struct {
	resolver personResolver
	repo     types.ActivityRepository
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
}

// NewActivityCreateCommand constructs the create handler.
func NewActivityCreateCommand(cfg ActivityCommandConfig) *ActivityCreateCommand {
	return &ActivityCreateCommand{
		resolver: cfg.Resolver,
		repo:     cfg.Repository,
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[ActivityCreateInput] = (*ActivityCreateCommand)(nil)

// Execute stores the activity. The owner is not required to exist.
func (c *ActivityCreateCommand) Execute(ctx context.Context, input ActivityCreateInput) error {
	if c.repo == nil {
		return types.ErrMissingStore
	}
	if c.resolver == nil {
		return types.ErrMissingResolver
	}
	if err := input.Validate(); err != nil {
		return err
	}
	activity := input.Activity
	if activity.UserID == "" {
		userID, err := c.resolver.Resolve(ctx, input.User, input.Token)
		if err != nil {
			return err
		}
		activity.UserID = userID
	}
	if activity.AppID == "" {
		activity.AppID = appID(input.AppID, input.Token)
	}
	if activity.PostedAt.IsZero() {
		activity.PostedAt = now(c.clock)
	}
	stored, err := c.repo.AddActivity(ctx, activity)
	if err != nil {
		c.logger.Error("activity create failed", err, "person", activity.UserID)
		return err
	}
	if input.Result != nil {
		*input.Result = stored
	}
	emitActivityHook(ctx, c.hooks, types.ActivityEvent{
		PersonID:    stored.UserID,
		AppID:       stored.AppID,
		Action:      "create",
		ActivityIDs: []string{stored.ID},
		OccurredAt:  stored.PostedAt,
	})
	return nil
}

// ActivityDeleteInput removes activities owned by one person.
type ActivityDeleteInput struct {
	User        types.UserRef
	AppID       string
	ActivityIDs []string
	Token       types.SecurityToken
	Removed     *int
}

// Type implements gocommand.Message.
func (ActivityDeleteInput) Type() string {
	return "command.activity.delete"
}

// Validate implements gocommand.Message.
func (input ActivityDeleteInput) Validate() error {
	if input.User.IsZero() {
		return ErrUserRefRequired
	}
	if len(input.ActivityIDs) == 0 {
		return ErrActivityIDsRequired
	}
	return nil
}

// ActivityDeleteCommand removes activities when the feature is enabled.
type ActivityDeleteCommand struct {
	resolver personResolver
	repo     types.ActivityRepository
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
	gate     featuregate.FeatureGate
}

// NewActivityDeleteCommand constructs the delete handler.
func NewActivityDeleteCommand(cfg ActivityCommandConfig) *ActivityDeleteCommand {
	return &ActivityDeleteCommand{
		resolver: cfg.Resolver,
		repo:     cfg.Repository,
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		gate:     cfg.FeatureGate,
	}
}

var _ gocommand.Commander[ActivityDeleteInput] = (*ActivityDeleteCommand)(nil)

// Execute removes the listed activities owned by the resolved person. Ids
// belonging to someone else or unknown ids are skipped.
func (c *ActivityDeleteCommand) Execute(ctx context.Context, input ActivityDeleteInput) error {
	if c.repo == nil {
		return types.ErrMissingStore
	}
	if c.resolver == nil {
		return types.ErrMissingResolver
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.resolver.Resolve(ctx, input.User, input.Token)
	if err != nil {
		return err
	}
	enabled, err := featureEnabled(ctx, c.gate, FeatureActivitiesDelete, userID)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrActivityDeleteDisabled
	}
	removed := 0
	if userID != "" {
		removed, err = c.repo.DeleteActivities(ctx, userID, input.ActivityIDs)
		if err != nil {
			c.logger.Error("activity delete failed", err, "person", userID)
			return err
		}
	}
	if input.Removed != nil {
		*input.Removed = removed
	}
	if removed > 0 {
		emitActivityHook(ctx, c.hooks, types.ActivityEvent{
			PersonID:    userID,
			AppID:       appID(input.AppID, input.Token),
			Action:      "delete",
			ActivityIDs: append([]string(nil), input.ActivityIDs...),
			OccurredAt:  now(c.clock),
		})
	}
	return nil
}
