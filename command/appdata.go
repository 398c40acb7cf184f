package command

import (
	"context"
	"sort"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-social/pkg/types"
)

// AppDataCommandConfig wires dependencies for application data commands.
type AppDataCommandConfig struct {
	Resolver   personResolver
	Repository types.AppDataRepository
	Hooks      types.Hooks
	Clock      types.Clock
	Logger     types.Logger
}

// AppDataUpdateInput upserts key/value pairs for one person.
type AppDataUpdateInput struct {
	User   types.UserRef
	AppID  string
	Values map[string]string
	Token  types.SecurityToken
}

// Type implements gocommand.Message.
func (AppDataUpdateInput) Type() string {
	return "command.appdata.update"
}

// Validate implements gocommand.Message.
func (input AppDataUpdateInput) Validate() error {
	if input.User.IsZero() {
		return ErrUserRefRequired
	}
	if len(input.Values) == 0 {
		return ErrAppDataValuesRequired
	}
	return nil
}

// AppDataUpdateCommand writes application data for an existing person.
type AppDataUpdateCommand struct {
	resolver personResolver
	repo     types.AppDataRepository
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
}

// NewAppDataUpdateCommand constructs the update handler.
func NewAppDataUpdateCommand(cfg AppDataCommandConfig) *AppDataUpdateCommand {
	return &AppDataUpdateCommand{
		resolver: cfg.Resolver,
		repo:     cfg.Repository,
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[AppDataUpdateInput] = (*AppDataUpdateCommand)(nil)

// Execute upserts the values. References that do not name a stored person
// fail with types.ErrPersonNotFound so no orphan entries are created.
func (c *AppDataUpdateCommand) Execute(ctx context.Context, input AppDataUpdateInput) error {
	if c.repo == nil {
		return types.ErrMissingStore
	}
	if c.resolver == nil {
		return types.ErrMissingResolver
	}
	if err := input.Validate(); err != nil {
		return err
	}
	person, err := c.resolver.Self(ctx, input.User, input.Token)
	if err != nil {
		return err
	}
	if person == nil {
		return types.ErrPersonNotFound
	}
	values := make(map[string]string, len(input.Values))
	for k, v := range input.Values {
		values[k] = v
	}
	if err := c.repo.UpdateAppData(ctx, person.ID, values); err != nil {
		c.logger.Error("app data update failed", err, "person", person.ID)
		return err
	}
	emitAppDataHook(ctx, c.hooks, types.AppDataEvent{
		PersonID:   person.ID,
		AppID:      appID(input.AppID, input.Token),
		Action:     "update",
		Keys:       sortedKeys(values),
		OccurredAt: now(c.clock),
	})
	return nil
}

// AppDataDeleteInput removes keys from one person's application data.
type AppDataDeleteInput struct {
	User  types.UserRef
	AppID string
	Keys  []string
	Token types.SecurityToken
}

// Type implements gocommand.Message.
func (AppDataDeleteInput) Type() string {
	return "command.appdata.delete"
}

// Validate implements gocommand.Message.
func (input AppDataDeleteInput) Validate() error {
	if input.User.IsZero() {
		return ErrUserRefRequired
	}
	for _, key := range input.Keys {
		if strings.TrimSpace(key) != "" {
			return nil
		}
	}
	return ErrAppDataKeysRequired
}

// AppDataDeleteCommand removes application data keys for an existing person.
type AppDataDeleteCommand struct {
	resolver personResolver
	repo     types.AppDataRepository
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
}

// NewAppDataDeleteCommand constructs the delete handler.
func NewAppDataDeleteCommand(cfg AppDataCommandConfig) *AppDataDeleteCommand {
	return &AppDataDeleteCommand{
		resolver: cfg.Resolver,
		repo:     cfg.Repository,
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[AppDataDeleteInput] = (*AppDataDeleteCommand)(nil)

// Execute removes the keys. Keys that are not present are ignored, so
// repeating a delete is harmless.
func (c *AppDataDeleteCommand) Execute(ctx context.Context, input AppDataDeleteInput) error {
	if c.repo == nil {
		return types.ErrMissingStore
	}
	if c.resolver == nil {
		return types.ErrMissingResolver
	}
	if err := input.Validate(); err != nil {
		return err
	}
	person, err := c.resolver.Self(ctx, input.User, input.Token)
	if err != nil {
		return err
	}
	if person == nil {
		return types.ErrPersonNotFound
	}
	if err := c.repo.DeleteAppData(ctx, person.ID, input.Keys); err != nil {
		c.logger.Error("app data delete failed", err, "person", person.ID)
		return err
	}
	emitAppDataHook(ctx, c.hooks, types.AppDataEvent{
		PersonID:   person.ID,
		AppID:      appID(input.AppID, input.Token),
		Action:     "delete",
		Keys:       append([]string(nil), input.Keys...),
		OccurredAt: now(c.clock),
	})
	return nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
