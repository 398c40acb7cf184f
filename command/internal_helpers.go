package command

import (
	"context"
	"time"

	"github.com/goliatone/go-social/pkg/types"
)

// personResolver is the subset of relationship.Resolver the commands depend
// on.
type personResolver interface {
	Resolve(ctx context.Context, ref types.UserRef, token types.SecurityToken) (string, error)
	Self(ctx context.Context, ref types.UserRef, token types.SecurityToken) (*types.Person, error)
}

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeHooks(hooks types.Hooks) types.Hooks {
	return hooks
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func emitAppDataHook(ctx context.Context, hooks types.Hooks, event types.AppDataEvent) {
	if hooks.AfterAppDataChange == nil {
		return
	}
	hooks.AfterAppDataChange(ctx, event)
}

func emitActivityHook(ctx context.Context, hooks types.Hooks, event types.ActivityEvent) {
	if hooks.AfterActivityChange == nil {
		return
	}
	hooks.AfterActivityChange(ctx, event)
}

func appID(explicit string, token types.SecurityToken) string {
	if explicit != "" || token == nil {
		return explicit
	}
	return token.AppID()
}
