package command

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
)

const (
	// FeatureActivitiesDelete toggles activity removal.
	FeatureActivitiesDelete = "activities.delete"
)

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, userID string) (bool, error) {
	if gate == nil {
		return true, nil
	}
	chain := featureScopeChain(userID)
	if chain == nil {
		return gate.Enabled(ctx, key)
	}
	return gate.Enabled(ctx, key, featuregate.WithScopeChain(chain))
}

// featureScopeChain resolves user overrides before the system default.
func featureScopeChain(userID string) featuregate.ScopeChain {
	if userID == "" {
		return nil
	}
	return featuregate.ScopeChain{
		{Kind: featuregate.ScopeUser, ID: userID},
		{Kind: featuregate.ScopeSystem},
	}
}
