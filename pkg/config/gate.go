package config

import (
	"strings"

	"github.com/goliatone/go-featuregate/adapters/configadapter"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-featuregate/resolver"
	"github.com/goliatone/go-featuregate/store"
)

var _ featuregate.MutableFeatureGate = (*resolver.Gate)(nil)

// NewFeatureGate returns a resolver whose defaults enable exactly the listed
// keys. Runtime overrides are kept in memory and honor the scope chain passed
// to Enabled, so a user scoped override wins over the system default.
func NewFeatureGate(keys ...string) *resolver.Gate {
	defaults := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			defaults[key] = true
		}
	}
	return resolver.New(
		resolver.WithDefaults(configadapter.NewDefaultsFromBools(defaults)),
		resolver.WithOverrideStore(store.NewMemoryStore()),
	)
}

// FeatureGate builds a gate from the configured features.
func (c *Config) FeatureGate() *resolver.Gate {
	return NewFeatureGate(c.Features...)
}
