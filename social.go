// Package social is the entry point of the social graph data layer. It
// re-exports the service wiring so consumers can call social.New without
// importing the internal packages.
package social

import "github.com/goliatone/go-social/service"

type (
	Service  = service.Service
	Config   = service.Config
	Commands = service.Commands
	Queries  = service.Queries
)

// New constructs the social runtime using the provided configuration.
func New(cfg Config) *Service {
	return service.New(cfg)
}
