package service

import (
	"context"
	"fmt"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-social/command"
	"github.com/goliatone/go-social/pkg/metrics"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/query"
	"github.com/goliatone/go-social/relationship"
	"github.com/goliatone/go-social/scope"
)

// Service is the entry point for go-social. It wires the store, the
// relationship resolver and the command/query facades supplied by the host
// application.
type Service struct {
	cfg        Config
	resolver   *relationship.Resolver
	commands   Commands
	queries    Queries
	people     *PersonService
	appData    *AppDataService
	activities *ActivityService
}

// Commands exposes the service command handlers.
type Commands struct {
	AppDataUpdate  *command.AppDataUpdateCommand
	AppDataDelete  *command.AppDataDeleteCommand
	ActivityCreate *command.ActivityCreateCommand
	ActivityDelete *command.ActivityDeleteCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	People            *query.PeopleQuery
	Person            *query.PersonQuery
	PersonData        *query.PersonDataQuery
	ActivityFeed      *query.ActivityFeedQuery
	ActivitySelection *query.ActivitySelectionQuery
	Activity          *query.ActivityQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (in-memory store, SQL-loaded store, custom identity resolution,
// hooks, etc.). Store fills any repository left nil.
type Config struct {
	Store              types.Store
	PersonRepository   types.PersonRepository
	AppDataRepository  types.AppDataRepository
	ActivityRepository types.ActivityRepository
	IdentityResolver   types.IdentityResolver
	FeatureGate        featuregate.FeatureGate
	Hooks              types.Hooks
	Clock              types.Clock
	Logger             types.Logger
	Metrics            *metrics.Metrics
}

// relations is the resolver surface handed to commands and queries. Keeping
// it an interface lets a missing resolver travel as a true nil.
type relations interface {
	Related(ctx context.Context, input relationship.RelatedInput) ([]types.Person, error)
	Resolve(ctx context.Context, ref types.UserRef, token types.SecurityToken) (string, error)
	Self(ctx context.Context, ref types.UserRef, token types.SecurityToken) (*types.Person, error)
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	s := &Service{cfg: norm}
	if norm.PersonRepository != nil {
		resolver, err := relationship.NewResolver(relationship.ResolverConfig{
			People:   norm.PersonRepository,
			Identity: norm.IdentityResolver,
			Logger:   norm.Logger,
		})
		if err != nil {
			norm.Logger.Error("go-social: relationship resolver initialization failed", err)
		} else {
			s.resolver = resolver
		}
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	s.people = newPersonService(s.queries, norm.Logger, norm.Metrics)
	s.appData = newAppDataService(s.queries, s.commands, norm.Logger, norm.Metrics)
	s.activities = newActivityService(s.queries, s.commands, norm.Logger, norm.Metrics)
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Store != nil {
		if cfg.PersonRepository == nil {
			cfg.PersonRepository = cfg.Store
		}
		if cfg.AppDataRepository == nil {
			cfg.AppDataRepository = cfg.Store
		}
		if cfg.ActivityRepository == nil {
			cfg.ActivityRepository = cfg.Store
		}
	}
	if cfg.IdentityResolver == nil {
		cfg.IdentityResolver = scope.TokenResolver()
	}
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	return cfg
}

func (s *Service) relations() relations {
	if s.resolver == nil {
		return nil
	}
	return s.resolver
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// People returns the person collection service.
func (s *Service) People() *PersonService {
	return s.people
}

// AppData returns the application data collection service.
func (s *Service) AppData() *AppDataService {
	return s.appData
}

// Activities returns the activity collection service.
func (s *Service) Activities() *ActivityService {
	return s.activities
}

// Resolver exposes the relationship resolver so transports can reuse it.
func (s *Service) Resolver() *relationship.Resolver {
	if s == nil {
		return nil
	}
	return s.resolver
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.resolver != nil &&
		s.cfg.AppDataRepository != nil &&
		s.cfg.ActivityRepository != nil
}

// HealthCheck surfaces missing dependencies and probes the person
// repository.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s == nil {
		return types.ErrServiceNotReady
	}
	if s.cfg.PersonRepository == nil || s.cfg.AppDataRepository == nil || s.cfg.ActivityRepository == nil {
		return types.ErrMissingStore
	}
	if s.resolver == nil {
		return types.ErrMissingResolver
	}
	if _, err := s.cfg.PersonRepository.FindPerson(ctx, ""); err != nil {
		return fmt.Errorf("go-social: person repository probe failed: %w", err)
	}
	return nil
}

func (s *Service) buildCommands() Commands {
	appData := command.AppDataCommandConfig{
		Resolver:   s.relations(),
		Repository: s.cfg.AppDataRepository,
		Hooks:      s.cfg.Hooks,
		Clock:      s.cfg.Clock,
		Logger:     s.cfg.Logger,
	}
	activity := command.ActivityCommandConfig{
		Resolver:    s.relations(),
		Repository:  s.cfg.ActivityRepository,
		Hooks:       s.cfg.Hooks,
		Clock:       s.cfg.Clock,
		Logger:      s.cfg.Logger,
		FeatureGate: s.cfg.FeatureGate,
	}
	return Commands{
		AppDataUpdate:  command.NewAppDataUpdateCommand(appData),
		AppDataDelete:  command.NewAppDataDeleteCommand(appData),
		ActivityCreate: command.NewActivityCreateCommand(activity),
		ActivityDelete: command.NewActivityDeleteCommand(activity),
	}
}

func (s *Service) buildQueries() Queries {
	rel := s.relations()
	return Queries{
		People:            query.NewPeopleQuery(rel, s.cfg.Logger),
		Person:            query.NewPersonQuery(rel),
		PersonData:        query.NewPersonDataQuery(rel, s.cfg.AppDataRepository),
		ActivityFeed:      query.NewActivityFeedQuery(rel, s.cfg.ActivityRepository),
		ActivitySelection: query.NewActivitySelectionQuery(rel, s.cfg.ActivityRepository),
		Activity:          query.NewActivityQuery(rel, s.cfg.ActivityRepository),
	}
}
