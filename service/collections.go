package service

import (
	"context"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-social/command"
	"github.com/goliatone/go-social/pkg/metrics"
	"github.com/goliatone/go-social/pkg/result"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/query"
)

const (
	opGetPeople        = "people.get"
	opGetPerson        = "person.get"
	opGetPersonData    = "appdata.get"
	opUpdatePersonData = "appdata.update"
	opDeletePersonData = "appdata.delete"
	opCreateActivity   = "activity.create"
	opGetActivities    = "activities.get"
	opGetActivitiesIDs = "activities.get_by_id"
	opGetActivity      = "activity.get"
	opDeleteActivities = "activities.delete"
)

type instrumentation struct {
	logger  types.Logger
	metrics *metrics.Metrics
}

// finish records the outcome of an operation and converts the error.
func (i instrumentation) finish(operation string, start time.Time, err error) error {
	i.metrics.Observe(operation, err, time.Since(start))
	if err == nil {
		return nil
	}
	mapped := mapError(operation, err)
	i.logger.Debug("collection operation failed", "operation", operation, "error", err)
	return mapped
}

// PersonService serves person collections.
type PersonService struct {
	instrumentation
	people gocommand.Querier[query.PeopleQueryInput, types.PersonPage]
	person gocommand.Querier[query.PersonQueryInput, types.Person]
}

func newPersonService(q Queries, logger types.Logger, m *metrics.Metrics) *PersonService {
	return &PersonService{
		instrumentation: instrumentation{logger: logger, metrics: m},
		people:          q.People,
		person:          q.Person,
	}
}

// GetPeople returns a window over the people related to the references. The
// page carries the offset, total size and limit of the window.
func (s *PersonService) GetPeople(ctx context.Context, input query.PeopleQueryInput) result.Result[types.PersonPage] {
	start := time.Now()
	page, err := s.people.Query(ctx, input)
	if err == nil {
		s.metrics.ObserveResolved(page.Total)
	}
	return result.From(page, s.finish(opGetPeople, start, err))
}

// GetPerson returns a single person.
func (s *PersonService) GetPerson(ctx context.Context, input query.PersonQueryInput) result.Result[types.Person] {
	start := time.Now()
	person, err := s.person.Query(ctx, input)
	return result.From(person, s.finish(opGetPerson, start, err))
}

// AppDataService serves per-person application data.
type AppDataService struct {
	instrumentation
	data   gocommand.Querier[query.PersonDataQueryInput, types.DataCollection]
	update gocommand.Commander[command.AppDataUpdateInput]
	remove gocommand.Commander[command.AppDataDeleteInput]
}

func newAppDataService(q Queries, c Commands, logger types.Logger, m *metrics.Metrics) *AppDataService {
	return &AppDataService{
		instrumentation: instrumentation{logger: logger, metrics: m},
		data:            q.PersonData,
		update:          c.AppDataUpdate,
		remove:          c.AppDataDelete,
	}
}

// GetPersonData returns application data keyed by person id.
func (s *AppDataService) GetPersonData(ctx context.Context, input query.PersonDataQueryInput) result.Result[types.DataCollection] {
	start := time.Now()
	data, err := s.data.Query(ctx, input)
	return result.From(data, s.finish(opGetPersonData, start, err))
}

// UpdatePersonData upserts application data for one person.
func (s *AppDataService) UpdatePersonData(ctx context.Context, input command.AppDataUpdateInput) result.Result[result.Void] {
	start := time.Now()
	err := s.update.Execute(ctx, input)
	return result.From(result.Void{}, s.finish(opUpdatePersonData, start, err))
}

// DeletePersonData removes application data keys for one person.
func (s *AppDataService) DeletePersonData(ctx context.Context, input command.AppDataDeleteInput) result.Result[result.Void] {
	start := time.Now()
	err := s.remove.Execute(ctx, input)
	return result.From(result.Void{}, s.finish(opDeletePersonData, start, err))
}

// ActivityService serves activity collections.
type ActivityService struct {
	instrumentation
	create    gocommand.Commander[command.ActivityCreateInput]
	remove    gocommand.Commander[command.ActivityDeleteInput]
	feed      gocommand.Querier[query.ActivityFeedQueryInput, []types.Activity]
	selection gocommand.Querier[query.ActivitySelectionQueryInput, []types.Activity]
	single    gocommand.Querier[query.ActivityQueryInput, types.Activity]
}

func newActivityService(q Queries, c Commands, logger types.Logger, m *metrics.Metrics) *ActivityService {
	return &ActivityService{
		instrumentation: instrumentation{logger: logger, metrics: m},
		create:          c.ActivityCreate,
		remove:          c.ActivityDelete,
		feed:            q.ActivityFeed,
		selection:       q.ActivitySelection,
		single:          q.Activity,
	}
}

// CreateActivity stores an activity and returns the stored copy.
func (s *ActivityService) CreateActivity(ctx context.Context, input command.ActivityCreateInput) result.Result[types.Activity] {
	start := time.Now()
	var created types.Activity
	input.Result = &created
	err := s.create.Execute(ctx, input)
	if err == nil {
		s.logger.Info("activity created", "id", created.ID, "person", created.UserID, "app", created.AppID)
	}
	return result.From(created, s.finish(opCreateActivity, start, err))
}

// GetActivities returns the activities of the people related to the
// references.
func (s *ActivityService) GetActivities(ctx context.Context, input query.ActivityFeedQueryInput) result.Result[[]types.Activity] {
	start := time.Now()
	activities, err := s.feed.Query(ctx, input)
	return result.From(activities, s.finish(opGetActivities, start, err))
}

// GetActivitiesByID returns the listed activities of one person.
func (s *ActivityService) GetActivitiesByID(ctx context.Context, input query.ActivitySelectionQueryInput) result.Result[[]types.Activity] {
	start := time.Now()
	activities, err := s.selection.Query(ctx, input)
	return result.From(activities, s.finish(opGetActivitiesIDs, start, err))
}

// GetActivity returns a single activity owned by the referenced person.
func (s *ActivityService) GetActivity(ctx context.Context, input query.ActivityQueryInput) result.Result[types.Activity] {
	start := time.Now()
	activity, err := s.single.Query(ctx, input)
	return result.From(activity, s.finish(opGetActivity, start, err))
}

// DeleteActivities removes activities owned by the referenced person and
// reports how many were removed.
func (s *ActivityService) DeleteActivities(ctx context.Context, input command.ActivityDeleteInput) result.Result[int] {
	start := time.Now()
	removed := 0
	input.Removed = &removed
	err := s.remove.Execute(ctx, input)
	return result.From(removed, s.finish(opDeleteActivities, start, err))
}
