package query

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/relationship"
	"github.com/goliatone/go-social/scope"
	"github.com/goliatone/go-social/store"
	"github.com/stretchr/testify/require"
)

func newCommunity(t *testing.T) (*store.Memory, *relationship.Resolver) {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, mem.Seed(context.Background(), store.Dataset{
		People: []types.Person{
			{ID: "john.doe"}, {ID: "jane.doe"}, {ID: "george.doe"}, {ID: "mario.rossi"}, {ID: "maija.m"},
		},
		Friends: map[string][]string{
			"john.doe":   {"jane.doe", "george.doe", "maija.m", "mario.rossi"},
			"jane.doe":   {"john.doe", "mario.rossi"},
			"george.doe": {"john.doe"},
		},
		AppData: map[string]map[string]string{
			"john.doe": {"HIGHSCORE": "7534", "RANG": "8"},
			"maija.m":  {"HIGHSCORE": "10000", "RANG": "1"},
		},
		Activities: []types.Activity{
			{UserID: "john.doe", AppID: "App1", Title: "First Activity"},
			{UserID: "john.doe", AppID: "App1", Title: "Second Activity"},
			{UserID: "john.doe", AppID: "Container", Title: "Joined Group XY"},
			{UserID: "george.doe", AppID: "App1", Title: "Felix' first Activity"},
		},
	}))
	resolver, err := relationship.NewResolver(relationship.ResolverConfig{People: mem})
	require.NoError(t, err)
	return mem, resolver
}

func personIDs(people []types.Person) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}

func activityTitles(activities []types.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.Title)
	}
	return out
}

func TestPeopleQuery_PagesFriendList(t *testing.T) {
	_, resolver := newCommunity(t)
	query := NewPeopleQuery(resolver, nil)

	page, err := query.Query(context.Background(), PeopleQueryInput{
		Users:   []types.UserRef{types.UserID("john.doe")},
		Group:   types.Friends(),
		Options: types.CollectionOptions{Offset: 1, Limit: 2},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"george.doe", "maija.m"}, personIDs(page.People))
	require.Equal(t, 4, page.Total)
	require.Equal(t, 1, page.Offset)
	require.Equal(t, 2, page.Limit)
	require.True(t, page.HasMore)
}

func TestPeopleQuery_RangeBoundaries(t *testing.T) {
	_, resolver := newCommunity(t)
	query := NewPeopleQuery(resolver, nil)
	input := PeopleQueryInput{
		Users: []types.UserRef{types.UserID("john.doe")},
		Group: types.Friends(),
	}

	input.Options = types.CollectionOptions{Offset: 4, Limit: 10}
	page, err := query.Query(context.Background(), input)
	require.NoError(t, err)
	require.Empty(t, page.People)
	require.Equal(t, 4, page.Total)
	require.False(t, page.HasMore)

	input.Options = types.CollectionOptions{Offset: 5, Limit: 10}
	_, err = query.Query(context.Background(), input)
	require.ErrorIs(t, err, types.ErrInvalidRange)

	input.Options = types.CollectionOptions{Offset: -1}
	_, err = query.Query(context.Background(), input)
	require.ErrorIs(t, err, types.ErrInvalidRange)

	input.Options = types.CollectionOptions{Offset: 2, Limit: 100}
	page, err = query.Query(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, page.People, 2)
}

func TestPeopleQuery_HugeLimitReturnsRemainder(t *testing.T) {
	_, resolver := newCommunity(t)
	query := NewPeopleQuery(resolver, nil)

	page, err := query.Query(context.Background(), PeopleQueryInput{
		Users:   []types.UserRef{types.UserID("john.doe")},
		Group:   types.Friends(),
		Options: types.CollectionOptions{Offset: 1, Limit: math.MaxInt},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"george.doe", "maija.m", "mario.rossi"}, personIDs(page.People))
	require.Equal(t, math.MaxInt, page.Limit)
	require.False(t, page.HasMore)
}

func TestPeopleQuery_DefaultLimit(t *testing.T) {
	_, resolver := newCommunity(t)
	query := NewPeopleQuery(resolver, nil)

	page, err := query.Query(context.Background(), PeopleQueryInput{
		Users: []types.UserRef{types.UserID("john.doe")},
		Group: types.Friends(),
	})
	require.NoError(t, err)
	require.Equal(t, types.DefaultPageSize, page.Limit)
	require.Len(t, page.People, 4)
}

func TestPersonQuery(t *testing.T) {
	_, resolver := newCommunity(t)
	query := NewPersonQuery(resolver)
	token := scope.StaticToken{Viewer: "jane.doe"}

	person, err := query.Query(context.Background(), PersonQueryInput{User: types.Viewer(), Token: token})
	require.NoError(t, err)
	require.Equal(t, "jane.doe", person.ID)

	_, err = query.Query(context.Background(), PersonQueryInput{User: types.UserID("nobody")})
	require.ErrorIs(t, err, types.ErrPersonNotFound)

	_, err = query.Query(context.Background(), PersonQueryInput{})
	require.ErrorIs(t, err, types.ErrUserRefRequired)
}

func TestPersonDataQuery_ProjectsWithoutMutating(t *testing.T) {
	mem, resolver := newCommunity(t)
	query := NewPersonDataQuery(resolver, mem)

	data, err := query.Query(context.Background(), PersonDataQueryInput{
		Users:  []types.UserRef{types.UserID("john.doe"), types.UserID("maija.m"), types.UserID("jane.doe")},
		Group:  types.Self(),
		Fields: []string{"HIGHSCORE"},
	})
	require.NoError(t, err)
	require.Equal(t, types.DataCollection{
		"john.doe": {"HIGHSCORE": "7534"},
		"maija.m":  {"HIGHSCORE": "10000"},
		"jane.doe": {},
	}, data)

	stored, err := mem.AppDataOf(context.Background(), "john.doe")
	require.NoError(t, err)
	require.Equal(t, "8", stored["RANG"])
}

func TestActivityFeedQuery_AppFilter(t *testing.T) {
	mem, resolver := newCommunity(t)
	query := NewActivityFeedQuery(resolver, mem)
	ctx := context.Background()

	activities, err := query.Query(ctx, ActivityFeedQueryInput{
		Users: []types.UserRef{types.UserID("john.doe")},
		Group: types.Self(),
		AppID: "App1",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"First Activity", "Second Activity"}, activityTitles(activities))

	activities, err = query.Query(ctx, ActivityFeedQueryInput{
		Users: []types.UserRef{types.UserID("john.doe"), types.UserID("george.doe")},
		Group: types.Self(),
		AppID: "App1",
	})
	require.NoError(t, err)
	require.Len(t, activities, 3)

	activities, err = query.Query(ctx, ActivityFeedQueryInput{
		Users: []types.UserRef{types.UserID("john.doe")},
		Group: types.Self(),
	})
	require.NoError(t, err)
	require.Len(t, activities, 3)
}

func TestActivityFeedQuery_DeduplicatesAcrossPeople(t *testing.T) {
	mem, resolver := newCommunity(t)
	query := NewActivityFeedQuery(resolver, mem)

	activities, err := query.Query(context.Background(), ActivityFeedQueryInput{
		Users: []types.UserRef{types.UserID("jane.doe"), types.UserID("george.doe")},
		Group: types.Friends(),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"First Activity", "Second Activity", "Joined Group XY"}, activityTitles(activities))
}

func TestActivityFeedQuery_BlankAppIDAlwaysPasses(t *testing.T) {
	mem, resolver := newCommunity(t)
	_, err := mem.AddActivity(context.Background(), types.Activity{UserID: "jane.doe", Title: "Unscoped"})
	require.NoError(t, err)
	query := NewActivityFeedQuery(resolver, mem)

	activities, err := query.Query(context.Background(), ActivityFeedQueryInput{
		Users: []types.UserRef{types.UserID("jane.doe")},
		AppID: "App2",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Unscoped"}, activityTitles(activities))
}

func TestActivitySelectionQuery(t *testing.T) {
	mem, resolver := newCommunity(t)
	query := NewActivitySelectionQuery(resolver, mem)

	activities, err := query.Query(context.Background(), ActivitySelectionQueryInput{
		User:        types.UserID("john.doe"),
		ActivityIDs: []string{"3", "1", "4"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"First Activity", "Joined Group XY"}, activityTitles(activities))

	activities, err = query.Query(context.Background(), ActivitySelectionQueryInput{
		User:        types.Viewer(),
		ActivityIDs: []string{"1"},
	})
	require.NoError(t, err)
	require.Empty(t, activities)
}

func TestActivityQuery_EnforcesOwnership(t *testing.T) {
	mem, resolver := newCommunity(t)
	query := NewActivityQuery(resolver, mem)
	ctx := context.Background()

	activity, err := query.Query(ctx, ActivityQueryInput{User: types.UserID("george.doe"), ActivityID: "4"})
	require.NoError(t, err)
	require.Equal(t, "Felix' first Activity", activity.Title)

	_, err = query.Query(ctx, ActivityQueryInput{User: types.UserID("john.doe"), ActivityID: "4"})
	require.ErrorIs(t, err, types.ErrActivityNotFound)

	_, err = query.Query(ctx, ActivityQueryInput{User: types.UserID("john.doe"), ActivityID: "99"})
	require.ErrorIs(t, err, types.ErrActivityNotFound)
}

func TestQueries_PropagateResolverFailures(t *testing.T) {
	boom := errors.New("graph unavailable")
	resolver := &failingResolver{err: boom}
	ctx := context.Background()

	_, err := NewPeopleQuery(resolver, nil).Query(ctx, PeopleQueryInput{Users: []types.UserRef{types.Viewer()}})
	require.ErrorIs(t, err, boom)

	_, err = NewActivityFeedQuery(resolver, store.NewMemory()).Query(ctx, ActivityFeedQueryInput{})
	require.ErrorIs(t, err, boom)

	_, err = NewActivityQuery(resolver, store.NewMemory()).Query(ctx, ActivityQueryInput{User: types.Viewer()})
	require.ErrorIs(t, err, boom)
}

func TestQueries_RequireDependencies(t *testing.T) {
	ctx := context.Background()

	_, err := NewPeopleQuery(nil, nil).Query(ctx, PeopleQueryInput{})
	require.ErrorIs(t, err, types.ErrMissingResolver)

	_, err = NewPersonDataQuery(&failingResolver{}, nil).Query(ctx, PersonDataQueryInput{})
	require.ErrorIs(t, err, types.ErrMissingStore)
}

type failingResolver struct {
	err error
}

func (f *failingResolver) Related(context.Context, relationship.RelatedInput) ([]types.Person, error) {
	return nil, f.err
}

func (f *failingResolver) Resolve(context.Context, types.UserRef, types.SecurityToken) (string, error) {
	return "", f.err
}

func (f *failingResolver) Self(context.Context, types.UserRef, types.SecurityToken) (*types.Person, error) {
	return nil, f.err
}
