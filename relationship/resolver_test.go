package relationship

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/scope"
	"github.com/goliatone/go-social/store"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T) *Resolver {
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
	}))
	resolver, err := NewResolver(ResolverConfig{People: mem})
	require.NoError(t, err)
	return resolver
}

func ids(people []types.Person) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}

func TestResolverSelfAndAbsentGroup(t *testing.T) {
	ctx := context.Background()
	resolver := newResolver(t)

	people, err := resolver.RelatedTo(ctx, types.UserID("jane.doe"), types.Self(), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"jane.doe"}, ids(people))

	people, err = resolver.RelatedTo(ctx, types.UserID("jane.doe"), types.GroupRef{}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"jane.doe"}, ids(people))
}

func TestResolverGroupSelectorsShareFriendList(t *testing.T) {
	ctx := context.Background()
	resolver := newResolver(t)
	want := []string{"jane.doe", "george.doe", "maija.m", "mario.rossi"}

	for _, group := range []types.GroupRef{types.Friends(), types.All(), types.Group("hiking")} {
		people, err := resolver.RelatedTo(ctx, types.UserID("john.doe"), group, nil)
		require.NoError(t, err)
		require.Equal(t, want, ids(people), string(group.Type))
	}
}

func TestResolverUnknownIdentifiersYieldNothing(t *testing.T) {
	ctx := context.Background()
	resolver := newResolver(t)

	people, err := resolver.RelatedTo(ctx, types.UserID("nobody"), types.Self(), nil)
	require.NoError(t, err)
	require.Empty(t, people)

	people, err = resolver.RelatedTo(ctx, types.Viewer(), types.Friends(), nil)
	require.NoError(t, err)
	require.Empty(t, people)
}

func TestResolverRelatedDeduplicatesInCallerOrder(t *testing.T) {
	ctx := context.Background()
	resolver := newResolver(t)

	people, err := resolver.Related(ctx, RelatedInput{
		Users: []types.UserRef{types.UserID("jane.doe"), types.UserID("george.doe")},
		Group: types.Friends(),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"john.doe", "mario.rossi"}, ids(people))

	people, err = resolver.Related(ctx, RelatedInput{
		Users: []types.UserRef{types.Viewer(), types.UserID("john.doe"), types.Owner()},
		Group: types.Self(),
		Token: scope.StaticToken{Viewer: "john.doe", Owner: "jane.doe"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"john.doe", "jane.doe"}, ids(people))
}

func TestResolverPropagatesIdentityFailures(t *testing.T) {
	boom := errors.New("identity backend down")
	resolver, err := NewResolver(ResolverConfig{
		People: store.NewMemory(),
		Identity: types.IdentityResolverFunc(func(context.Context, types.UserRef, types.SecurityToken) (string, error) {
			return "", boom
		}),
	})
	require.NoError(t, err)

	_, err = resolver.Related(context.Background(), RelatedInput{Users: []types.UserRef{types.Viewer()}})
	require.ErrorIs(t, err, boom)
}

func TestNewResolverRequiresPeople(t *testing.T) {
	_, err := NewResolver(ResolverConfig{})
	require.Error(t, err)
}
