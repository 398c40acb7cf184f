package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/relationship"
)

// ActivityFeedQueryInput selects the activities of related people.
type ActivityFeedQueryInput struct {
	Users []types.UserRef
	Group types.GroupRef
	AppID string
	Token types.SecurityToken
}

// ActivityFeedQuery unions the activities of every related person.
type ActivityFeedQuery struct {
	resolver relatedResolver
	repo     types.ActivityRepository
}

// NewActivityFeedQuery constructs the feed query.
func NewActivityFeedQuery(resolver relatedResolver, repo types.ActivityRepository) *ActivityFeedQuery {
	return &ActivityFeedQuery{
		resolver: resolver,
		repo:     repo,
	}
}

var _ gocommand.Querier[ActivityFeedQueryInput, []types.Activity] = (*ActivityFeedQuery)(nil)

// Query returns activities in person order then insertion order, filtered by
// AppID and deduplicated by activity id.
func (q *ActivityFeedQuery) Query(ctx context.Context, input ActivityFeedQueryInput) ([]types.Activity, error) {
	if q.resolver == nil {
		return nil, types.ErrMissingResolver
	}
	if q.repo == nil {
		return nil, types.ErrMissingStore
	}
	people, err := q.resolver.Related(ctx, relationship.RelatedInput{
		Users: input.Users,
		Group: input.Group,
		Token: input.Token,
	})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]types.Activity, 0)
	for _, person := range people {
		activities, err := q.repo.ActivitiesOf(ctx, person.ID)
		if err != nil {
			return nil, err
		}
		for _, activity := range activities {
			if !activity.MatchesApp(input.AppID) {
				continue
			}
			if _, dup := seen[activity.ID]; dup {
				continue
			}
			seen[activity.ID] = struct{}{}
			out = append(out, activity)
		}
	}
	return out, nil
}

// ActivitySelectionQueryInput selects specific activities of one person.
type ActivitySelectionQueryInput struct {
	User        types.UserRef
	ActivityIDs []string
	Token       types.SecurityToken
}

// ActivitySelectionQuery intersects a person's activities with an id set.
type ActivitySelectionQuery struct {
	resolver relatedResolver
	repo     types.ActivityRepository
}

// NewActivitySelectionQuery constructs the selection query.
func NewActivitySelectionQuery(resolver relatedResolver, repo types.ActivityRepository) *ActivitySelectionQuery {
	return &ActivitySelectionQuery{
		resolver: resolver,
		repo:     repo,
	}
}

var _ gocommand.Querier[ActivitySelectionQueryInput, []types.Activity] = (*ActivitySelectionQuery)(nil)

// Query returns the person's activities whose ids were requested, in the
// person's insertion order. Ids owned by someone else are ignored.
func (q *ActivitySelectionQuery) Query(ctx context.Context, input ActivitySelectionQueryInput) ([]types.Activity, error) {
	if q.resolver == nil {
		return nil, types.ErrMissingResolver
	}
	if q.repo == nil {
		return nil, types.ErrMissingStore
	}
	userID, err := q.resolver.Resolve(ctx, input.User, input.Token)
	if err != nil {
		return nil, err
	}
	out := make([]types.Activity, 0)
	if userID == "" || len(input.ActivityIDs) == 0 {
		return out, nil
	}
	activities, err := q.repo.ActivitiesOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, activity := range activities {
		if containsString(input.ActivityIDs, activity.ID) {
			out = append(out, activity)
		}
	}
	return out, nil
}

// ActivityQueryInput names a single activity of a person.
type ActivityQueryInput struct {
	User       types.UserRef
	ActivityID string
	Token      types.SecurityToken
}

// ActivityQuery fetches one activity, enforcing ownership.
type ActivityQuery struct {
	resolver relatedResolver
	repo     types.ActivityRepository
}

// NewActivityQuery constructs the single activity query.
func NewActivityQuery(resolver relatedResolver, repo types.ActivityRepository) *ActivityQuery {
	return &ActivityQuery{
		resolver: resolver,
		repo:     repo,
	}
}

var _ gocommand.Querier[ActivityQueryInput, types.Activity] = (*ActivityQuery)(nil)

// Query returns the activity when it exists and belongs to the resolved
// person; otherwise types.ErrActivityNotFound.
func (q *ActivityQuery) Query(ctx context.Context, input ActivityQueryInput) (types.Activity, error) {
	if q.resolver == nil {
		return types.Activity{}, types.ErrMissingResolver
	}
	if q.repo == nil {
		return types.Activity{}, types.ErrMissingStore
	}
	userID, err := q.resolver.Resolve(ctx, input.User, input.Token)
	if err != nil {
		return types.Activity{}, err
	}
	activity, err := q.repo.FindActivity(ctx, input.ActivityID)
	if err != nil {
		return types.Activity{}, err
	}
	if activity == nil || userID == "" || activity.UserID != userID {
		return types.Activity{}, types.ErrActivityNotFound
	}
	return *activity, nil
}
