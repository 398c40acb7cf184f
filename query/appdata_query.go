package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/relationship"
)

// PersonDataQueryInput selects application data for related people. Fields
// restricts the returned keys; an empty list returns everything.
type PersonDataQueryInput struct {
	Users  []types.UserRef
	Group  types.GroupRef
	AppID  string
	Fields []string
	Token  types.SecurityToken
}

// PersonDataQuery collects application data keyed by person id.
type PersonDataQuery struct {
	resolver relatedResolver
	repo     types.AppDataRepository
}

// NewPersonDataQuery constructs the application data query.
func NewPersonDataQuery(resolver relatedResolver, repo types.AppDataRepository) *PersonDataQuery {
	return &PersonDataQuery{
		resolver: resolver,
		repo:     repo,
	}
}

var _ gocommand.Querier[PersonDataQueryInput, types.DataCollection] = (*PersonDataQuery)(nil)

// Query returns one entry per related person, projected to Fields when set.
// Stored data is never modified by the projection.
func (q *PersonDataQuery) Query(ctx context.Context, input PersonDataQueryInput) (types.DataCollection, error) {
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
	out := make(types.DataCollection, len(people))
	for _, person := range people {
		data, err := q.repo.AppDataOf(ctx, person.ID)
		if err != nil {
			return nil, err
		}
		out[person.ID] = project(data, input.Fields)
	}
	return out, nil
}

func project(data map[string]string, fields []string) map[string]string {
	if len(fields) == 0 {
		out := make(map[string]string, len(data))
		for k, v := range data {
			out[k] = v
		}
		return out
	}
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		if v, ok := data[field]; ok {
			out[field] = v
		}
	}
	return out
}
