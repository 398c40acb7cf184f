package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/relationship"
)

// PeopleQueryInput selects a window over the people related to a set of
// references.
type PeopleQueryInput struct {
	Users   []types.UserRef
	Group   types.GroupRef
	Options types.CollectionOptions
	Token   types.SecurityToken
}

// PeopleQuery lists related people with offset/limit paging.
type PeopleQuery struct {
	resolver relatedResolver
	logger   types.Logger
}

// NewPeopleQuery constructs the people query.
func NewPeopleQuery(resolver relatedResolver, logger types.Logger) *PeopleQuery {
	return &PeopleQuery{
		resolver: resolver,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[PeopleQueryInput, types.PersonPage] = (*PeopleQuery)(nil)

// Query resolves the people and slices the requested window. An offset past
// the end of the collection is an invalid range; an offset equal to the size
// yields an empty page.
func (q *PeopleQuery) Query(ctx context.Context, input PeopleQueryInput) (types.PersonPage, error) {
	if q.resolver == nil {
		return types.PersonPage{}, types.ErrMissingResolver
	}
	opts := input.Options.Normalize()
	if opts.Offset < 0 {
		return types.PersonPage{}, types.ErrInvalidRange
	}
	people, err := q.resolver.Related(ctx, relationship.RelatedInput{
		Users: input.Users,
		Group: input.Group,
		Token: input.Token,
	})
	if err != nil {
		return types.PersonPage{}, err
	}
	total := len(people)
	if opts.Offset > total {
		q.logger.Debug("people window out of range", "offset", opts.Offset, "total", total)
		return types.PersonPage{}, types.ErrInvalidRange
	}
	end := total
	if opts.Limit < total-opts.Offset {
		end = opts.Offset + opts.Limit
	}
	return types.PersonPage{
		People:  people[opts.Offset:end],
		Offset:  opts.Offset,
		Limit:   opts.Limit,
		Total:   total,
		HasMore: end < total,
	}, nil
}

// PersonQueryInput names a single person.
type PersonQueryInput struct {
	User  types.UserRef
	Token types.SecurityToken
}

// PersonQuery fetches one person.
type PersonQuery struct {
	resolver relatedResolver
}

// NewPersonQuery constructs the single person query.
func NewPersonQuery(resolver relatedResolver) *PersonQuery {
	return &PersonQuery{resolver: resolver}
}

var _ gocommand.Querier[PersonQueryInput, types.Person] = (*PersonQuery)(nil)

// Query returns the person or types.ErrPersonNotFound.
func (q *PersonQuery) Query(ctx context.Context, input PersonQueryInput) (types.Person, error) {
	if q.resolver == nil {
		return types.Person{}, types.ErrMissingResolver
	}
	if input.User.IsZero() {
		return types.Person{}, types.ErrUserRefRequired
	}
	person, err := q.resolver.Self(ctx, input.User, input.Token)
	if err != nil {
		return types.Person{}, err
	}
	if person == nil {
		return types.Person{}, types.ErrPersonNotFound
	}
	return *person, nil
}
