// Package relationship resolves user references and group selectors into
// concrete people.
package relationship

import (
	"context"
	"fmt"

	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/scope"
)

// ResolverConfig wires dependencies for the relationship resolver.
type ResolverConfig struct {
	People   types.PersonRepository
	Identity types.IdentityResolver
	Logger   types.Logger
}

// Resolver expands (user, group) selectors into people.
type Resolver struct {
	people   types.PersonRepository
	identity types.IdentityResolver
	logger   types.Logger
}

// RelatedInput describes a related-people lookup. Users are resolved in slice
// order; that order is the canonical order of the result.
type RelatedInput struct {
	Users []types.UserRef
	Group types.GroupRef
	Token types.SecurityToken
}

// NewResolver constructs a relationship resolver.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.People == nil {
		return nil, fmt.Errorf("relationship: person repository required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &Resolver{
		people:   cfg.People,
		identity: scope.Ensure(cfg.Identity),
		logger:   logger,
	}, nil
}

// Resolve turns a single user reference into a person id. An empty id means
// the reference does not name anyone.
func (r *Resolver) Resolve(ctx context.Context, ref types.UserRef, token types.SecurityToken) (string, error) {
	return r.identity.ResolveUserID(ctx, ref, token)
}

// Self returns the person named by the reference, or nil when the reference
// resolves to no stored person.
func (r *Resolver) Self(ctx context.Context, ref types.UserRef, token types.SecurityToken) (*types.Person, error) {
	id, err := r.Resolve(ctx, ref, token)
	if err != nil || id == "" {
		return nil, err
	}
	return r.people.FindPerson(ctx, id)
}

// RelatedTo returns the people selected by group for a single reference. The
// friends, group and all selectors share the friend list.
func (r *Resolver) RelatedTo(ctx context.Context, ref types.UserRef, group types.GroupRef, token types.SecurityToken) ([]types.Person, error) {
	id, err := r.Resolve(ctx, ref, token)
	if err != nil {
		return nil, err
	}
	return r.relatedByID(ctx, id, group)
}

func (r *Resolver) relatedByID(ctx context.Context, id string, group types.GroupRef) ([]types.Person, error) {
	if id == "" {
		return nil, nil
	}
	if group.IsSelf() {
		person, err := r.people.FindPerson(ctx, id)
		if err != nil || person == nil {
			return nil, err
		}
		return []types.Person{*person}, nil
	}
	return r.people.FriendsOf(ctx, id)
}

// Related resolves every reference and returns the union of related people,
// deduplicated by person id. The first occurrence wins.
func (r *Resolver) Related(ctx context.Context, input RelatedInput) ([]types.Person, error) {
	seen := make(map[string]struct{})
	out := make([]types.Person, 0)
	for _, ref := range input.Users {
		people, err := r.RelatedTo(ctx, ref, input.Group, input.Token)
		if err != nil {
			return nil, err
		}
		for _, person := range people {
			if _, dup := seen[person.ID]; dup {
				continue
			}
			seen[person.ID] = struct{}{}
			out = append(out, person)
		}
	}
	r.logger.Debug("relationship resolved",
		"users", len(input.Users),
		"group", string(input.Group.Type),
		"people", len(out),
	)
	return out, nil
}
