package scope

import (
	"context"
	"strings"

	"github.com/goliatone/go-social/pkg/types"
)

// Resolver turns user references into person ids using the request's security
// token. It is intentionally small so callers can swap custom resolvers in
// tests if needed.
type Resolver = types.IdentityResolver

type tokenResolver struct {
	lookup func(ctx context.Context, ref types.UserRef, token types.SecurityToken) (string, bool, error)
}

// NewTokenResolver builds the default resolver: viewer and me map to the
// token's viewer, owner maps to the token's owner and literal ids pass
// through. The optional lookup hook can translate literal ids (for example
// aliases) before the default applies; returning ok=false defers to the
// default.
func NewTokenResolver(lookup func(ctx context.Context, ref types.UserRef, token types.SecurityToken) (string, bool, error)) Resolver {
	return tokenResolver{lookup: lookup}
}

// Ensure returns a non-nil resolver so constructors can accept nil resolvers
// when tests instantiate them directly.
func Ensure(r Resolver) Resolver {
	if r == nil {
		return tokenResolver{}
	}
	return r
}

// TokenResolver returns the default resolver.
func TokenResolver() Resolver {
	return tokenResolver{}
}

// ResolveUserID implements types.IdentityResolver. A nil token resolves
// symbolic references to no person.
func (r tokenResolver) ResolveUserID(ctx context.Context, ref types.UserRef, token types.SecurityToken) (string, error) {
	if r.lookup != nil {
		id, ok, err := r.lookup(ctx, ref, token)
		if err != nil {
			return "", err
		}
		if ok {
			return strings.TrimSpace(id), nil
		}
	}
	switch ref.Type {
	case types.UserRefViewer, types.UserRefMe:
		if token == nil {
			return "", nil
		}
		return strings.TrimSpace(token.ViewerID()), nil
	case types.UserRefOwner:
		if token == nil {
			return "", nil
		}
		return strings.TrimSpace(token.OwnerID()), nil
	default:
		return strings.TrimSpace(ref.ID), nil
	}
}

// StaticToken is a fixed security token, handy for CLIs and tests.
type StaticToken struct {
	Viewer string
	Owner  string
	App    string
}

var _ types.SecurityToken = StaticToken{}

// ViewerID implements types.SecurityToken.
func (t StaticToken) ViewerID() string { return t.Viewer }

// OwnerID implements types.SecurityToken.
func (t StaticToken) OwnerID() string { return t.Owner }

// AppID implements types.SecurityToken.
func (t StaticToken) AppID() string { return t.App }
