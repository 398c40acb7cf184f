package types

import (
	"context"
	"fmt"
	"strings"
)

// UserRefType identifies how a user reference is resolved.
type UserRefType string

const (
	UserRefViewer UserRefType = "viewer"
	UserRefOwner  UserRefType = "owner"
	UserRefMe     UserRefType = "me"
	UserRefID     UserRefType = "userId"
)

// UserRef is a symbolic or literal reference to a person.
type UserRef struct {
	Type UserRefType
	ID   string
}

// Viewer references the viewer carried by the security token.
func Viewer() UserRef { return UserRef{Type: UserRefViewer} }

// Owner references the owner carried by the security token.
func Owner() UserRef { return UserRef{Type: UserRefOwner} }

// Me is an alias of Viewer.
func Me() UserRef { return UserRef{Type: UserRefMe} }

// UserID references a person by literal id.
func UserID(id string) UserRef { return UserRef{Type: UserRefID, ID: id} }

// ParseUserRef accepts "@viewer", "@owner", "@me" or a literal person id.
func ParseUserRef(value string) (UserRef, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return UserRef{}, ErrUserRefRequired
	case "@viewer":
		return Viewer(), nil
	case "@owner":
		return Owner(), nil
	case "@me":
		return Me(), nil
	}
	if strings.HasPrefix(value, "@") {
		return UserRef{}, fmt.Errorf("%w: unknown user reference %q", ErrUserRefRequired, value)
	}
	return UserID(value), nil
}

// IsZero reports whether the reference carries no information.
func (r UserRef) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

func (r UserRef) String() string {
	switch r.Type {
	case UserRefViewer, UserRefOwner, UserRefMe:
		return "@" + string(r.Type)
	default:
		return r.ID
	}
}

// GroupType selects which relationship of a person is resolved.
type GroupType string

const (
	GroupSelf    GroupType = "self"
	GroupFriends GroupType = "friends"
	GroupID      GroupType = "groupId"
	GroupAll     GroupType = "all"
)

// GroupRef selects a relationship. The zero value is the absent group and
// behaves like Self.
type GroupRef struct {
	Type GroupType
	ID   string
}

// Self selects the referenced person.
func Self() GroupRef { return GroupRef{Type: GroupSelf} }

// Friends selects the friends of the referenced person.
func Friends() GroupRef { return GroupRef{Type: GroupFriends} }

// All selects every person related to the referenced person.
func All() GroupRef { return GroupRef{Type: GroupAll} }

// Group selects a named group of the referenced person.
func Group(id string) GroupRef { return GroupRef{Type: GroupID, ID: id} }

// ParseGroupRef accepts "@self", "@friends", "@all", a group id or an empty
// string for the absent group.
func ParseGroupRef(value string) GroupRef {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return GroupRef{}
	case "@self":
		return Self()
	case "@friends":
		return Friends()
	case "@all":
		return All()
	}
	return Group(value)
}

// IsSelf reports whether the group resolves to the referenced person itself.
func (g GroupRef) IsSelf() bool {
	return g.Type == "" || g.Type == GroupSelf
}

// SecurityToken carries the identities of the current request.
type SecurityToken interface {
	ViewerID() string
	OwnerID() string
	AppID() string
}

// IdentityResolver turns a user reference into a concrete person id. An empty
// id means the reference resolves to no person.
type IdentityResolver interface {
	ResolveUserID(ctx context.Context, ref UserRef, token SecurityToken) (string, error)
}

// IdentityResolverFunc adapts a function to IdentityResolver.
type IdentityResolverFunc func(ctx context.Context, ref UserRef, token SecurityToken) (string, error)

// ResolveUserID implements IdentityResolver.
func (fn IdentityResolverFunc) ResolveUserID(ctx context.Context, ref UserRef, token SecurityToken) (string, error) {
	return fn(ctx, ref, token)
}
