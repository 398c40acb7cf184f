package types

import "errors"

var (
	// ErrPersonNotFound indicates a reference did not resolve to a person.
	ErrPersonNotFound = errors.New("go-social: person not found")
	// ErrActivityNotFound indicates the activity does not exist or is not
	// owned by the resolved person.
	ErrActivityNotFound = errors.New("go-social: activity not found")
	// ErrInvalidRange indicates a paging window outside the collection.
	ErrInvalidRange = errors.New("go-social: invalid range")
	// ErrUserRefRequired indicates a missing or malformed user reference.
	ErrUserRefRequired = errors.New("go-social: user reference required")
	// ErrActivityDeleteDisabled indicates activity deletion is switched off.
	ErrActivityDeleteDisabled = errors.New("go-social: activity deletion disabled")
	// ErrServiceNotReady is returned when a facade was not wired.
	ErrServiceNotReady = errors.New("go-social: service not ready")
	// ErrMissingStore indicates no Store was supplied.
	ErrMissingStore = errors.New("go-social: missing store")
	// ErrMissingResolver indicates no relationship resolver was supplied.
	ErrMissingResolver = errors.New("go-social: missing relationship resolver")
)
