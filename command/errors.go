package command

import (
	"errors"

	"github.com/goliatone/go-social/pkg/types"
)

var (
	// ErrUserRefRequired indicates the command lacks a user reference.
	ErrUserRefRequired = types.ErrUserRefRequired
	// ErrAppDataValuesRequired indicates an update carried no values.
	ErrAppDataValuesRequired = errors.New("go-social: app data values required")
	// ErrAppDataKeysRequired indicates a delete carried no keys.
	ErrAppDataKeysRequired = errors.New("go-social: app data keys required")
	// ErrActivityIDsRequired indicates a delete carried no activity ids.
	ErrActivityIDsRequired = errors.New("go-social: activity ids required")
	// ErrActivityDeleteDisabled indicates activity removal is disabled via feature gate.
	ErrActivityDeleteDisabled = types.ErrActivityDeleteDisabled
)
