package service

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-social/command"
	"github.com/goliatone/go-social/pkg/types"
)

const (
	textCodePersonNotFound   = "PERSON_NOT_FOUND"
	textCodeActivityNotFound = "ACTIVITY_NOT_FOUND"
	textCodeInvalidRange     = "INVALID_RANGE"
	textCodeInvalidInput     = "INVALID_INPUT"
	textCodeFeatureDisabled  = "FEATURE_DISABLED"
	textCodeNotReady         = "SERVICE_NOT_READY"
	textCodeInternal         = "INTERNAL"
)

// mapError converts domain failures into go-errors values. Lookup failures
// and bad windows map to bad requests.
func mapError(operation string, err error) error {
	if err == nil {
		return nil
	}
	metadata := map[string]any{"operation": operation}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Clone().WithMetadata(metadata)
	}

	category := goerrors.CategoryInternal
	code := goerrors.CodeInternal
	textCode := textCodeInternal
	message := "go-social: operation failed"
	switch {
	case errors.Is(err, types.ErrPersonNotFound):
		category, code, textCode, message = goerrors.CategoryNotFound, goerrors.CodeBadRequest, textCodePersonNotFound, "Person not found"
	case errors.Is(err, types.ErrActivityNotFound):
		category, code, textCode, message = goerrors.CategoryNotFound, goerrors.CodeBadRequest, textCodeActivityNotFound, "Activity not found"
	case errors.Is(err, types.ErrInvalidRange):
		category, code, textCode, message = goerrors.CategoryValidation, goerrors.CodeBadRequest, textCodeInvalidRange, "Invalid range"
	case errors.Is(err, types.ErrUserRefRequired),
		errors.Is(err, command.ErrAppDataValuesRequired),
		errors.Is(err, command.ErrAppDataKeysRequired),
		errors.Is(err, command.ErrActivityIDsRequired):
		category, code, textCode, message = goerrors.CategoryValidation, goerrors.CodeBadRequest, textCodeInvalidInput, "Invalid input"
	case errors.Is(err, types.ErrActivityDeleteDisabled):
		category, code, textCode, message = goerrors.CategoryAuthz, goerrors.CodeForbidden, textCodeFeatureDisabled, "Activity deletion disabled"
	case errors.Is(err, types.ErrMissingStore),
		errors.Is(err, types.ErrMissingResolver),
		errors.Is(err, types.ErrServiceNotReady):
		textCode, message = textCodeNotReady, "go-social: service not ready"
	}

	return goerrors.Wrap(err, category, message).
		WithCode(code).
		WithTextCode(textCode).
		WithMetadata(metadata)
}
