package query

import (
	"context"

	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/relationship"
)

// relatedResolver is the subset of relationship.Resolver the queries depend
// on.
type relatedResolver interface {
	Related(ctx context.Context, input relationship.RelatedInput) ([]types.Person, error)
	Resolve(ctx context.Context, ref types.UserRef, token types.SecurityToken) (string, error)
	Self(ctx context.Context, ref types.UserRef, token types.SecurityToken) (*types.Person, error)
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
