package service

import (
	"context"
	"errors"

	"github.com/creativeminds/analytics/internal/adapters/repository"
)

// errorType is the metrics label of a report failure.
func errorType(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return "unavailable"
	case errors.Is(err, repository.ErrQuery):
		return "query"
	default:
		return "internal"
	}
}
