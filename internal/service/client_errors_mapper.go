package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bunpo-app/bunpo/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The original error stays wrapped so logs keep the full
// cause chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrUnauthenticated, err)

	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrRecordNotFound, err)

	case errors.Is(err, adapter.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrTransient, err)

	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrConflict),
		errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrInternalServerError):
		return fmt.Errorf("%w: %w", ErrUnknown, err)
	}

	return fmt.Errorf("%w: %w", ErrUnknown, err)
}
