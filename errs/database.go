package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrStoreAccess        = errors.New("store access failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrDatabaseTimeout    = errors.New("database timeout")
	ErrRequestCancelled   = errors.New("request cancelled")
)

// NewStoreAccessError wraps a failure of the tag catalog or association store.
// It signals that an empty answer could not be trusted, as opposed to "no matches".
func NewStoreAccessError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	switch {
	case cause == nil:
	case errors.Is(cause, context.Canceled):
		return &ApiErr{
			StatusCode: 499,
			err:        fmt.Errorf("%w: %w", ErrStoreAccess, ErrRequestCancelled),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, context.DeadlineExceeded):
		return &ApiErr{
			StatusCode: http.StatusGatewayTimeout,
			err:        fmt.Errorf("%w: %w", ErrStoreAccess, ErrDatabaseTimeout),
			Details:    details,
			Cause:      cause,
		}
	case strings.Contains(cause.Error(), "connection"):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        fmt.Errorf("%w: %w", ErrStoreAccess, ErrDatabaseConnection),
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStoreAccess,
		Details:    details,
		Cause:      cause,
	}
}

func IsStoreAccessError(err error) bool {
	return errors.Is(err, ErrStoreAccess)
}

func IsDatabaseConnectionError(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}

func IsDatabaseTimeoutError(err error) bool {
	return errors.Is(err, ErrDatabaseTimeout)
}

func IsRequestCancelledError(err error) bool {
	return errors.Is(err, ErrRequestCancelled)
}
