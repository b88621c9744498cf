package spannerdb

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

// mapError classifies a Spanner failure. Domain errors raised inside a transaction
// come back wrapped by the client and are passed through unchanged.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if domain.KindOf(err) != domain.KindUnknown {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s: %w", domain.ErrNetworkFailure, what, err)
		}
		return err
	}

	switch status.Code(err) {
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s already exists", domain.ErrValidationFailure, what)
	case codes.NotFound:
		return fmt.Errorf("%w: %s", domain.ErrResourceNotFound, what)
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return fmt.Errorf("%w: %s: %w", domain.ErrValidationFailure, what, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.ResourceExhausted:
		return fmt.Errorf("%w: %s: %w", domain.ErrNetworkFailure, what, err)
	}
	return fmt.Errorf("spanner %s: %w", what, err)
}
