package contracts

import (
	"context"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

// Platform is the remote commerce API as seen by the sequencer.
// Every method is exactly one remote call. Failures wrap one of the domain
// remote-call sentinels (ErrNetworkFailure, ErrVersionConflict, ErrValidationFailure,
// ErrResourceNotFound) so callers can classify them with domain.KindOf.
type Platform interface {
	// CreateResource creates a resource from draft and returns it with its first version.
	CreateResource(ctx context.Context, kind domain.ResourceKind, draft domain.Draft) (*domain.Resource, error)

	// GetResource reads the current state and version of a resource.
	GetResource(ctx context.Context, kind domain.ResourceKind, id string) (*domain.Resource, error)

	// MutateResource applies actions atomically against the expected version.
	// A stale version fails with domain.ErrVersionConflict.
	MutateResource(ctx context.Context, kind domain.ResourceKind, id string, version int64, actions []domain.Action) (*domain.Resource, error)

	// CreateOrder turns the cart at the given version into an order.
	CreateOrder(ctx context.Context, cart domain.Ref, orderNumber string) (*domain.Resource, error)
}
