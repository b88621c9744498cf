package contracts

import (
	"context"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

type ReadModel interface {
	ListProducts(ctx context.Context, limit, offset int) ([]*domain.Resource, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*domain.Resource, error)
}
