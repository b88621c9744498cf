package get_product

import (
	"context"
	"fmt"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/dto"
)

type Handler struct {
	platform contracts.Platform
}

func NewHandler(p contracts.Platform) *Handler {
	return &Handler{platform: p}
}

// Execute reads one product. With onlyPublished, drafts are reported as not found.
func (h *Handler) Execute(ctx context.Context, productID string, onlyPublished bool) (*dto.ProductDTO, error) {
	r, err := h.platform.GetResource(ctx, domain.KindProduct, productID)
	if err != nil {
		return nil, err
	}
	if onlyPublished && (r.Product == nil || !r.Product.Published) {
		return nil, fmt.Errorf("%w: product %s", domain.ErrResourceNotFound, productID)
	}
	return dto.Product(r), nil
}
