package list_products

import (
	"context"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/dto"
)

// DefaultLimit applies when the caller passes a non-positive limit.
const DefaultLimit = 50

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

// Execute lists products; onlyPublished hides drafts that shoppers cannot add to a cart.
func (h *Handler) Execute(ctx context.Context, onlyPublished bool, limit, offset int) ([]*dto.ProductSummaryDTO, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := h.readModel.ListProducts(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductSummaryDTO, 0, len(rows))
	for _, r := range rows {
		if onlyPublished && (r.Product == nil || !r.Product.Published) {
			continue
		}
		out = append(out, dto.ProductSummary(r))
	}
	return out, nil
}
