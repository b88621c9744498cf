package list_orders

import (
	"context"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/dto"
)

const DefaultLimit = 50

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

func (h *Handler) Execute(ctx context.Context, limit, offset int) ([]*dto.OrderSummaryDTO, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := h.readModel.ListOrders(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.OrderSummary(r))
	}
	return out, nil
}
