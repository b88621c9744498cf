package checkout

import (
	"context"
	"strings"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/pkg/sequencer"
)

// SequenceName labels checkout runs in logs, metrics and errors.
const SequenceName = "checkout"

// Stage names, in execution order.
const (
	StageCreateCart  = "create_cart"
	StageFillCart    = "add_line_items"
	StageOrderNumber = "order_number"
	StageCreateOrder = "create_order"
)

// Request is the application-level checkout request.
type Request struct {
	Cart     *domain.CartSnapshot
	Address  domain.Address
	Customer *domain.Customer // nil for guest checkout
}

// Response identifies the created order.
type Response struct {
	Order       domain.OrderRef
	OrderNumber string
	TotalCents  int64
	Currency    string
}

// Interactor turns a local cart snapshot into an order:
// create cart → one batched addLineItem/setShippingAddress mutation → order number → create order.
type Interactor struct {
	Sequencer *sequencer.Sequencer
	Numberer  contracts.OrderNumberer
	Currency  string
	Country   string
}

func NewInteractor(seq *sequencer.Sequencer, numberer contracts.OrderNumberer, currency, country string) *Interactor {
	return &Interactor{
		Sequencer: seq,
		Numberer:  numberer,
		Currency:  strings.ToUpper(currency),
		Country:   strings.ToUpper(country),
	}
}

// Execute runs the checkout sequence. An empty snapshot fails with domain.ErrEmptyCart before any
// remote call; any later failure is a *sequencer.Error naming the stage.
func (it *Interactor) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.Cart == nil {
		return nil, domain.ErrEmptyCart
	}
	lines := req.Cart.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	actions := make([]domain.Action, 0, len(lines)+1)
	for _, l := range lines {
		actions = append(actions, domain.AddLineItem(l.ProductID, l.VariantID, l.Quantity))
	}
	actions = append(actions, domain.SetShippingAddress(req.Address.WithDefaults(req.Customer)))

	res, err := it.Sequencer.Run(ctx, sequencer.Sequence{
		Name: SequenceName,
		Stages: []sequencer.Stage{
			sequencer.Create(StageCreateCart, &domain.CartDraft{Currency: it.Currency, Country: it.Country}),
			sequencer.Mutate(StageFillCart, actions...),
			sequencer.Local(StageOrderNumber, it.Numberer.Next),
			sequencer.PlaceOrder(StageCreateOrder),
		},
	})
	if err != nil {
		return nil, err
	}

	out := &Response{Order: res.Ref, OrderNumber: res.Token}
	if res.Resource != nil && res.Resource.Order != nil {
		out.OrderNumber = res.Resource.Order.OrderNumber
		out.TotalCents = res.Resource.Order.TotalCents
		out.Currency = res.Resource.Order.Currency
	}
	return out, nil
}
