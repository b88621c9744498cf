package update_price

import (
	"context"
	"fmt"
	"strings"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/pkg/sequencer"
)

const SequenceName = "update_price"

const (
	StageGetProduct     = "get_product"
	StageSetPrices      = "set_prices"
	StageRefreshProduct = "refresh_product"
	StagePublish        = "publish"
)

// Request carries the new price as typed by an admin, e.g. "24.99" or "$24.99".
type Request struct {
	ProductID string
	Price     string
}

// Interactor replaces a product's price and publishes it.
type Interactor struct {
	Sequencer *sequencer.Sequencer
	Currency  string
	Country   string
	// RefreshBeforePublish re-reads the product between setPrices and publish.
	// When false, publish uses the version returned by setPrices.
	RefreshBeforePublish bool
}

func NewInteractor(seq *sequencer.Sequencer, currency, country string, refreshBeforePublish bool) *Interactor {
	return &Interactor{
		Sequencer:            seq,
		Currency:             strings.ToUpper(currency),
		Country:              strings.ToUpper(country),
		RefreshBeforePublish: refreshBeforePublish,
	}
}

// ParsePrice converts a positive decimal amount into cents.
func ParsePrice(raw string) (int64, error) {
	m, err := domain.NewMoneyFromDecimal(raw)
	if err != nil {
		return 0, err
	}
	if m.IsNegative() {
		return 0, domain.ErrNegativePrice
	}
	cents := m.CentAmount()
	if cents == 0 {
		return 0, domain.ErrZeroPrice
	}
	return cents, nil
}

func (it *Interactor) Execute(ctx context.Context, req Request) (domain.ProductRef, error) {
	if strings.TrimSpace(req.ProductID) == "" {
		return domain.ProductRef{}, domain.ErrEmptyResourceID
	}
	cents, err := ParsePrice(req.Price)
	if err != nil {
		return domain.ProductRef{}, fmt.Errorf("price %q: %w", req.Price, err)
	}

	price := domain.Price{
		Value:   domain.PriceValue{CurrencyCode: it.Currency, CentAmount: cents},
		Country: it.Country,
	}
	stages := []sequencer.Stage{
		sequencer.Read(StageGetProduct),
		sequencer.Mutate(StageSetPrices, domain.SetPrices(domain.MasterVariantID, price)),
	}
	if it.RefreshBeforePublish {
		stages = append(stages, sequencer.Read(StageRefreshProduct))
	}
	stages = append(stages, sequencer.Mutate(StagePublish, domain.Publish()))

	res, err := it.Sequencer.Run(ctx, sequencer.Sequence{
		Name:   SequenceName,
		Start:  sequencer.From(domain.KindProduct, req.ProductID),
		Stages: stages,
	})
	if err != nil {
		return domain.ProductRef{}, err
	}
	return res.Ref, nil
}
