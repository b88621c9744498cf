package create_product

import (
	"context"
	"fmt"
	"strings"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/usecases/update_price"
	"github.com/murkotick/storefront-sequencer/internal/pkg/sequencer"
)

const SequenceName = "create_product"

const (
	StageCreateProduct = "create_product"
	StagePublish       = "publish"
)

// Request is the admin "add product" form.
type Request struct {
	Name     string
	Key      string
	SKU      string
	Price    string
	ImageURL string
}

// Interactor creates a product and publishes it against the version returned by the create.
type Interactor struct {
	Sequencer *sequencer.Sequencer
	Currency  string
	Country   string
}

func NewInteractor(seq *sequencer.Sequencer, currency, country string) *Interactor {
	return &Interactor{Sequencer: seq, Currency: strings.ToUpper(currency), Country: strings.ToUpper(country)}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (domain.ProductRef, error) {
	if err := domain.ValidateProductName(req.Name); err != nil {
		return domain.ProductRef{}, err
	}
	cents, err := update_price.ParsePrice(req.Price)
	if err != nil {
		return domain.ProductRef{}, fmt.Errorf("price %q: %w", req.Price, err)
	}

	name := strings.TrimSpace(req.Name)
	draft := &domain.ProductDraft{
		Key:  strings.TrimSpace(req.Key),
		Name: name,
		Slug: slugify(name),
		SKU:  strings.TrimSpace(req.SKU),
		Prices: []domain.Price{{
			Value:   domain.PriceValue{CurrencyCode: it.Currency, CentAmount: cents},
			Country: it.Country,
		}},
	}
	if url := strings.TrimSpace(req.ImageURL); url != "" {
		draft.Images = []domain.Image{{URL: url}}
	}

	res, err := it.Sequencer.Run(ctx, sequencer.Sequence{
		Name: SequenceName,
		Stages: []sequencer.Stage{
			sequencer.Create(StageCreateProduct, draft),
			sequencer.Mutate(StagePublish, domain.Publish()),
		},
	})
	if err != nil {
		return domain.ProductRef{}, err
	}
	return res.Ref, nil
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
