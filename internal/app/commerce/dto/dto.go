package dto

import (
	"time"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

// ProductSummaryDTO is a compact product row for catalog listings.
// Price fields come from the current (published) master variant.
type ProductSummaryDTO struct {
	ProductID  string
	Version    int64
	Key        string
	Name       string
	Published  bool
	PriceCents int64
	Currency   string
	// Price is the formatted current price, e.g. "$19.99"; empty when the product has none.
	Price    string
	ImageURL string
}

// ProductDTO contains the full product as shown on a detail page.
// Staged fields differ from the current ones only while HasStagedChanges is set.
type ProductDTO struct {
	ProductSummaryDTO
	Slug             string
	SKU              string
	HasStagedChanges bool
	StagedName       string
	StagedPrice      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderSummaryDTO is a compact order row for order history listings.
type OrderSummaryDTO struct {
	OrderID     string
	Version     int64
	OrderNumber string
	CartID      string
	LineCount   int
	TotalCents  int64
	Currency    string
	Total       string
	CreatedAt   time.Time
}

func ProductSummary(r *domain.Resource) *ProductSummaryDTO {
	out := &ProductSummaryDTO{ProductID: r.ID, Version: r.Version}
	if r.Product == nil {
		return out
	}
	out.Key = r.Product.Key
	out.Name = r.Product.Current.Name
	out.Published = r.Product.Published
	if price, ok := r.Product.FirstPrice(); ok {
		out.PriceCents = price.Value.CentAmount
		out.Currency = price.Value.CurrencyCode
		out.Price = price.Money().Format()
	}
	if imgs := r.Product.Current.MasterVariant.Images; len(imgs) > 0 {
		out.ImageURL = imgs[0].URL
	}
	return out
}

func Product(r *domain.Resource) *ProductDTO {
	out := &ProductDTO{ProductSummaryDTO: *ProductSummary(r), CreatedAt: r.CreatedAt, UpdatedAt: r.LastModifiedAt}
	if r.Product == nil {
		return out
	}
	out.Slug = r.Product.Current.Slug
	out.SKU = r.Product.Current.MasterVariant.SKU
	out.HasStagedChanges = r.Product.HasStagedChanges
	out.StagedName = r.Product.Staged.Name
	if prices := r.Product.Staged.MasterVariant.Prices; len(prices) > 0 {
		out.StagedPrice = prices[0].Money().Format()
	}
	return out
}

func OrderSummary(r *domain.Resource) *OrderSummaryDTO {
	out := &OrderSummaryDTO{OrderID: r.ID, Version: r.Version, CreatedAt: r.CreatedAt}
	if r.Order == nil {
		return out
	}
	out.OrderNumber = r.Order.OrderNumber
	out.CartID = r.Order.Cart.ID
	out.LineCount = len(r.Order.LineItems)
	out.TotalCents = r.Order.TotalCents
	out.Currency = r.Order.Currency
	out.Total = domain.NewMoneyFromCents(r.Order.TotalCents).Format()
	return out
}
