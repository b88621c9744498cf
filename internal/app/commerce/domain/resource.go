package domain

import (
	"fmt"
	"time"
)

// ResourceKind names a collection of versioned resources on the commerce platform.
type ResourceKind string

const (
	KindProduct ResourceKind = "product"
	KindCart    ResourceKind = "cart"
	KindOrder   ResourceKind = "order"
)

// Valid reports whether k is one of the known resource kinds.
func (k ResourceKind) Valid() bool {
	switch k {
	case KindProduct, KindCart, KindOrder:
		return true
	}
	return false
}

// Ref identifies one versioned resource and the version last observed for it.
// A Version <= 0 means the version is unknown.
type Ref struct {
	ID      string `json:"id"`
	Version int64  `json:"version"`
}

// HasVersion reports whether the ref carries a usable version.
func (r Ref) HasVersion() bool {
	return r.Version > 0
}

func (r Ref) String() string {
	return fmt.Sprintf("%s@v%d", r.ID, r.Version)
}

// OrderRef and ProductRef are the results of the checkout and price update sequences.
type (
	OrderRef   = Ref
	ProductRef = Ref
)

// Resource is a versioned entity as returned by the platform.
// Exactly one of Product, Cart or Order is set, matching Kind.
type Resource struct {
	Kind           ResourceKind `json:"kind"`
	ID             string       `json:"id"`
	Version        int64        `json:"version"`
	CreatedAt      time.Time    `json:"createdAt"`
	LastModifiedAt time.Time    `json:"lastModifiedAt"`

	Product *ProductData `json:"product,omitempty"`
	Cart    *CartData    `json:"cart,omitempty"`
	Order   *OrderData   `json:"order,omitempty"`
}

// Ref returns the id/version pair of the resource.
func (r *Resource) Ref() Ref {
	if r == nil {
		return Ref{}
	}
	return Ref{ID: r.ID, Version: r.Version}
}

// Clone returns a deep copy so callers and stores never share mutable state.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	out := *r
	if r.Product != nil {
		p := r.Product.clone()
		out.Product = &p
	}
	if r.Cart != nil {
		c := r.Cart.clone()
		out.Cart = &c
	}
	if r.Order != nil {
		o := r.Order.clone()
		out.Order = &o
	}
	return &out
}

// Price is a variant price in minor units for a country.
type Price struct {
	Value   PriceValue `json:"value"`
	Country string     `json:"country,omitempty"`
}

type PriceValue struct {
	CurrencyCode string `json:"currencyCode"`
	CentAmount   int64  `json:"centAmount"`
}

// Money returns the price value as Money.
func (p Price) Money() *Money {
	return NewMoneyFromCents(p.Value.CentAmount)
}

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"w,omitempty"`
	Height int    `json:"h,omitempty"`
}

// MasterVariantID is the variant id the platform assigns to a product's master variant.
const MasterVariantID = 1

// Variant is a sellable variant of a product.
type Variant struct {
	ID     int     `json:"id"`
	SKU    string  `json:"sku,omitempty"`
	Prices []Price `json:"prices,omitempty"`
	Images []Image `json:"images,omitempty"`
}

// ProductProjection is one view (current or staged) of a product's catalog data.
type ProductProjection struct {
	Name          string  `json:"name"`
	Slug          string  `json:"slug,omitempty"`
	MasterVariant Variant `json:"masterVariant"`
}

// ProductData is the body of a product resource.
// Current is what shoppers see; Staged collects edits until the next publish.
type ProductData struct {
	Key              string            `json:"key,omitempty"`
	Published        bool              `json:"published"`
	HasStagedChanges bool              `json:"hasStagedChanges"`
	Current          ProductProjection `json:"current"`
	Staged           ProductProjection `json:"staged"`
}

// FirstPrice returns the first current price of the master variant, if any.
func (p *ProductData) FirstPrice() (Price, bool) {
	if p == nil || len(p.Current.MasterVariant.Prices) == 0 {
		return Price{}, false
	}
	return p.Current.MasterVariant.Prices[0], true
}

func (p ProductData) clone() ProductData {
	out := p
	out.Current = p.Current.clone()
	out.Staged = p.Staged.clone()
	return out
}

func (p ProductProjection) clone() ProductProjection {
	out := p
	out.MasterVariant.Prices = append([]Price(nil), p.MasterVariant.Prices...)
	out.MasterVariant.Images = append([]Image(nil), p.MasterVariant.Images...)
	return out
}

// CartState is the lifecycle state of a remote cart.
type CartState string

const (
	CartStateActive  CartState = "Active"
	CartStateOrdered CartState = "Ordered"
)

// LineItem is a product quantity inside a remote cart or order.
type LineItem struct {
	ProductID string `json:"productId"`
	VariantID int    `json:"variantId"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     Price  `json:"price"`
}

// TotalCents returns quantity * unit price in minor units.
func (li LineItem) TotalCents() int64 {
	return li.Price.Value.CentAmount * int64(li.Quantity)
}

// CartData is the body of a cart resource.
type CartData struct {
	Currency        string     `json:"currency"`
	Country         string     `json:"country,omitempty"`
	State           CartState  `json:"cartState"`
	LineItems       []LineItem `json:"lineItems"`
	ShippingAddress *Address   `json:"shippingAddress,omitempty"`
}

// TotalCents sums all line item totals.
func (c *CartData) TotalCents() int64 {
	var total int64
	for _, li := range c.LineItems {
		total += li.TotalCents()
	}
	return total
}

func (c CartData) clone() CartData {
	out := c
	out.LineItems = append([]LineItem(nil), c.LineItems...)
	if c.ShippingAddress != nil {
		a := *c.ShippingAddress
		out.ShippingAddress = &a
	}
	return out
}

// OrderData is the body of an order resource.
type OrderData struct {
	OrderNumber     string     `json:"orderNumber"`
	Cart            Ref        `json:"cart"`
	Currency        string     `json:"currency"`
	LineItems       []LineItem `json:"lineItems"`
	ShippingAddress Address    `json:"shippingAddress"`
	TotalCents      int64      `json:"totalCents"`
}

func (o OrderData) clone() OrderData {
	out := o
	out.LineItems = append([]LineItem(nil), o.LineItems...)
	return out
}

// Draft is the payload of a create call. Implementations: *CartDraft, *ProductDraft.
type Draft interface {
	ResourceKind() ResourceKind
}

// CartDraft creates an empty active cart.
type CartDraft struct {
	Currency string `json:"currency"`
	Country  string `json:"country,omitempty"`
}

func (*CartDraft) ResourceKind() ResourceKind { return KindCart }

// ProductDraft creates an unpublished product with a single master variant.
type ProductDraft struct {
	Key    string  `json:"key,omitempty"`
	Name   string  `json:"name"`
	Slug   string  `json:"slug,omitempty"`
	SKU    string  `json:"sku,omitempty"`
	Prices []Price `json:"prices,omitempty"`
	Images []Image `json:"images,omitempty"`
}

func (*ProductDraft) ResourceKind() ResourceKind { return KindProduct }
