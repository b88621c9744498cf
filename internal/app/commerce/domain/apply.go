package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProductLookup resolves a product referenced by an addLineItem action.
type ProductLookup func(productID string) (*Resource, error)

// NewResource builds version 1 of a resource from a create draft.
func NewResource(id string, draft Draft, now time.Time) (*Resource, error) {
	if id == "" {
		return nil, ErrEmptyResourceID
	}
	r := &Resource{ID: id, Version: 1, CreatedAt: now, LastModifiedAt: now}

	switch d := draft.(type) {
	case *CartDraft:
		if d == nil || strings.TrimSpace(d.Currency) == "" {
			return nil, fmt.Errorf("%w: cart currency is required", ErrValidationFailure)
		}
		r.Kind = KindCart
		r.Cart = &CartData{
			Currency:  strings.ToUpper(strings.TrimSpace(d.Currency)),
			Country:   strings.ToUpper(strings.TrimSpace(d.Country)),
			State:     CartStateActive,
			LineItems: []LineItem{},
		}
	case *ProductDraft:
		if d == nil {
			return nil, fmt.Errorf("%w: product draft is required", ErrValidationFailure)
		}
		if err := ValidateProductName(d.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailure, err)
		}
		if err := validatePrices(d.Prices); err != nil {
			return nil, err
		}
		proj := ProductProjection{
			Name: strings.TrimSpace(d.Name),
			Slug: d.Slug,
			MasterVariant: Variant{
				ID:     MasterVariantID,
				SKU:    d.SKU,
				Prices: append([]Price(nil), d.Prices...),
				Images: append([]Image(nil), d.Images...),
			},
		}
		r.Kind = KindProduct
		r.Product = &ProductData{Key: d.Key, Current: proj, Staged: proj.clone()}
	default:
		return nil, fmt.Errorf("%w: unsupported draft %T", ErrValidationFailure, draft)
	}
	return r, nil
}

// Apply applies a batch of actions and returns the next version of the resource.
// The batch is all-or-nothing: on error r is left untouched and no new version exists.
func (r *Resource) Apply(actions []Action, lookup ProductLookup, now time.Time) (*Resource, error) {
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: at least one action is required", ErrValidationFailure)
	}
	next := r.Clone()

	for i, a := range actions {
		var err error
		switch r.Kind {
		case KindCart:
			err = next.applyCartAction(a, lookup)
		case KindProduct:
			err = next.applyProductAction(a)
		default:
			err = fmt.Errorf("%w: %s resources cannot be updated", ErrValidationFailure, r.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i, a.Action, err)
		}
	}

	next.Version = r.Version + 1
	next.LastModifiedAt = now
	return next, nil
}

func (r *Resource) applyCartAction(a Action, lookup ProductLookup) error {
	c := r.Cart
	if c.State != CartStateActive {
		return fmt.Errorf("%w: cart is %s", ErrValidationFailure, c.State)
	}

	switch a.Action {
	case ActionAddLineItem:
		if a.ProductID == "" {
			return fmt.Errorf("%w: productId is required", ErrValidationFailure)
		}
		if a.Quantity <= 0 {
			return fmt.Errorf("%w: %w", ErrValidationFailure, ErrInvalidQuantity)
		}
		if lookup == nil {
			return fmt.Errorf("%w: product lookup unavailable", ErrValidationFailure)
		}
		product, err := lookup(a.ProductID)
		if errors.Is(err, ErrResourceNotFound) {
			return fmt.Errorf("%w: %w", ErrValidationFailure, err)
		}
		if err != nil {
			return err
		}
		if product.Product == nil || !product.Product.Published {
			return fmt.Errorf("%w: product %s is not published", ErrValidationFailure, a.ProductID)
		}
		variantID := a.VariantID
		if variantID == 0 {
			variantID = MasterVariantID
		}
		if variantID != product.Product.Current.MasterVariant.ID {
			return fmt.Errorf("%w: product %s has no variant %d", ErrValidationFailure, a.ProductID, variantID)
		}
		price, ok := selectPrice(product.Product.Current.MasterVariant.Prices, c.Currency, c.Country)
		if !ok {
			return fmt.Errorf("%w: product %s has no %s price", ErrValidationFailure, a.ProductID, c.Currency)
		}
		for i := range c.LineItems {
			if c.LineItems[i].ProductID == a.ProductID && c.LineItems[i].VariantID == variantID {
				c.LineItems[i].Quantity += a.Quantity
				return nil
			}
		}
		c.LineItems = append(c.LineItems, LineItem{
			ProductID: a.ProductID,
			VariantID: variantID,
			Name:      product.Product.Current.Name,
			Quantity:  a.Quantity,
			Price:     price,
		})
		return nil

	case ActionSetShippingAddress:
		if a.Address == nil || strings.TrimSpace(a.Address.Country) == "" {
			return fmt.Errorf("%w: address with country is required", ErrValidationFailure)
		}
		addr := *a.Address
		c.ShippingAddress = &addr
		return nil
	}
	return fmt.Errorf("%w: unknown cart action %q", ErrValidationFailure, a.Action)
}

func (r *Resource) applyProductAction(a Action) error {
	p := r.Product

	switch a.Action {
	case ActionSetPrices:
		variantID := a.VariantID
		if variantID == 0 {
			variantID = MasterVariantID
		}
		if variantID != p.Staged.MasterVariant.ID {
			return fmt.Errorf("%w: unknown variant %d", ErrValidationFailure, variantID)
		}
		if err := validatePrices(a.Prices); err != nil {
			return err
		}
		p.Staged.MasterVariant.Prices = append([]Price(nil), a.Prices...)
		p.HasStagedChanges = true
		return nil

	case ActionPublish:
		p.Current = p.Staged.clone()
		p.Published = true
		p.HasStagedChanges = false
		return nil
	}
	return fmt.Errorf("%w: unknown product action %q", ErrValidationFailure, a.Action)
}

// NewOrder creates an order from an active cart at the cart's expected version.
// The order starts at cart.Version+1 so its version is always ahead of the cart it came from.
func NewOrder(id string, cart *Resource, orderNumber string, now time.Time) (*Resource, error) {
	if id == "" {
		return nil, ErrEmptyResourceID
	}
	if cart == nil || cart.Kind != KindCart || cart.Cart == nil {
		return nil, fmt.Errorf("%w: orders are created from carts", ErrValidationFailure)
	}
	if strings.TrimSpace(orderNumber) == "" {
		return nil, fmt.Errorf("%w: orderNumber is required", ErrValidationFailure)
	}
	c := cart.Cart
	if c.State != CartStateActive {
		return nil, fmt.Errorf("%w: cart %s is %s", ErrValidationFailure, cart.ID, c.State)
	}
	if len(c.LineItems) == 0 {
		return nil, fmt.Errorf("%w: cart %s has no line items", ErrValidationFailure, cart.ID)
	}
	if c.ShippingAddress == nil {
		return nil, fmt.Errorf("%w: cart %s has no shipping address", ErrValidationFailure, cart.ID)
	}

	snapshot := c.clone()
	return &Resource{
		Kind:           KindOrder,
		ID:             id,
		Version:        cart.Version + 1,
		CreatedAt:      now,
		LastModifiedAt: now,
		Order: &OrderData{
			OrderNumber:     orderNumber,
			Cart:            cart.Ref(),
			Currency:        c.Currency,
			LineItems:       snapshot.LineItems,
			ShippingAddress: *snapshot.ShippingAddress,
			TotalCents:      c.TotalCents(),
		},
	}, nil
}

// MarkOrdered returns the next version of a cart that has been turned into an order.
func (r *Resource) MarkOrdered(now time.Time) *Resource {
	next := r.Clone()
	next.Cart.State = CartStateOrdered
	next.Version = r.Version + 1
	next.LastModifiedAt = now
	return next
}

// CheckVersion compares the expected version against the stored one.
func CheckVersion(stored *Resource, expected int64) error {
	if expected <= 0 {
		return fmt.Errorf("%w: %s %s requires a version", ErrValidationFailure, stored.Kind, stored.ID)
	}
	if stored.Version != expected {
		return fmt.Errorf("%w: %s %s expected version %d, current version %d",
			ErrVersionConflict, stored.Kind, stored.ID, expected, stored.Version)
	}
	return nil
}

// ValidateProductName trims and bounds a product name.
func ValidateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyProductName
	}
	if len(trimmed) > 255 {
		return ErrProductNameTooLong
	}
	return nil
}

func validatePrices(prices []Price) error {
	for _, p := range prices {
		if strings.TrimSpace(p.Value.CurrencyCode) == "" {
			return fmt.Errorf("%w: price currency is required", ErrValidationFailure)
		}
		if p.Value.CentAmount < 0 {
			return fmt.Errorf("%w: %w", ErrValidationFailure, ErrNegativePrice)
		}
	}
	return nil
}

// selectPrice prefers a price for the cart country and falls back to a country-less price.
func selectPrice(prices []Price, currency, country string) (Price, bool) {
	var fallback *Price
	for i := range prices {
		p := prices[i]
		if !strings.EqualFold(p.Value.CurrencyCode, currency) {
			continue
		}
		if country != "" && strings.EqualFold(p.Country, country) {
			return p, true
		}
		if fallback == nil && (p.Country == "" || country == "") {
			fallback = &prices[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Price{}, false
}
