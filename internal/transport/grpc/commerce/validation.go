package commerce

import (
	"fmt"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	commercev1 "github.com/murkotick/storefront-sequencer/internal/transport/grpc/commercev1"
)

func validateKind(kind string) (domain.ResourceKind, error) {
	k := domain.ResourceKind(kind)
	if !k.Valid() {
		return "", fmt.Errorf("kind %q is not one of product, cart, order", kind)
	}
	return k, nil
}

// draftFor picks the draft matching kind; exactly one must be set.
func draftFor(req *commercev1.CreateResourceRequest) (domain.ResourceKind, domain.Draft, error) {
	if req == nil {
		return "", nil, fmt.Errorf("request is required")
	}
	kind, err := validateKind(req.Kind)
	if err != nil {
		return "", nil, err
	}
	switch {
	case kind == domain.KindCart && req.Cart != nil && req.Product == nil:
		return kind, req.Cart, nil
	case kind == domain.KindProduct && req.Product != nil && req.Cart == nil:
		return kind, req.Product, nil
	}
	return "", nil, fmt.Errorf("exactly one %s draft is required", kind)
}

func validateGetResource(req *commercev1.GetResourceRequest) (domain.ResourceKind, error) {
	if req == nil {
		return "", fmt.Errorf("request is required")
	}
	if req.ID == "" {
		return "", fmt.Errorf("id is required")
	}
	return validateKind(req.Kind)
}

func validateMutateResource(req *commercev1.MutateResourceRequest) (domain.ResourceKind, error) {
	if req == nil {
		return "", fmt.Errorf("request is required")
	}
	if req.ID == "" {
		return "", fmt.Errorf("id is required")
	}
	if req.Version <= 0 {
		return "", fmt.Errorf("version is required")
	}
	if len(req.Actions) == 0 {
		return "", fmt.Errorf("at least one action is required")
	}
	return validateKind(req.Kind)
}

func validateCreateOrder(req *commercev1.CreateOrderRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	if req.CartID == "" {
		return fmt.Errorf("cartId is required")
	}
	if req.CartVersion <= 0 {
		return fmt.Errorf("cartVersion is required")
	}
	if req.OrderNumber == "" {
		return fmt.Errorf("orderNumber is required")
	}
	return nil
}

const maxPageSize = 200

func pageOf(req *commercev1.ListRequest) (limit, offset int, err error) {
	limit = 50
	if req == nil {
		return limit, 0, nil
	}
	if req.PageSize > 0 {
		limit = int(req.PageSize)
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = commercev1.DecodePageToken(req.PageToken)
	return limit, offset, err
}
