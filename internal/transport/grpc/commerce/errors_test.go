package commerce

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/platform/memory"
	commercev1 "github.com/murkotick/storefront-sequencer/internal/transport/grpc/commercev1"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("x: %w", domain.ErrVersionConflict), codes.Aborted},
		{domain.ErrResourceNotFound, codes.NotFound},
		{fmt.Errorf("%w: bad", domain.ErrValidationFailure), codes.InvalidArgument},
		{domain.ErrZeroPrice, codes.InvalidArgument},
		{fmt.Errorf("price %q: %w", "abc", domain.ErrInvalidAmount), codes.InvalidArgument},
		{fmt.Errorf("cart c1: %w", domain.ErrMissingVersion), codes.DataLoss},
		{fmt.Errorf("%w: %w", domain.ErrValidationFailure, domain.ErrInvalidCredentials), codes.Unauthenticated},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{domain.ErrNetworkFailure, codes.Unavailable},
		{fmt.Errorf("boom"), codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, status.Code(mapError(tc.err)), tc.err.Error())
	}
	assert.NoError(t, mapError(nil))
}

func TestHandler_Validation(t *testing.T) {
	store := memory.New(nil)
	h := NewHandler(store, store, store)
	ctx := context.Background()

	_, err := h.CreateResource(ctx, &commercev1.CreateResourceRequest{Kind: "order", Cart: &domain.CartDraft{Currency: "USD"}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.CreateResource(ctx, &commercev1.CreateResourceRequest{Kind: "cart"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.MutateResource(ctx, &commercev1.MutateResourceRequest{Kind: "cart", ID: "c", Version: 1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.CreateOrder(ctx, &commercev1.CreateOrderRequest{CartID: "c", CartVersion: 1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.ListProducts(ctx, &commercev1.ListRequest{PageToken: "-5"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandler_ListPaging(t *testing.T) {
	store := memory.New(nil)
	h := NewHandler(store, store, store)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := store.CreateResource(ctx, domain.KindProduct, &domain.ProductDraft{Name: fmt.Sprintf("P%d", i)})
		assert.NoError(t, err)
	}

	reply, err := h.ListProducts(ctx, &commercev1.ListRequest{PageSize: 2})
	assert.NoError(t, err)
	assert.Len(t, reply.Resources, 2)
	assert.Equal(t, "2", reply.NextPageToken)

	reply, err = h.ListProducts(ctx, &commercev1.ListRequest{PageSize: 2, PageToken: reply.NextPageToken})
	assert.NoError(t, err)
	assert.Len(t, reply.Resources, 1)
	assert.Empty(t, reply.NextPageToken)
}
