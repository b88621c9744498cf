package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
)

func newPlatform() *Platform {
	clk := clock.NewFake(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	clk.AutoAdvance(time.Second)
	return New(clk)
}

func createPublished(t *testing.T, p *Platform, name string, cents int64) *domain.Resource {
	t.Helper()
	ctx := context.Background()
	r, err := p.CreateResource(ctx, domain.KindProduct, &domain.ProductDraft{
		Name:   name,
		Prices: []domain.Price{{Value: domain.PriceValue{CurrencyCode: "USD", CentAmount: cents}}},
	})
	require.NoError(t, err)
	r, err = p.MutateResource(ctx, domain.KindProduct, r.ID, r.Version, []domain.Action{domain.Publish()})
	require.NoError(t, err)
	return r
}

func TestCreateAndGet(t *testing.T) {
	p := newPlatform()
	ctx := context.Background()

	cart, err := p.CreateResource(ctx, domain.KindCart, &domain.CartDraft{Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cart.Version)

	got, err := p.GetResource(ctx, domain.KindCart, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.Ref(), got.Ref())

	// returned values are copies
	got.Cart.Currency = "EUR"
	again, err := p.GetResource(ctx, domain.KindCart, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, "USD", again.Cart.Currency)

	_, err = p.GetResource(ctx, domain.KindProduct, cart.ID)
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = p.CreateResource(ctx, domain.KindOrder, &domain.CartDraft{Currency: "USD"})
	assert.ErrorIs(t, err, domain.ErrValidationFailure)

	_, err = p.GetResource(ctx, domain.ResourceKind("customer"), "x")
	assert.ErrorIs(t, err, domain.ErrValidationFailure)
}

// TestMutate_VersionChecks verifies stale, future and missing versions are rejected without side effects.
func TestMutate_VersionChecks(t *testing.T) {
	p := newPlatform()
	ctx := context.Background()
	prod := createPublished(t, p, "Bag", 100)
	cart, err := p.CreateResource(ctx, domain.KindCart, &domain.CartDraft{Currency: "USD"})
	require.NoError(t, err)

	add := []domain.Action{domain.AddLineItem(prod.ID, 0, 1)}

	updated, err := p.MutateResource(ctx, domain.KindCart, cart.ID, 1, add)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	_, err = p.MutateResource(ctx, domain.KindCart, cart.ID, 1, add)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	_, err = p.MutateResource(ctx, domain.KindCart, cart.ID, 7, add)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	_, err = p.MutateResource(ctx, domain.KindCart, cart.ID, 0, add)
	assert.ErrorIs(t, err, domain.ErrValidationFailure)

	got, err := p.GetResource(ctx, domain.KindCart, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, 1, got.Cart.LineItems[0].Quantity)
}

// TestMutate_ConcurrentWritersOneWins verifies exactly one writer succeeds per version.
func TestMutate_ConcurrentWritersOneWins(t *testing.T) {
	p := newPlatform()
	ctx := context.Background()
	prod := createPublished(t, p, "Bag", 100)

	const writers = 20
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.MutateResource(ctx, domain.KindProduct, prod.ID, prod.Version, []domain.Action{domain.Publish()})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
		conflicts++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, writers-1, conflicts)
}

func TestCreateOrder(t *testing.T) {
	p := newPlatform()
	ctx := context.Background()
	prod := createPublished(t, p, "Bag", 1250)

	cart, err := p.CreateResource(ctx, domain.KindCart, &domain.CartDraft{Currency: "USD", Country: "US"})
	require.NoError(t, err)
	cart, err = p.MutateResource(ctx, domain.KindCart, cart.ID, cart.Version, []domain.Action{
		domain.AddLineItem(prod.ID, 0, 2),
		domain.SetShippingAddress(domain.Address{Country: "US"}),
	})
	require.NoError(t, err)

	_, err = p.CreateOrder(ctx, domain.Ref{ID: cart.ID, Version: cart.Version - 1}, "N-1")
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	order, err := p.CreateOrder(ctx, cart.Ref(), "N-1")
	require.NoError(t, err)
	assert.Greater(t, order.Version, cart.Version)
	assert.Equal(t, int64(2500), order.Order.TotalCents)

	// the cart was consumed
	_, err = p.CreateOrder(ctx, cart.Ref(), "N-2")
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	consumed, err := p.GetResource(ctx, domain.KindCart, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CartStateOrdered, consumed.Cart.State)

	// order numbers are unique
	other, err := p.CreateResource(ctx, domain.KindCart, &domain.CartDraft{Currency: "USD"})
	require.NoError(t, err)
	other, err = p.MutateResource(ctx, domain.KindCart, other.ID, other.Version, []domain.Action{
		domain.AddLineItem(prod.ID, 0, 1),
		domain.SetShippingAddress(domain.Address{Country: "US"}),
	})
	require.NoError(t, err)
	_, err = p.CreateOrder(ctx, other.Ref(), "N-1")
	assert.ErrorIs(t, err, domain.ErrValidationFailure)

	var types []string
	for _, ev := range p.Events() {
		types = append(types, ev.EventType())
	}
	assert.Contains(t, types, "order.created")
	assert.Contains(t, types, "cart.updated")
}

func TestListPaging(t *testing.T) {
	p := newPlatform()
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		createPublished(t, p, name, 100)
	}

	page, err := p.ListProducts(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "A", page[0].Product.Current.Name)

	page, err = p.ListProducts(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "C", page[0].Product.Current.Name)

	page, err = p.ListProducts(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	orders, err := p.ListOrders(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestAccounts(t *testing.T) {
	p := newPlatform()
	ctx := context.Background()

	c, err := p.SignUp(ctx, domain.CustomerDraft{Email: "Bo@Example.com", Password: "hunter2", FirstName: "Bo"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	_, err = p.SignUp(ctx, domain.CustomerDraft{Email: "bo@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrValidationFailure)
	_, err = p.SignUp(ctx, domain.CustomerDraft{Email: "nope", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrValidationFailure)

	got, err := p.Login(ctx, "bo@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = p.Login(ctx, "bo@example.com", "hunter3")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCanceledContext(t *testing.T) {
	p := newPlatform()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.CreateResource(ctx, domain.KindCart, &domain.CartDraft{Currency: "USD"})
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Equal(t, domain.KindNetworkFailure, domain.KindOf(err))
}
