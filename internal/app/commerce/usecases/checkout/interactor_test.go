package checkout

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
	"github.com/murkotick/storefront-sequencer/internal/pkg/ordernum"
	"github.com/murkotick/storefront-sequencer/internal/pkg/sequencer"
	"github.com/murkotick/storefront-sequencer/internal/platform/memory"
	"github.com/murkotick/storefront-sequencer/internal/platform/spy"
)

type fixture struct {
	store   *memory.Platform
	spy     *spy.Platform
	orphans *sequencer.MemoryOrphanRecorder
	it      *Interactor
	shirt   *domain.Resource
	mug     *domain.Resource
}

func setup(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewFake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	clk.AutoAdvance(time.Millisecond)
	store := memory.New(clk)

	f := &fixture{store: store, spy: spy.Wrap(store), orphans: &sequencer.MemoryOrphanRecorder{}}
	seq := sequencer.New(f.spy, sequencer.Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Orphans: f.orphans,
		Clock:   clk,
	})
	f.it = NewInteractor(seq, ordernum.NewUUIDNumberer(ordernum.DefaultPrefix), "usd", "us")
	f.shirt = publish(t, store, "T-Shirt", 2000)
	f.mug = publish(t, store, "Mug", 850)
	return f
}

func publish(t *testing.T, store *memory.Platform, name string, cents int64) *domain.Resource {
	t.Helper()
	ctx := context.Background()
	p, err := store.CreateResource(ctx, domain.KindProduct, &domain.ProductDraft{
		Name:   name,
		Prices: []domain.Price{{Value: domain.PriceValue{CurrencyCode: "USD", CentAmount: cents}, Country: "US"}},
	})
	require.NoError(t, err)
	p, err = store.MutateResource(ctx, domain.KindProduct, p.ID, p.Version, []domain.Action{domain.Publish()})
	require.NoError(t, err)
	return p
}

func (f *fixture) snapshot(t *testing.T) *domain.CartSnapshot {
	t.Helper()
	c := domain.NewCartSnapshot()
	require.NoError(t, c.Add(f.shirt))
	require.NoError(t, c.Add(f.mug))
	require.NoError(t, c.Add(f.shirt))
	return c
}

// TestExecute_PlacesOrder covers the create → batched mutate → order path.
func TestExecute_PlacesOrder(t *testing.T) {
	f := setup(t)
	cart := f.snapshot(t)

	resp, err := f.it.Execute(context.Background(), Request{Cart: cart, Address: domain.Address{City: "Lisbon"}})
	require.NoError(t, err)

	assert.Equal(t, []spy.Op{spy.OpCreate, spy.OpMutate, spy.OpCreateOrder}, f.spy.Ops())

	mutate := f.spy.Calls()[1]
	require.Len(t, mutate.Actions, 3, "one addLineItem per distinct line plus the address")
	assert.Equal(t, domain.ActionAddLineItem, mutate.Actions[0].Action)
	assert.Equal(t, 2, mutate.Actions[0].Quantity)
	assert.Equal(t, domain.ActionAddLineItem, mutate.Actions[1].Action)
	assert.Equal(t, domain.ActionSetShippingAddress, mutate.Actions[2].Action)
	assert.Equal(t, "Lisbon", mutate.Actions[2].Address.City)
	assert.Equal(t, domain.DefaultCountry, mutate.Actions[2].Address.Country)

	assert.Regexp(t, `^ORD-[0-9A-F]{32}$`, resp.OrderNumber)
	assert.Equal(t, int64(2*2000+850), resp.TotalCents)
	assert.Equal(t, "USD", resp.Currency)
	assert.True(t, resp.Order.HasVersion())

	assert.Equal(t, 2, cart.Len(), "the snapshot is never modified by checkout")
}

// TestExecute_EmptyCart verifies nothing is sent for an empty snapshot.
func TestExecute_EmptyCart(t *testing.T) {
	f := setup(t)

	_, err := f.it.Execute(context.Background(), Request{Cart: domain.NewCartSnapshot()})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = f.it.Execute(context.Background(), Request{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.Empty(t, f.spy.Calls())
}

func TestExecute_MissingVersionAfterMutate(t *testing.T) {
	f := setup(t)
	f.spy.On(spy.OpMutate, 1, spy.Fault{StripVersion: true})

	_, err := f.it.Execute(context.Background(), Request{Cart: f.snapshot(t)})

	serr, ok := sequencer.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 2, serr.Stage)
	assert.Equal(t, StageFillCart, serr.StageName)
	assert.Equal(t, domain.KindMissingVersion, serr.Kind)
	assert.Zero(t, f.spy.Count(spy.OpCreateOrder))
	assert.Zero(t, f.store.Count(domain.KindOrder))
	assert.Len(t, f.orphans.Orphans(), 1)
}

func TestExecute_ProductUnpublishedMeanwhile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	draft, err := f.store.CreateResource(ctx, domain.KindProduct, &domain.ProductDraft{
		Name:   "Draft",
		Prices: []domain.Price{{Value: domain.PriceValue{CurrencyCode: "USD", CentAmount: 100}}},
	})
	require.NoError(t, err)

	cart := domain.NewCartSnapshot()
	require.NoError(t, cart.AddLine(domain.CartLine{ProductID: draft.ID, Quantity: 1}))

	_, err = f.it.Execute(ctx, Request{Cart: cart})
	serr, ok := sequencer.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 2, serr.Stage)
	assert.Equal(t, domain.KindValidationFailure, serr.Kind)
}

func TestExecute_UsesCustomerForAddress(t *testing.T) {
	f := setup(t)
	customer := &domain.Customer{ID: "c1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}

	_, err := f.it.Execute(context.Background(), Request{Cart: f.snapshot(t), Customer: customer})
	require.NoError(t, err)

	addr := f.spy.Calls()[1].Actions[2].Address
	assert.Equal(t, "Ada", addr.FirstName)
	assert.Equal(t, "ada@example.com", addr.Email)
}
