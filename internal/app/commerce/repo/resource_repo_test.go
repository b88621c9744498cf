package repo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/models/m_resource"
)

// TestInsertMut_Product verifies the product key column is set and the body round-trips.
func TestInsertMut_Product(t *testing.T) {
	r := NewResourceRepo()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	p, err := domain.NewResource("prod-1", &domain.ProductDraft{
		Name:   "Lamp",
		Key:    "lamp",
		Prices: []domain.Price{{Value: domain.PriceValue{CurrencyCode: "USD", CentAmount: 4200}}},
	}, now)
	require.NoError(t, err)

	values, err := buildInsertValues(p)
	require.NoError(t, err)

	assert.Equal(t, "product", values[m_resource.ColKind])
	assert.Equal(t, "prod-1", values[m_resource.ColResourceID])
	assert.Equal(t, int64(1), values[m_resource.ColVersion])
	assert.Equal(t, "lamp", values[m_resource.ColProductKey])
	assert.Equal(t, now, values[m_resource.ColCreatedAt])

	body, ok := values[m_resource.ColBody].(string)
	require.True(t, ok)
	back, err := DecodeBody(1, body)
	require.NoError(t, err)
	assert.Equal(t, p.Product.Current.Name, back.Product.Current.Name)
	assert.Equal(t, p.Ref(), back.Ref())

	mut, err := r.InsertMut(p)
	require.NoError(t, err)
	require.NotNil(t, mut)
}

// TestInsertMut_CartHasNoKey verifies non-product rows leave product_key NULL.
func TestInsertMut_CartHasNoKey(t *testing.T) {
	cart, err := domain.NewResource("cart-1", &domain.CartDraft{Currency: "USD"}, time.Now().UTC())
	require.NoError(t, err)

	values, err := buildInsertValues(cart)
	require.NoError(t, err)

	v, ok := values[m_resource.ColProductKey]
	require.True(t, ok, "expected key %s in insert map", m_resource.ColProductKey)
	assert.Nil(t, v)
}

// TestDecodeBody_VersionColumnWins verifies the stored version overrides the one in the body.
func TestDecodeBody_VersionColumnWins(t *testing.T) {
	cart, err := domain.NewResource("cart-1", &domain.CartDraft{Currency: "USD"}, time.Now().UTC())
	require.NoError(t, err)
	body, err := EncodeBody(cart)
	require.NoError(t, err)

	got, err := DecodeBody(7, body)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Version)
	assert.Equal(t, "USD", got.Cart.Currency)

	_, err = DecodeBody(1, "{not json")
	assert.Error(t, err)
}

func TestNewOutboxEvent(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ev, err := NewOutboxEvent(&domain.OrderCreatedEvent{
		Order:       domain.Ref{ID: "o1", Version: 1},
		Cart:        domain.Ref{ID: "c1", Version: 2},
		OrderNumber: "ORD-1",
		TotalCents:  999,
		Currency:    "USD",
		CreatedAt:   now,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "order.created", ev.EventType)
	assert.Equal(t, "order", ev.AggregateKind)
	assert.Equal(t, "o1", ev.AggregateID)
	assert.Equal(t, int64(1), ev.AggregateVersion)
	assert.Equal(t, now, ev.CreatedAtUTC)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(ev.PayloadJSON), &payload))
	assert.Equal(t, "ORD-1", payload["order_number"])
	assert.Equal(t, "c1", payload["cart_id"])

	upd, err := NewOutboxEvent(&domain.ResourceUpdatedEvent{
		Kind:        domain.KindCart,
		Ref:         domain.Ref{ID: "c1", Version: 3},
		PrevVersion: 2,
		Actions:     []string{"addLineItem"},
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	assert.Equal(t, "cart.updated", upd.EventType)
	assert.Equal(t, int64(3), upd.AggregateVersion)

	assert.NotNil(t, NewOutboxRepo().InsertMut(upd))
	assert.Nil(t, NewOutboxRepo().InsertMut(nil))
}
