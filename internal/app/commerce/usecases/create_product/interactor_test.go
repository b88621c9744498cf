package create_product

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/pkg/sequencer"
	"github.com/murkotick/storefront-sequencer/internal/platform/memory"
	"github.com/murkotick/storefront-sequencer/internal/platform/spy"
)

func TestExecute_CreateThenPublish(t *testing.T) {
	store := memory.New(nil)
	sp := spy.Wrap(store)
	it := NewInteractor(sequencer.New(sp, sequencer.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}), "USD", "US")

	ref, err := it.Execute(context.Background(), Request{
		Name:     "  Desk Lamp XL ",
		Key:      "desk-lamp",
		Price:    "49.90",
		ImageURL: "https://img.example.com/lamp.png",
	})
	require.NoError(t, err)

	assert.Equal(t, []spy.Op{spy.OpCreate, spy.OpMutate}, sp.Ops())
	assert.Equal(t, int64(1), sp.Calls()[1].Version)
	assert.Equal(t, int64(2), ref.Version)

	p, err := store.GetResource(context.Background(), domain.KindProduct, ref.ID)
	require.NoError(t, err)
	assert.True(t, p.Product.Published)
	assert.Equal(t, "Desk Lamp XL", p.Product.Current.Name)
	assert.Equal(t, "desk-lamp-xl", p.Product.Current.Slug)
	price, ok := p.Product.FirstPrice()
	require.True(t, ok)
	assert.Equal(t, int64(4990), price.Value.CentAmount)
	require.Len(t, p.Product.Current.MasterVariant.Images, 1)
}

func TestExecute_RejectsBadInput(t *testing.T) {
	sp := spy.Wrap(memory.New(nil))
	it := NewInteractor(sequencer.New(sp, sequencer.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}), "USD", "US")
	ctx := context.Background()

	_, err := it.Execute(ctx, Request{Name: " ", Price: "1"})
	assert.ErrorIs(t, err, domain.ErrEmptyProductName)
	_, err = it.Execute(ctx, Request{Name: "Chair", Price: "free"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Empty(t, sp.Calls())
}

// TestExecute_DuplicateKey verifies a rejected create leaves no resource behind.
func TestExecute_DuplicateKey(t *testing.T) {
	store := memory.New(nil)
	orphans := &sequencer.MemoryOrphanRecorder{}
	it := NewInteractor(sequencer.New(store, sequencer.Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Orphans: orphans,
	}), "USD", "US")
	ctx := context.Background()

	_, err := it.Execute(ctx, Request{Name: "Chair", Key: "chair", Price: "20"})
	require.NoError(t, err)
	_, err = it.Execute(ctx, Request{Name: "Chair 2", Key: "chair", Price: "25"})

	serr, ok := sequencer.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 1, serr.Stage)
	assert.Equal(t, domain.KindValidationFailure, serr.Kind)
	assert.Empty(t, orphans.Orphans())
	assert.Equal(t, 1, store.Count(domain.KindProduct))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "blue-mug-2", slugify("Blue  Mug #2!"))
	assert.Equal(t, "", slugify("---"))
}
