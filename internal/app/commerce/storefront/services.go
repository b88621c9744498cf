package storefront

import (
	"log/slog"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/queries/get_product"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/queries/list_orders"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/queries/list_products"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/usecases/checkout"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/usecases/create_product"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/usecases/update_price"
	"github.com/murkotick/storefront-sequencer/internal/pkg/sequencer"
)

// Backend is everything a storefront needs from one commerce platform.
type Backend interface {
	contracts.Platform
	contracts.ReadModel
	contracts.Accounts
}

type Settings struct {
	Currency             string
	Country              string
	AdminEmail           string
	RefreshBeforePublish bool
}

// NewServices wires the usecases and queries over one backend. seq must run against the same backend.
func NewServices(b Backend, seq *sequencer.Sequencer, numberer contracts.OrderNumberer, st Settings, logger *slog.Logger) Services {
	return Services{
		Platform:      b,
		Accounts:      b,
		Checkout:      checkout.NewInteractor(seq, numberer, st.Currency, st.Country),
		UpdatePrice:   update_price.NewInteractor(seq, st.Currency, st.Country, st.RefreshBeforePublish),
		CreateProduct: create_product.NewInteractor(seq, st.Currency, st.Country),
		Product:       get_product.NewHandler(b),
		Products:      list_products.NewHandler(b),
		Orders:        list_orders.NewHandler(b),
		AdminEmail:    st.AdminEmail,
		Logger:        logger,
	}
}
