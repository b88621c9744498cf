// Package storefront holds one shopper's session: who is logged in and what is in the local cart.
package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/dto"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/queries/get_product"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/queries/list_orders"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/queries/list_products"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/usecases/checkout"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/usecases/create_product"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/usecases/update_price"
)

// DefaultAdminEmail is the account that gets admin rights when none is configured.
const DefaultAdminEmail = "admin@shopswift.com"

// Services are the collaborators a Session delegates to. They are shared between sessions.
type Services struct {
	Platform      contracts.Platform
	Accounts      contracts.Accounts
	Checkout      *checkout.Interactor
	UpdatePrice   *update_price.Interactor
	CreateProduct *create_product.Interactor
	Product       *get_product.Handler
	Products      *list_products.Handler
	Orders        *list_orders.Handler
	AdminEmail    string
	Logger        *slog.Logger
}

// Session is the explicit per-shopper state: the logged-in customer (if any) and the cart snapshot.
type Session struct {
	svc Services

	mu       sync.RWMutex
	customer *domain.Customer
	cart     *domain.CartSnapshot
}

func NewSession(svc Services) *Session {
	if svc.AdminEmail == "" {
		svc.AdminEmail = DefaultAdminEmail
	}
	if svc.Logger == nil {
		svc.Logger = slog.Default()
	}
	return &Session{svc: svc, cart: domain.NewCartSnapshot()}
}

func (s *Session) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	c, err := s.svc.Accounts.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setCustomer(c)
	s.svc.Logger.InfoContext(ctx, "customer_logged_in", "customer_id", c.ID, "admin", s.IsAdmin())
	return c, nil
}

// SignUp creates the account and logs it in.
func (s *Session) SignUp(ctx context.Context, draft domain.CustomerDraft) (*domain.Customer, error) {
	c, err := s.svc.Accounts.SignUp(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.setCustomer(c)
	s.svc.Logger.InfoContext(ctx, "customer_signed_up", "customer_id", c.ID)
	return c, nil
}

// Logout forgets the customer and empties the cart.
func (s *Session) Logout() {
	s.mu.Lock()
	s.customer = nil
	s.mu.Unlock()
	s.cart.Clear()
}

func (s *Session) Customer() *domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.customer == nil {
		return nil
	}
	c := *s.customer
	return &c
}

// IsAdmin reports whether the logged-in customer's email matches the admin email.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customer != nil && strings.EqualFold(strings.TrimSpace(s.customer.Email), s.svc.AdminEmail)
}

// Cart exposes the session's snapshot for display.
func (s *Session) Cart() *domain.CartSnapshot {
	return s.cart
}

// AddToCart fetches the product and adds one unit of it.
func (s *Session) AddToCart(ctx context.Context, productID string) error {
	p, err := s.svc.Platform.GetResource(ctx, domain.KindProduct, productID)
	if err != nil {
		return err
	}
	if p.Product == nil || !p.Product.Published {
		return fmt.Errorf("%w: product %s is not available", domain.ErrValidationFailure, productID)
	}
	return s.cart.Add(p)
}

func (s *Session) UpdateQuantity(productID string, delta int) {
	s.cart.UpdateQuantity(productID, delta)
}

// PlaceOrder checks out the current cart. Only the submitted lines leave the cart, and only
// when the order was created.
func (s *Session) PlaceOrder(ctx context.Context, addr domain.Address) (*checkout.Response, error) {
	lines := s.cart.Lines()
	resp, err := s.svc.Checkout.Execute(ctx, checkout.Request{
		Cart:     domain.NewCartSnapshot(lines...),
		Address:  addr,
		Customer: s.Customer(),
	})
	if err != nil {
		return nil, err
	}
	s.cart.Subtract(lines)
	return resp, nil
}

func (s *Session) UpdatePrice(ctx context.Context, productID, price string) (domain.ProductRef, error) {
	if err := s.requireAdmin(); err != nil {
		return domain.ProductRef{}, err
	}
	return s.svc.UpdatePrice.Execute(ctx, update_price.Request{ProductID: productID, Price: price})
}

func (s *Session) CreateProduct(ctx context.Context, req create_product.Request) (domain.ProductRef, error) {
	if err := s.requireAdmin(); err != nil {
		return domain.ProductRef{}, err
	}
	return s.svc.CreateProduct.Execute(ctx, req)
}

// Product shows one product. Shoppers cannot see drafts.
func (s *Session) Product(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	return s.svc.Product.Execute(ctx, productID, !s.IsAdmin())
}

// Products lists the catalog. Admins also see unpublished products.
func (s *Session) Products(ctx context.Context, limit, offset int) ([]*dto.ProductSummaryDTO, error) {
	return s.svc.Products.Execute(ctx, !s.IsAdmin(), limit, offset)
}

// Orders lists placed orders for the admin dashboard.
func (s *Session) Orders(ctx context.Context, limit, offset int) ([]*dto.OrderSummaryDTO, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.svc.Orders.Execute(ctx, limit, offset)
}

func (s *Session) setCustomer(c *domain.Customer) {
	cp := *c
	s.mu.Lock()
	s.customer = &cp
	s.mu.Unlock()
}

func (s *Session) requireAdmin() error {
	if s.Customer() == nil {
		return domain.ErrNotAuthenticated
	}
	if !s.IsAdmin() {
		return domain.ErrNotAdmin
	}
	return nil
}
