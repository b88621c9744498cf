// Package memory is an in-process commerce platform with optimistic concurrency.
// It backs unit tests, the storefront CLI demo and the server's "memory" backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
)

type customerRecord struct {
	customer     domain.Customer
	passwordHash []byte
}

// Platform stores resources in maps guarded by one RWMutex. Every write checks the
// expected version and commits all-or-nothing under the lock.
type Platform struct {
	mu        sync.RWMutex
	clock     clock.Clock
	resources map[domain.ResourceKind]map[string]*domain.Resource
	numbers   map[string]string // order number -> order id
	customers map[string]*customerRecord
	events    []domain.ResourceEvent
	newID     func() string
}

func New(clk clock.Clock) *Platform {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Platform{
		clock: clk,
		resources: map[domain.ResourceKind]map[string]*domain.Resource{
			domain.KindProduct: {},
			domain.KindCart:    {},
			domain.KindOrder:   {},
		},
		numbers:   map[string]string{},
		customers: map[string]*customerRecord{},
		newID:     func() string { return uuid.New().String() },
	}
}

func (p *Platform) CreateResource(ctx context.Context, kind domain.ResourceKind, draft domain.Draft) (*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if draft == nil || draft.ResourceKind() != kind || kind == domain.KindOrder {
		return nil, fmt.Errorf("%w: cannot create %s from %T", domain.ErrValidationFailure, kind, draft)
	}

	now := p.clock.Now()
	res, err := domain.NewResource(p.newID(), draft, now)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pd, ok := draft.(*domain.ProductDraft); ok && pd.Key != "" {
		for _, existing := range p.resources[domain.KindProduct] {
			if existing.Product.Key == pd.Key {
				return nil, fmt.Errorf("%w: product key %q already exists", domain.ErrValidationFailure, pd.Key)
			}
		}
	}
	p.resources[kind][res.ID] = res
	p.events = append(p.events, &domain.ResourceCreatedEvent{Kind: kind, Ref: res.Ref(), CreatedAt: now})
	return res.Clone(), nil
}

func (p *Platform) GetResource(ctx context.Context, kind domain.ResourceKind, id string) (*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	res, err := p.lookupLocked(kind, id)
	if err != nil {
		return nil, err
	}
	return res.Clone(), nil
}

func (p *Platform) MutateResource(ctx context.Context, kind domain.ResourceKind, id string, version int64, actions []domain.Action) (*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	stored, err := p.lookupLocked(kind, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckVersion(stored, version); err != nil {
		return nil, err
	}

	now := p.clock.Now()
	next, err := stored.Apply(actions, func(productID string) (*domain.Resource, error) {
		return p.lookupLocked(domain.KindProduct, productID)
	}, now)
	if err != nil {
		return nil, err
	}

	p.resources[kind][id] = next
	p.events = append(p.events, &domain.ResourceUpdatedEvent{
		Kind:        kind,
		Ref:         next.Ref(),
		PrevVersion: stored.Version,
		Actions:     domain.ActionNames(actions),
		UpdatedAt:   now,
	})
	return next.Clone(), nil
}

func (p *Platform) CreateOrder(ctx context.Context, cart domain.Ref, orderNumber string) (*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	stored, err := p.lookupLocked(domain.KindCart, cart.ID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckVersion(stored, cart.Version); err != nil {
		return nil, err
	}
	if _, taken := p.numbers[orderNumber]; taken {
		return nil, fmt.Errorf("%w: order number %q already used", domain.ErrValidationFailure, orderNumber)
	}

	now := p.clock.Now()
	order, err := domain.NewOrder(p.newID(), stored, orderNumber, now)
	if err != nil {
		return nil, err
	}

	p.resources[domain.KindCart][cart.ID] = stored.MarkOrdered(now)
	p.resources[domain.KindOrder][order.ID] = order
	p.numbers[orderNumber] = order.ID
	p.events = append(p.events, &domain.OrderCreatedEvent{
		Order:       order.Ref(),
		Cart:        cart,
		OrderNumber: orderNumber,
		TotalCents:  order.Order.TotalCents,
		Currency:    order.Order.Currency,
		CreatedAt:   now,
	})
	return order.Clone(), nil
}

func (p *Platform) ListProducts(ctx context.Context, limit, offset int) ([]*domain.Resource, error) {
	return p.list(ctx, domain.KindProduct, limit, offset)
}

func (p *Platform) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Resource, error) {
	return p.list(ctx, domain.KindOrder, limit, offset)
}

// list returns resources ordered by creation time, then id.
func (p *Platform) list(ctx context.Context, kind domain.ResourceKind, limit, offset int) ([]*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}

	p.mu.RLock()
	all := make([]*domain.Resource, 0, len(p.resources[kind]))
	for _, r := range p.resources[kind] {
		all = append(all, r.Clone())
	}
	p.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*domain.Resource{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (p *Platform) SignUp(ctx context.Context, draft domain.CustomerDraft) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	email := strings.ToLower(strings.TrimSpace(draft.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrValidationFailure)
	}
	if draft.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidationFailure)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationFailure, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.customers[email]; exists {
		return nil, fmt.Errorf("%w: customer %s already exists", domain.ErrValidationFailure, email)
	}
	rec := &customerRecord{
		customer: domain.Customer{
			ID:        p.newID(),
			Email:     strings.TrimSpace(draft.Email),
			FirstName: draft.FirstName,
			LastName:  draft.LastName,
		},
		passwordHash: hash,
	}
	p.customers[email] = rec
	c := rec.customer
	return &c, nil
}

func (p *Platform) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}

	p.mu.RLock()
	rec, ok := p.customers[strings.ToLower(strings.TrimSpace(email))]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationFailure, domain.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationFailure, domain.ErrInvalidCredentials)
	}
	c := rec.customer
	return &c, nil
}

// Events returns a copy of every event recorded so far, oldest first.
func (p *Platform) Events() []domain.ResourceEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.ResourceEvent(nil), p.events...)
}

// Count returns how many resources of kind exist.
func (p *Platform) Count(kind domain.ResourceKind) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.resources[kind])
}

// lookupLocked returns the stored resource itself; callers must hold p.mu and must not mutate it.
func (p *Platform) lookupLocked(kind domain.ResourceKind, id string) (*domain.Resource, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationFailure, domain.ErrEmptyResourceID)
	}
	res, ok := p.resources[kind][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrResourceNotFound, kind, id)
	}
	return res, nil
}

func checkKind(kind domain.ResourceKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown resource kind %q", domain.ErrValidationFailure, kind)
	}
	return nil
}
