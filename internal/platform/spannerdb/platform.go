// Package spannerdb is a commerce platform persisted in Cloud Spanner.
// Every write runs in one read-write transaction that checks the expected version,
// writes the next version and appends an outbox event.
package spannerdb

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/repo"
	"github.com/murkotick/storefront-sequencer/internal/models/m_order_number"
	"github.com/murkotick/storefront-sequencer/internal/models/m_resource"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
	committer "github.com/murkotick/storefront-sequencer/internal/pkg/committer"
)

// rowReader is satisfied by both read-only and read-write transactions.
type rowReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

type Platform struct {
	client    *spanner.Client
	cm        *committer.Adapter
	resources *repo.ResourceRepo
	outbox    *repo.OutboxRepo
	clock     clock.Clock
	newID     func() string
}

func New(client *spanner.Client, clk clock.Clock) *Platform {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Platform{
		client:    client,
		cm:        committer.NewAdapter(client),
		resources: repo.NewResourceRepo(),
		outbox:    repo.NewOutboxRepo(),
		clock:     clk,
		newID:     func() string { return uuid.New().String() },
	}
}

func (p *Platform) CreateResource(ctx context.Context, kind domain.ResourceKind, draft domain.Draft) (*domain.Resource, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown resource kind %q", domain.ErrValidationFailure, kind)
	}
	if draft == nil || draft.ResourceKind() != kind || kind == domain.KindOrder {
		return nil, fmt.Errorf("%w: cannot create %s from %T", domain.ErrValidationFailure, kind, draft)
	}

	now := p.clock.Now().UTC()
	res, err := domain.NewResource(p.newID(), draft, now)
	if err != nil {
		return nil, err
	}
	mut, err := p.resources.InsertMut(res)
	if err != nil {
		return nil, err
	}
	ev, err := repo.NewOutboxEvent(&domain.ResourceCreatedEvent{Kind: kind, Ref: res.Ref(), CreatedAt: now})
	if err != nil {
		return nil, err
	}

	plan := committer.NewPlan().Add(mut, p.outbox.InsertMut(ev))
	if err := p.cm.Apply(ctx, plan); err != nil {
		return nil, mapError(err, fmt.Sprintf("create %s", kind))
	}
	return res, nil
}

func (p *Platform) GetResource(ctx context.Context, kind domain.ResourceKind, id string) (*domain.Resource, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown resource kind %q", domain.ErrValidationFailure, kind)
	}
	res, err := readResource(ctx, p.client.Single(), kind, id)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("get %s %s", kind, id))
	}
	return res, nil
}

func (p *Platform) MutateResource(ctx context.Context, kind domain.ResourceKind, id string, version int64, actions []domain.Action) (*domain.Resource, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown resource kind %q", domain.ErrValidationFailure, kind)
	}

	var next *domain.Resource
	_, err := p.cm.ApplyWith(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) (*committer.Plan, error) {
		stored, err := readResource(ctx, tx, kind, id)
		if err != nil {
			return nil, err
		}
		if err := domain.CheckVersion(stored, version); err != nil {
			return nil, err
		}

		now := p.clock.Now().UTC()
		next, err = stored.Apply(actions, func(productID string) (*domain.Resource, error) {
			return readResource(ctx, tx, domain.KindProduct, productID)
		}, now)
		if err != nil {
			return nil, err
		}

		mut, err := p.resources.UpdateMut(next)
		if err != nil {
			return nil, err
		}
		ev, err := repo.NewOutboxEvent(&domain.ResourceUpdatedEvent{
			Kind:        kind,
			Ref:         next.Ref(),
			PrevVersion: stored.Version,
			Actions:     domain.ActionNames(actions),
			UpdatedAt:   now,
		})
		if err != nil {
			return nil, err
		}
		return committer.NewPlan().Add(mut, p.outbox.InsertMut(ev)), nil
	})
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("update %s %s", kind, id))
	}
	return next, nil
}

// CreateOrder consumes the cart, inserts the order and reserves the order number in one commit.
// A reused number fails the commit with AlreadyExists on order_numbers.
func (p *Platform) CreateOrder(ctx context.Context, cart domain.Ref, orderNumber string) (*domain.Resource, error) {
	var order *domain.Resource
	_, err := p.cm.ApplyWith(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) (*committer.Plan, error) {
		stored, err := readResource(ctx, tx, domain.KindCart, cart.ID)
		if err != nil {
			return nil, err
		}
		if err := domain.CheckVersion(stored, cart.Version); err != nil {
			return nil, err
		}

		now := p.clock.Now().UTC()
		order, err = domain.NewOrder(p.newID(), stored, orderNumber, now)
		if err != nil {
			return nil, err
		}

		cartMut, err := p.resources.UpdateMut(stored.MarkOrdered(now))
		if err != nil {
			return nil, err
		}
		orderMut, err := p.resources.InsertMut(order)
		if err != nil {
			return nil, err
		}
		ev, err := repo.NewOutboxEvent(&domain.OrderCreatedEvent{
			Order:       order.Ref(),
			Cart:        cart,
			OrderNumber: orderNumber,
			TotalCents:  order.Order.TotalCents,
			Currency:    order.Order.Currency,
			CreatedAt:   now,
		})
		if err != nil {
			return nil, err
		}

		return committer.NewPlan().Add(
			cartMut,
			orderMut,
			m_order_number.InsertMutation(orderNumber, order.ID, now),
			p.outbox.InsertMut(ev),
		), nil
	})
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("order number %q", orderNumber))
	}
	return order, nil
}

func readResource(ctx context.Context, r rowReader, kind domain.ResourceKind, id string) (*domain.Resource, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationFailure, domain.ErrEmptyResourceID)
	}
	row, err := r.ReadRow(ctx, m_resource.TableName, m_resource.Key(string(kind), id), m_resource.ReadColumns)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrResourceNotFound, kind, id)
		}
		return nil, err
	}
	return repo.DecodeRow(row)
}

var (
	_ contracts.Platform  = (*Platform)(nil)
	_ contracts.ReadModel = (*Platform)(nil)
	_ contracts.Accounts  = (*Platform)(nil)
)
