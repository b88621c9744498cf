// Package spy wraps a contracts.Platform, records every call and injects faults.
package spy

import (
	"context"
	"sync"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

type Op string

const (
	OpCreate      Op = "create"
	OpGet         Op = "get"
	OpMutate      Op = "mutate"
	OpCreateOrder Op = "create_order"
)

// Call is one recorded platform call with the arguments it was issued with.
type Call struct {
	Op          Op
	Kind        domain.ResourceKind
	ID          string
	Version     int64
	Actions     []domain.Action
	OrderNumber string
}

// Fault changes the outcome of one call.
// Before runs ahead of the inner call (use it to simulate a concurrent writer).
// Err short-circuits the call. StripVersion zeroes the version on the response.
type Fault struct {
	Before       func(ctx context.Context)
	Err          error
	StripVersion bool
}

type faultKey struct {
	op Op
	n  int
}

type Platform struct {
	inner contracts.Platform

	mu     sync.Mutex
	calls  []Call
	counts map[Op]int
	faults map[faultKey]Fault
}

func Wrap(inner contracts.Platform) *Platform {
	return &Platform{
		inner:  inner,
		counts: map[Op]int{},
		faults: map[faultKey]Fault{},
	}
}

// On installs f for the nth (1-based) call of op.
func (p *Platform) On(op Op, n int, f Fault) *Platform {
	p.mu.Lock()
	p.faults[faultKey{op: op, n: n}] = f
	p.mu.Unlock()
	return p
}

// FailNth makes the nth call of op return err without reaching the inner platform.
func (p *Platform) FailNth(op Op, n int, err error) *Platform {
	return p.On(op, n, Fault{Err: err})
}

// Calls returns every recorded call in issue order.
func (p *Platform) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// Ops returns the op of every recorded call in issue order.
func (p *Platform) Ops() []Op {
	calls := p.Calls()
	out := make([]Op, len(calls))
	for i, c := range calls {
		out[i] = c.Op
	}
	return out
}

func (p *Platform) Count(op Op) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[op]
}

func (p *Platform) record(c Call) Fault {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, c)
	p.counts[c.Op]++
	return p.faults[faultKey{op: c.Op, n: p.counts[c.Op]}]
}

func (p *Platform) CreateResource(ctx context.Context, kind domain.ResourceKind, draft domain.Draft) (*domain.Resource, error) {
	f := p.record(Call{Op: OpCreate, Kind: kind})
	return apply(ctx, f, func() (*domain.Resource, error) {
		return p.inner.CreateResource(ctx, kind, draft)
	})
}

func (p *Platform) GetResource(ctx context.Context, kind domain.ResourceKind, id string) (*domain.Resource, error) {
	f := p.record(Call{Op: OpGet, Kind: kind, ID: id})
	return apply(ctx, f, func() (*domain.Resource, error) {
		return p.inner.GetResource(ctx, kind, id)
	})
}

func (p *Platform) MutateResource(ctx context.Context, kind domain.ResourceKind, id string, version int64, actions []domain.Action) (*domain.Resource, error) {
	f := p.record(Call{
		Op:      OpMutate,
		Kind:    kind,
		ID:      id,
		Version: version,
		Actions: append([]domain.Action(nil), actions...),
	})
	return apply(ctx, f, func() (*domain.Resource, error) {
		return p.inner.MutateResource(ctx, kind, id, version, actions)
	})
}

func (p *Platform) CreateOrder(ctx context.Context, cart domain.Ref, orderNumber string) (*domain.Resource, error) {
	f := p.record(Call{Op: OpCreateOrder, Kind: domain.KindCart, ID: cart.ID, Version: cart.Version, OrderNumber: orderNumber})
	return apply(ctx, f, func() (*domain.Resource, error) {
		return p.inner.CreateOrder(ctx, cart, orderNumber)
	})
}

func apply(ctx context.Context, f Fault, call func() (*domain.Resource, error)) (*domain.Resource, error) {
	if f.Before != nil {
		f.Before(ctx)
	}
	if f.Err != nil {
		return nil, f.Err
	}
	res, err := call()
	if err != nil {
		return nil, err
	}
	if f.StripVersion && res != nil {
		res = res.Clone()
		res.Version = 0
	}
	return res, nil
}

var _ contracts.Platform = (*Platform)(nil)
