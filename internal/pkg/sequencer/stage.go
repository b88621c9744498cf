package sequencer

import (
	"context"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

// StageKind says which remote call (if any) a stage issues.
type StageKind string

const (
	StageCreate     StageKind = "create"
	StageRead       StageKind = "read"
	StageMutate     StageKind = "mutate"
	StageLocal      StageKind = "local"
	StagePlaceOrder StageKind = "place_order"
)

// Stage is one step of a Sequence. Stages never name a version: the sequencer forwards
// the version captured by the previous stage, so a stale value cannot be supplied.
type Stage struct {
	Name string

	kind         StageKind
	resourceKind domain.ResourceKind
	draft        domain.Draft
	actions      []domain.Action
	local        func(ctx context.Context) (string, error)
}

// Kind returns the stage kind.
func (s Stage) Kind() StageKind { return s.kind }

// Actions returns a copy of the batch a mutate stage sends.
func (s Stage) Actions() []domain.Action { return append([]domain.Action(nil), s.actions...) }

// Remote reports whether the stage issues a remote call.
func (s Stage) Remote() bool { return s.kind != StageLocal }

// Create issues CreateResource and makes the created resource the sequence's target.
func Create(name string, draft domain.Draft) Stage {
	var kind domain.ResourceKind
	if draft != nil {
		kind = draft.ResourceKind()
	}
	return Stage{Name: name, kind: StageCreate, resourceKind: kind, draft: draft}
}

// Read issues GetResource on the current target and refreshes its version without mutating it.
func Read(name string) Stage {
	return Stage{Name: name, kind: StageRead}
}

// Mutate issues one batched MutateResource on the current target at its captured version.
func Mutate(name string, actions ...domain.Action) Stage {
	return Stage{Name: name, kind: StageMutate, actions: append([]domain.Action(nil), actions...)}
}

// Local runs fn without any remote call; its result is the token consumed by PlaceOrder.
func Local(name string, fn func(ctx context.Context) (string, error)) Stage {
	return Stage{Name: name, kind: StageLocal, local: fn}
}

// PlaceOrder issues CreateOrder for the current cart target, its captured version and the
// token produced by the last Local stage. The created order becomes the new target.
func PlaceOrder(name string) Stage {
	return Stage{Name: name, kind: StagePlaceOrder}
}

// Target names an existing resource a sequence starts from.
type Target struct {
	Kind domain.ResourceKind
	ID   string
}

// Sequence is an ordered list of dependent stages. Start is nil when the first stage creates
// the resource the rest of the sequence works on.
type Sequence struct {
	Name   string
	Start  *Target
	Stages []Stage
}

// From starts a sequence at an existing resource whose version is not yet known.
func From(kind domain.ResourceKind, id string) *Target {
	return &Target{Kind: kind, ID: id}
}
