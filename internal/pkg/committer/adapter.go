package committer

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
)

// BuildFunc reads whatever it needs through tx and returns the mutations to commit.
// Returning an error aborts the transaction without writing anything.
type BuildFunc func(ctx context.Context, tx *spanner.ReadWriteTransaction) (*Plan, error)

type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply writes a plan blindly in one read-write transaction.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	_, err := a.ApplyWith(ctx, func(context.Context, *spanner.ReadWriteTransaction) (*Plan, error) {
		return plan, nil
	})
	return err
}

// ApplyWith runs build inside a read-write transaction and buffers the plan it returns,
// so checks made by build (e.g. an expected version) and the writes commit atomically.
// build may run more than once when Spanner retries an aborted transaction.
func (a *Adapter) ApplyWith(ctx context.Context, build BuildFunc) (time.Time, error) {
	if a.client == nil {
		return time.Time{}, fmt.Errorf("committer: spanner client is nil")
	}

	return a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		plan, err := build(ctx, tx)
		if err != nil {
			return err
		}
		if plan == nil || plan.IsEmpty() {
			return nil
		}
		return tx.BufferWrite(plan.Mutations())
	})
}
