package contracts

import "context"

// OrderNumberer hands out order numbers. Every call must return a value never returned before.
type OrderNumberer interface {
	Next(ctx context.Context) (string, error)
}
