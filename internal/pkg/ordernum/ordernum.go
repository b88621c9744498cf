// Package ordernum generates order numbers that are unique per submission.
package ordernum

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
)

// DefaultPrefix is prepended to every generated order number.
const DefaultPrefix = "ORD-"

// UUIDNumberer derives order numbers from random (v4) UUIDs.
type UUIDNumberer struct {
	Prefix string
}

func NewUUIDNumberer(prefix string) *UUIDNumberer {
	return &UUIDNumberer{Prefix: prefix}
}

// Next returns Prefix followed by the 32 upper-case hex digits of a new UUID.
func (n *UUIDNumberer) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("ordernum: %w", err)
	}
	return n.Prefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")), nil
}

// CounterNumberer yields short, strictly increasing numbers: Prefix + base + counter.
// Uniqueness holds within one process; base should be distinct per process (e.g. start time).
type CounterNumberer struct {
	Prefix string
	base   int64
	n      atomic.Int64
}

// NewCounterNumberer seeds the counter base from clk in milliseconds.
func NewCounterNumberer(prefix string, clk clock.Clock) *CounterNumberer {
	return &CounterNumberer{Prefix: prefix, base: clk.Now().UnixMilli()}
}

func (c *CounterNumberer) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d-%d", c.Prefix, c.base, c.n.Add(1)), nil
}
