package contracts

import (
	"context"
	"time"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

// Orphan is a resource created by a sequence that failed before consuming it
// (e.g. a cart abandoned because the order could not be created).
type Orphan struct {
	Sequence   string
	Kind       domain.ResourceKind
	Ref        domain.Ref
	FailedAt   int
	FailedStep string
	Cause      error
	RecordedAt time.Time
}

// OrphanRecorder receives orphaned resources for offline cleanup. Nothing is rolled back.
type OrphanRecorder interface {
	RecordOrphan(ctx context.Context, o Orphan)
}
