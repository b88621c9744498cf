package sequencer

import (
	"context"
	"log/slog"
	"sync"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
)

// LogOrphanRecorder writes one structured log line per orphaned resource so
// abandoned carts and unpublished products can be cleaned up offline.
type LogOrphanRecorder struct {
	logger *slog.Logger
}

func NewLogOrphanRecorder(logger *slog.Logger) *LogOrphanRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogOrphanRecorder{logger: logger}
}

func (r *LogOrphanRecorder) RecordOrphan(ctx context.Context, o contracts.Orphan) {
	r.logger.WarnContext(ctx, "orphaned_resource",
		"sequence", o.Sequence,
		"kind", o.Kind,
		"id", o.Ref.ID,
		"version", o.Ref.Version,
		"failed_stage", o.FailedAt,
		"failed_stage_name", o.FailedStep,
		"cause", o.Cause,
		"recorded_at", o.RecordedAt,
	)
}

// MemoryOrphanRecorder keeps orphans in memory for reporting back to the caller.
type MemoryOrphanRecorder struct {
	mu      sync.Mutex
	orphans []contracts.Orphan
}

func (r *MemoryOrphanRecorder) RecordOrphan(_ context.Context, o contracts.Orphan) {
	r.mu.Lock()
	r.orphans = append(r.orphans, o)
	r.mu.Unlock()
}

// Orphans returns a copy of everything recorded so far.
func (r *MemoryOrphanRecorder) Orphans() []contracts.Orphan {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]contracts.Orphan(nil), r.orphans...)
}

// Tee fans one orphan out to several recorders.
type Tee []contracts.OrphanRecorder

func (t Tee) RecordOrphan(ctx context.Context, o contracts.Orphan) {
	for _, r := range t {
		r.RecordOrphan(ctx, o)
	}
}
