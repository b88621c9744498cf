// Package sequencer runs ordered, version-gated mutation sequences against a commerce platform.
//
// Each stage issues at most one remote call and starts only after the previous stage
// succeeded. The id and version returned by a stage are the only values the next stage may
// use: mutating stages always send the version captured immediately before them, and a
// response without a usable version stops the sequence with domain.ErrMissingVersion.
// The first failure is terminal; nothing is retried or rolled back.
package sequencer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
)

// Phase is the state of one sequence run: Idle → Stage(1..n) → Succeeded | Failed.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseStage     Phase = "stage"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// Transition is reported to Options.OnTransition each time a run changes phase.
type Transition struct {
	Sequence  string
	Phase     Phase
	Stage     int
	StageName string
	Ref       domain.Ref
	Err       error
}

// Result is the outcome of a successful run: the final target and its version.
type Result struct {
	Kind     domain.ResourceKind
	Ref      domain.Ref
	Resource *domain.Resource
	Token    string
}

type Options struct {
	Logger       *slog.Logger
	Metrics      *Metrics
	Orphans      contracts.OrphanRecorder
	Clock        clock.Clock
	OnTransition func(Transition)
	// CallTimeout bounds each remote call; zero means only ctx applies.
	CallTimeout time.Duration
}

// Sequencer holds collaborators only; all per-run state lives on the Run call stack,
// so one Sequencer may serve any number of concurrent runs.
type Sequencer struct {
	platform     contracts.Platform
	logger       *slog.Logger
	metrics      *Metrics
	orphans      contracts.OrphanRecorder
	clock        clock.Clock
	onTransition func(Transition)
	callTimeout  time.Duration
}

func New(platform contracts.Platform, opts Options) *Sequencer {
	s := &Sequencer{
		platform:     platform,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		orphans:      opts.Orphans,
		clock:        opts.Clock,
		onTransition: opts.OnTransition,
		callTimeout:  opts.CallTimeout,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.clock == nil {
		s.clock = clock.RealClock{}
	}
	if s.orphans == nil {
		s.orphans = NewLogOrphanRecorder(s.logger)
	}
	return s
}

// cursor is the in-flight state threaded from one stage to the next.
type cursor struct {
	kind     domain.ResourceKind
	ref      domain.Ref
	resource *domain.Resource
	token    string
}

type created struct {
	kind domain.ResourceKind
	ref  domain.Ref
}

// Run executes seq's stages strictly in order.
// On failure the returned error is a *Error naming the failing stage.
func (s *Sequencer) Run(ctx context.Context, seq Sequence) (Result, error) {
	if len(seq.Stages) == 0 {
		return Result{}, ErrEmptySequence
	}

	var cur cursor
	if seq.Start != nil {
		cur.kind = seq.Start.Kind
		cur.ref = domain.Ref{ID: seq.Start.ID}
	}

	s.notify(Transition{Sequence: seq.Name, Phase: PhaseIdle, Ref: cur.ref})
	s.logger.Debug("sequence_started", "sequence", seq.Name, "stages", len(seq.Stages), "target", cur.ref.ID)

	var pending []created
	for i, st := range seq.Stages {
		idx := i + 1
		s.notify(Transition{Sequence: seq.Name, Phase: PhaseStage, Stage: idx, StageName: st.Name, Ref: cur.ref})

		start := s.clock.Now()
		next, err := s.execute(ctx, st, cur)
		s.metrics.observeStage(seq.Name, st.kind, s.clock.Now().Sub(start))

		if err != nil {
			serr := &Error{Sequence: seq.Name, Stage: idx, StageName: st.Name, Kind: domain.KindOf(err), Err: err}
			s.metrics.failed(seq.Name, st.Name, serr.Kind)
			s.logger.Warn("sequence_failed",
				"sequence", seq.Name,
				"stage", idx,
				"stage_name", st.Name,
				"kind", serr.Kind,
				"target", cur.ref.ID,
				"version", cur.ref.Version,
				"error", err,
			)
			s.reportOrphans(ctx, serr, pending)
			s.notify(Transition{Sequence: seq.Name, Phase: PhaseFailed, Stage: idx, StageName: st.Name, Ref: cur.ref, Err: serr})
			return Result{}, serr
		}

		switch st.kind {
		case StageCreate:
			pending = append(pending, created{kind: next.kind, ref: next.ref})
		case StagePlaceOrder:
			// the cart was consumed by the order
			pending = withoutID(pending, cur.ref.ID)
		default:
			refresh(pending, next.ref)
		}

		s.logger.Debug("stage_completed",
			"sequence", seq.Name,
			"stage", idx,
			"stage_name", st.Name,
			"stage_kind", st.kind,
			"target", next.ref.ID,
			"version", next.ref.Version,
		)
		cur = next
	}

	s.metrics.succeeded(seq.Name)
	s.logger.Info("sequence_succeeded", "sequence", seq.Name, "kind", cur.kind, "id", cur.ref.ID, "version", cur.ref.Version)
	s.notify(Transition{Sequence: seq.Name, Phase: PhaseSucceeded, Stage: len(seq.Stages), Ref: cur.ref})

	return Result{Kind: cur.kind, Ref: cur.ref, Resource: cur.resource, Token: cur.token}, nil
}

func (s *Sequencer) execute(ctx context.Context, st Stage, cur cursor) (cursor, error) {
	if s.callTimeout > 0 && st.Remote() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	switch st.kind {
	case StageCreate:
		if st.draft == nil {
			return cur, fmt.Errorf("%w: create stage without draft", domain.ErrValidationFailure)
		}
		res, err := s.platform.CreateResource(ctx, st.resourceKind, st.draft)
		if err != nil {
			return cur, err
		}
		return capture(cur, st.resourceKind, "", res)

	case StageRead:
		if cur.ref.ID == "" {
			return cur, ErrNoTarget
		}
		res, err := s.platform.GetResource(ctx, cur.kind, cur.ref.ID)
		if err != nil {
			return cur, err
		}
		return capture(cur, cur.kind, cur.ref.ID, res)

	case StageMutate:
		if cur.ref.ID == "" {
			return cur, ErrNoTarget
		}
		if !cur.ref.HasVersion() {
			return cur, fmt.Errorf("%w: %s %s has no captured version", domain.ErrMissingVersion, cur.kind, cur.ref.ID)
		}
		res, err := s.platform.MutateResource(ctx, cur.kind, cur.ref.ID, cur.ref.Version, st.actions)
		if err != nil {
			return cur, err
		}
		return capture(cur, cur.kind, cur.ref.ID, res)

	case StageLocal:
		if st.local == nil {
			return cur, ErrEmptyToken
		}
		token, err := st.local(ctx)
		if err != nil {
			return cur, err
		}
		if token == "" {
			return cur, ErrEmptyToken
		}
		next := cur
		next.token = token
		return next, nil

	case StagePlaceOrder:
		if cur.ref.ID == "" || cur.kind != domain.KindCart {
			return cur, fmt.Errorf("%w: orders are placed from a cart, have %q", ErrNoTarget, cur.kind)
		}
		if !cur.ref.HasVersion() {
			return cur, fmt.Errorf("%w: cart %s has no captured version", domain.ErrMissingVersion, cur.ref.ID)
		}
		if cur.token == "" {
			return cur, ErrEmptyToken
		}
		res, err := s.platform.CreateOrder(ctx, cur.ref, cur.token)
		if err != nil {
			return cur, err
		}
		return capture(cur, domain.KindOrder, "", res)
	}
	return cur, fmt.Errorf("unknown stage kind %q", st.kind)
}

// capture validates a response and turns it into the next cursor.
// wantID is empty when the call creates a new resource.
func capture(cur cursor, kind domain.ResourceKind, wantID string, res *domain.Resource) (cursor, error) {
	if res == nil {
		return cur, fmt.Errorf("%w: empty %s response", domain.ErrMissingVersion, kind)
	}
	if res.ID == "" {
		return cur, fmt.Errorf("%w: %s response without id", domain.ErrMissingVersion, kind)
	}
	if wantID != "" && res.ID != wantID {
		return cur, fmt.Errorf("%w: response for %s %s names %s", domain.ErrMissingVersion, kind, wantID, res.ID)
	}
	if res.Kind != "" && kind != "" && res.Kind != kind {
		return cur, fmt.Errorf("%w: expected %s response, got %s", domain.ErrMissingVersion, kind, res.Kind)
	}
	if !res.Ref().HasVersion() {
		return cur, fmt.Errorf("%w: %s %s returned no version", domain.ErrMissingVersion, kind, res.ID)
	}
	return cursor{kind: kind, ref: res.Ref(), resource: res, token: cur.token}, nil
}

func (s *Sequencer) reportOrphans(ctx context.Context, serr *Error, pending []created) {
	for _, c := range pending {
		s.orphans.RecordOrphan(ctx, contracts.Orphan{
			Sequence:   serr.Sequence,
			Kind:       c.kind,
			Ref:        c.ref,
			FailedAt:   serr.Stage,
			FailedStep: serr.StageName,
			Cause:      serr.Err,
			RecordedAt: s.clock.Now(),
		})
	}
}

func (s *Sequencer) notify(t Transition) {
	if s.onTransition != nil {
		s.onTransition(t)
	}
}

// refresh keeps the last observed version of a pending resource for orphan reports.
func refresh(pending []created, ref domain.Ref) {
	for i := range pending {
		if pending[i].ref.ID == ref.ID {
			pending[i].ref = ref
		}
	}
}

func withoutID(in []created, id string) []created {
	out := in[:0]
	for _, c := range in {
		if c.ref.ID != id {
			out = append(out, c)
		}
	}
	return out
}
