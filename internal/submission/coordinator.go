// Package submission drives a report through proof preparation, signature and broadcast.
package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/ledger"
	"github.com/openkcm/report-wallet/internal/proof"
	"github.com/openkcm/report-wallet/internal/serviceerr"
	"github.com/openkcm/report-wallet/internal/session"
	"github.com/openkcm/report-wallet/internal/wallet"
)

// Circuit is the contract operation a report invokes.
const Circuit = "increment"

const instrumentationName = "report-wallet/submission"

// SessionSource hands out the active session.
type SessionSource interface {
	Current() (*session.ActiveSession, bool)
}

type Option func(*Coordinator)

// WithPhaseTimeout bounds every phase. Zero disables the bound.
func WithPhaseTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.phaseTimeout = d }
}

// WithProofPreparer sets the preparer used when the session cannot prepare proofs itself.
func WithProofPreparer(p proof.Preparer) Option {
	return func(c *Coordinator) { c.preparer = p }
}

func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) { c.notifier = n }
}

type Coordinator struct {
	sessions        SessionSource
	tally           *ledger.Tally
	contractAddress string

	preparer     proof.Preparer
	notifier     Notifier
	phaseTimeout time.Duration

	tracer   trace.Tracer
	outcomes metric.Int64Counter
	phases   metric.Float64Histogram

	inFlight atomic.Bool

	mu      sync.RWMutex
	current *Attempt
	last    *Attempt
}

func NewCoordinator(sessions SessionSource, tally *ledger.Tally, contractAddress string, opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		sessions:        sessions,
		tally:           tally,
		contractAddress: contractAddress,
		preparer:        proof.Simulated{Delay: proof.DefaultSimulatedDelay},
		notifier:        discardNotifier{},
		tracer:          otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	meter := otel.Meter(instrumentationName)

	var err error
	c.outcomes, err = meter.Int64Counter(
		"submission.attempt_count",
		metric.WithDescription("Finished submission attempts by outcome"),
		metric.WithUnit("attempt"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating attempt counter: %w", err)
	}

	c.phases, err = meter.Float64Histogram(
		"submission.phase_duration",
		metric.WithDescription("Duration of each submission phase"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating phase histogram: %w", err)
	}

	return c, nil
}

// IsSubmitting reports whether an attempt is in flight.
func (c *Coordinator) IsSubmitting() bool {
	return c.inFlight.Load()
}

// Current returns a copy of the in-flight attempt.
func (c *Coordinator) Current() (Attempt, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Attempt{}, false
	}
	return *c.current, true
}

// Last returns a copy of the most recently finished attempt.
func (c *Coordinator) Last() (Attempt, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last == nil {
		return Attempt{}, false
	}
	return *c.last, true
}

// Submit runs one attempt to completion. Only one attempt runs at a time; a concurrent
// call returns ErrSubmissionInProgress without touching the running one.
func (c *Coordinator) Submit(ctx context.Context) (Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		slogctx.Debug(ctx, "Submission already in progress")
		return Result{}, serviceerr.ErrSubmissionInProgress
	}
	defer c.inFlight.Store(false)

	active, ok := c.sessions.Current()
	if !ok {
		c.notifier.Post(MsgConnectFirst)
		return Result{}, serviceerr.ErrNoActiveSession
	}

	a := &Attempt{
		ID:              uuid.New(),
		Phase:           Idle,
		Provider:        active.Provider,
		ContractAddress: c.contractAddress,
		StartedAt:       time.Now(),
	}
	c.setCurrent(a)

	ctx = slogctx.With(ctx, "attempt_id", a.ID.String(), "provider", a.Provider)
	ctx, span := c.tracer.Start(ctx, "submission.Submit", trace.WithAttributes(
		attribute.String("attempt.id", a.ID.String()),
		attribute.String("wallet.provider", a.Provider),
	))
	defer span.End()

	slogctx.Info(ctx, "Submission started", "contract_address", c.contractAddress)

	if err := c.run(ctx, active, a); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission failed")
		return Result{}, err
	}

	last, _ := c.Last()
	return Result{AttemptID: last.ID, TxHash: last.TxHash}, nil
}

func (c *Coordinator) run(ctx context.Context, active *session.ActiveSession, a *Attempt) error {
	err := c.phase(ctx, a, PreparingProof, MsgPreparingProof, func(ctx context.Context) error {
		if err := proof.For(active.Session, c.preparer).PrepareProof(ctx, c.contractAddress); err != nil {
			return failWith(serviceerr.ErrSubmissionFailed, err)
		}
		return nil
	})
	if err != nil {
		return c.fail(ctx, a, err)
	}

	var signed wallet.SignedTransaction
	err = c.phase(ctx, a, AwaitingSignature, MsgRequestingSign, func(ctx context.Context) error {
		if !active.Valid() {
			return failWith(serviceerr.ErrSubmissionFailed, serviceerr.ErrSessionInvalidated)
		}
		tx, err := active.Session.SignCircuit(ctx, wallet.CircuitCall{
			ContractAddress: c.contractAddress,
			Circuit:         Circuit,
		})
		switch {
		case wallet.IsUserRejection(err):
			return failWith(serviceerr.ErrSignatureDeclined, err)
		case err != nil:
			return failWith(serviceerr.ErrSubmissionFailed, err)
		}
		signed = tx
		return nil
	})
	if err != nil {
		return c.fail(ctx, a, err)
	}

	err = c.phase(ctx, a, Broadcasting, MsgBroadcasting, func(ctx context.Context) error {
		if !active.Valid() {
			return failWith(serviceerr.ErrSubmissionFailed, serviceerr.ErrSessionInvalidated)
		}
		sub, err := active.Session.SubmitTransaction(ctx, signed)
		if err != nil {
			return failWith(serviceerr.ErrSubmissionFailed, err)
		}
		c.mu.Lock()
		a.TxHash = sub.TxHash
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		return c.fail(ctx, a, err)
	}

	c.tally.Increment()
	c.finish(ctx, a, Completed, Completed.String(), "")
	c.notifier.Flash(MsgCompleted)
	slogctx.Info(ctx, "Submission completed", "tx_hash", a.TxHash)

	return nil
}

// phase moves a into p and runs fn under the phase timeout.
func (c *Coordinator) phase(ctx context.Context, a *Attempt, p Phase, message string, fn func(context.Context) error) error {
	c.advance(a, p)
	c.notifier.Post(message)
	slogctx.Debug(ctx, "Submission phase started", "phase", p)

	ctx, span := c.tracer.Start(ctx, "submission."+p.String())
	defer span.End()

	phaseCtx := ctx
	if c.phaseTimeout > 0 {
		var cancel context.CancelFunc
		phaseCtx, cancel = context.WithTimeout(ctx, c.phaseTimeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(phaseCtx)
	c.phases.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.String("phase", p.String())))

	if err != nil && errors.Is(phaseCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		err = failWith(serviceerr.ErrSubmissionFailed, fmt.Errorf("%s timed out after %s", p, c.phaseTimeout))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, p.String())
	}
	return err
}

func (c *Coordinator) fail(ctx context.Context, a *Attempt, err error) error {
	f := classify(err)
	detail := f.detail()
	c.finish(ctx, a, Failed, string(f.kind.Err), detail)

	if f.kind == serviceerr.ErrSignatureDeclined {
		slogctx.Warn(ctx, "Submission declined by wallet user", "error", err)
		c.notifier.Post(MsgDeclined)
		return f
	}

	slogctx.Error(ctx, "Submission failed", "error", err)
	c.notifier.Post(failureMessage(detail))
	return f
}

func (c *Coordinator) advance(a *Attempt, p Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a.Phase = p
}

func (c *Coordinator) setCurrent(a *Attempt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = a
}

func (c *Coordinator) finish(ctx context.Context, a *Attempt, p Phase, outcome, failure string) {
	c.mu.Lock()
	a.Phase = p
	a.Failure = failure
	a.FinishedAt = time.Now()
	snapshot := *a
	c.last = &snapshot
	c.current = nil
	c.mu.Unlock()

	c.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// failure is a phase error classified into a failure kind.
type failure struct {
	kind  *serviceerr.Error
	cause error
}

func failWith(kind *serviceerr.Error, cause error) *failure {
	return &failure{kind: kind, cause: cause}
}

// classify keeps failures built by the phases and treats anything else, such as a
// cancelled caller context, as a failed submission.
func classify(err error) *failure {
	var f *failure
	if errors.As(err, &f) {
		return f
	}
	return failWith(serviceerr.ErrSubmissionFailed, err)
}

func (f *failure) Error() string {
	return f.kind.Error() + ": " + f.cause.Error()
}

func (f *failure) Unwrap() []error {
	return []error{f.kind, f.cause}
}

// detail is what the user sees after "Failed to submit report: ".
func (f *failure) detail() string {
	var kind *serviceerr.Error
	if errors.As(f.cause, &kind) {
		return kind.Description
	}
	return f.cause.Error()
}
