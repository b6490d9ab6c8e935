// Package export drives an export run: it walks a connector's phases in
// dependency order, streams the emitted entities into a package session,
// and collects a structured per-phase outcome.
//
// A phase failure does not abort the run. The legacy tools always shipped
// a best-effort partial package; here that policy is explicit and the
// partial outcome is first-class data instead of a last-error string.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/packager"
)

// Connector adapts one source system to the runner. Phases must be
// returned in dependency order (individuals before giving before groups
// before attendance) because synthesized foreign keys assume parents were
// already emitted.
type Connector interface {
	Name() string
	Phases() []Phase
}

// Phase is one unit of a connector's export sequence.
type Phase struct {
	Name string
	Run  func(ctx context.Context, emit *Emit) error
}

// PhaseResult is the outcome of one phase. Err is nil on success; Records
// and Skipped count entities written and records dropped for lacking a
// usable identity.
type PhaseResult struct {
	Phase   string `json:"phase"`
	Records int    `json:"records"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Options tunes a run.
type Options struct {
	// PageLimit caps iterations of any paginated fetch loop (see
	// PageGuard). Zero means DefaultPageLimit.
	PageLimit int
	// RunID overrides the generated run id; used by tests for
	// deterministic progress assertions.
	RunID uuid.UUID
}

// Runner executes a connector against one package session.
type Runner struct {
	connector Connector
	session   *packager.Session
	opts      Options
	runID     uuid.UUID
}

// NewRunner creates a runner. The session must be fresh; the runner does
// not finalize it, so callers control when the package is sealed.
func NewRunner(connector Connector, session *packager.Session, opts Options) *Runner {
	if opts.PageLimit <= 0 {
		opts.PageLimit = DefaultPageLimit
	}
	runID := opts.RunID
	if runID == uuid.Nil {
		// UUIDv7 keeps run ids time-sortable in logs.
		if id, err := uuid.NewV7(); err == nil {
			runID = id
		} else {
			runID = uuid.New()
		}
	}
	return &Runner{connector: connector, session: session, opts: opts, runID: runID}
}

// RunID identifies this run in progress events and logs.
func (r *Runner) RunID() uuid.UUID {
	return r.runID
}

// Run executes every phase in order. Context cancellation is honored
// between records and stops the run with ctx.Err; any other phase error is
// recorded in its PhaseResult and the next phase still runs.
func (r *Runner) Run(ctx context.Context, progress chan<- Progress) ([]PhaseResult, error) {
	phases := r.connector.Phases()
	results := make([]PhaseResult, 0, len(phases))

	slog.Info("export starting", "system", r.connector.Name(), "run_id", r.runID, "phases", len(phases))

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		emit := &Emit{
			ctx:      ctx,
			session:  r.session,
			guard:    NewPageGuard(r.opts.PageLimit),
			progress: progress,
			runID:    r.runID,
			phase:    phase.Name,
		}
		slog.Info("phase starting", "system", r.connector.Name(), "phase", phase.Name)

		result := PhaseResult{Phase: phase.Name}
		err := phase.Run(ctx, emit)
		result.Records = emit.records
		result.Skipped = emit.skipped

		if err != nil {
			if ctx.Err() != nil {
				// Cancellation is a run-level outcome, not a phase failure.
				results = append(results, result)
				return results, ctx.Err()
			}
			result.Err = err
			result.Error = err.Error()
			slog.Error("phase failed, continuing", "phase", phase.Name, "error", err)
		} else {
			slog.Info("phase complete", "phase", phase.Name, "records", result.Records, "skipped", result.Skipped)
		}
		results = append(results, result)
	}
	return results, nil
}

// Failed reports whether any phase recorded an error.
func Failed(results []PhaseResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Emit is the writer handed to a phase. It funnels entities into the
// session, counts outcomes, and carries the page guard and progress hook
// so phase code stays free of bookkeeping.
type Emit struct {
	ctx      context.Context
	session  *packager.Session
	guard    *PageGuard
	progress chan<- Progress
	runID    uuid.UUID
	phase    string

	records int
	skipped int
}

// Write streams one entity (and, via the session, its owned children) into
// the package. Returns the context error if the run was cancelled.
func (e *Emit) Write(entity model.Entity) error {
	if err := e.ctx.Err(); err != nil {
		return err
	}
	if err := e.session.Write(entity); err != nil {
		return fmt.Errorf("writing %s: %w", entity.FileName(), err)
	}
	e.records++
	return nil
}

// WriteImage streams one person photo into the package's image archives.
func (e *Emit) WriteImage(personID int32, r io.Reader) error {
	if err := e.ctx.Err(); err != nil {
		return err
	}
	if err := e.session.WriteImage(personID, r); err != nil {
		return err
	}
	e.records++
	return nil
}

// Skip records a source record dropped for lacking a usable identity.
func (e *Emit) Skip() {
	e.skipped++
}

// Guard returns the phase's paginated-fetch loop guard.
func (e *Emit) Guard() *PageGuard {
	return e.guard
}

// Progress reports phase progress without blocking; events are dropped if
// the consumer lags, which is acceptable for a UI feed.
func (e *Emit) Progress(done, total int, message string) {
	if e.progress == nil {
		return
	}
	select {
	case e.progress <- Progress{RunID: e.runID, Phase: e.phase, Done: done, Total: total, Message: message}:
	default:
	}
}
