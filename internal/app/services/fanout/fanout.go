// internal/app/services/fanout/fanout.go

// Package fanout tracks best-effort steps that run after an authoritative
// write. Only the authoritative write can abort a domain operation; every
// later step (graph mirror, cache population, activity append, score
// increment) is recorded here on failure instead of propagating. There is
// no retry and no rollback: a recorded failure means the derived store is
// behind the system of record until someone reconciles it by hand.
package fanout

import "go.uber.org/zap"

// Result accumulates the names of best-effort steps that failed during one
// domain operation. The zero value is ready to use.
type Result struct {
	log     *zap.Logger
	op      string
	pending []string
}

// New returns a Result that logs step failures under the given operation name.
func New(log *zap.Logger, op string) *Result {
	return &Result{log: log, op: op}
}

// Do runs one best-effort step. On failure the step name is recorded and
// logged; execution always continues to the next step.
func (r *Result) Do(step string, fn func() error) {
	if err := fn(); err != nil {
		r.pending = append(r.pending, step)
		if r.log != nil {
			r.log.Warn("best-effort step failed",
				zap.String("op", r.op),
				zap.String("step", step),
				zap.Error(err))
		}
	}
}

// Partial reports whether any step failed.
func (r *Result) Partial() bool { return len(r.pending) > 0 }

// Pending returns the names of failed steps, in execution order.
func (r *Result) Pending() []string { return r.pending }
