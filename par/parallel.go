// Package par implements §5's PAR clause: a bounded set of worker
// goroutines each evaluating one collateral unit concurrently, guarded
// by a size-1 "unit-sema" that serialises access to shared
// interpreter state (the frame/expression stack) between unit
// boundaries, since genie's Context is not safe for concurrent
// mutation mid-evaluation.
//
// Libs: golang.org/x/sync/errgroup for worker spawn/join/first-error
// propagation, golang.org/x/sync/semaphore for the weighted unit-sema
// — both teacher (breadchris-yaegi) dependencies, wired here rather
// than dropped.
package par

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Evaluator is the single closure par needs from genie: genie.Evaluate
// bound to its own *Context, so package par never imports package
// genie (genie imports par to run a PAR clause — an import cycle
// otherwise).
type Evaluator func(n *tree.Node) (*value.Value, error)

// UnitSema serialises access to shared mutable interpreter state
// across PAR workers: a worker must acquire it before touching the
// frame/expression stack and release it at each unit boundary (§5
// "unit-sema").
type UnitSema struct {
	sem *semaphore.Weighted
}

// NewUnitSema builds a size-1 (mutual exclusion) unit-sema.
func NewUnitSema() *UnitSema {
	return &UnitSema{sem: semaphore.NewWeighted(1)}
}

// Acquire blocks until the unit-sema is free.
func (u *UnitSema) Acquire(ctx context.Context) error { return u.sem.Acquire(ctx, 1) }

// Release frees the unit-sema for the next worker.
func (u *UnitSema) Release() { u.sem.Release(1) }

// Run evaluates each of units concurrently, one worker goroutine per
// unit, serialised against the unit-sema so no two workers mutate
// shared interpreter state at once. It returns the units' results in
// their original order, or the first error any worker returns
// (errgroup's cancel-on-first-error semantics, §5 "a PAR clause fails
// as a whole if any collateral unit fails").
func Run(ctx context.Context, ev Evaluator, sema *UnitSema, units []*tree.Node) ([]*value.Value, error) {
	results := make([]*value.Value, len(units))
	g, gctx := errgroup.WithContext(ctx)

	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			if err := sema.Acquire(gctx); err != nil {
				return err
			}
			v, err := ev(unit)
			sema.Release()
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
