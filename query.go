// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"code.hybscloud.com/prolog/fli"
)

// Query is one open predicate call. It ends with exactly one of Cut or
// Discard; Release discards a query that is still open.
type Query struct {
	Context[InQuery]
	pred Predicate
}

// Predicate returns the predicate the query was opened on.
func (q *Query) Predicate() Predicate {
	return q.pred
}

// NextSolution asks for the next solution. It returns (true, nil) when
// more solutions may follow, (false, nil) for the last solution,
// ErrFailure when there are no more solutions, and an *ExceptionError
// when solving raised an exception. The exception is re-raised as the
// engine's pending exception, which stays set until cleared.
func (q *Query) NextSolution() (bool, error) {
	q.s.assertActive()
	drv := q.s.engine.drv
	switch st := drv.NextSolution(q.s.query); st {
	case fli.StatusException:
		t := drv.Exception(q.s.query)
		if t == 0 {
			panic("prolog: exception status without an exception term")
		}
		drv.RaiseException(t)
		text := drv.Format(t)
		q.s.engine.log.Debug("query raised", zap.Stringer("predicate", q.pred), zap.String("exception", text))
		return false, &ExceptionError{Term: text}
	case fli.StatusFailure:
		return false, ErrFailure
	case fli.StatusTrue:
		return true, nil
	case fli.StatusLast:
		return false, nil
	default:
		panic(fmt.Sprintf("prolog: unknown solution status %d", st))
	}
}

// Cut retires the query keeping the bindings of the last solution.
func (q *Query) Cut() {
	q.s.assertActive()
	q.s.engine.drv.CutQuery(q.s.query)
	q.s.retire()
}

// Discard retires the query undoing all of its bindings.
func (q *Query) Discard() {
	q.s.assertActive()
	q.s.engine.drv.CloseQuery(q.s.query)
	q.s.retire()
}

// Release discards the query if it is still open. It is meant for defer.
func (q *Query) Release() {
	if !q.s.closed {
		q.Discard()
	}
}

// Once takes the first solution and cuts. If solving fails or raises,
// the query is discarded and the error returned.
func (q *Query) Once() error {
	if _, err := q.NextSolution(); err != nil {
		q.Discard()
		return err
	}
	q.Cut()
	return nil
}

// Ignore is Once with failure treated as success. Exceptions propagate.
func (q *Query) Ignore() error {
	if err := q.Once(); err != nil && !errors.Is(err, ErrFailure) {
		return err
	}
	return nil
}

// Solutions iterates the solutions of q, yielding the solution index.
// Iteration stops after the last solution or on failure; an exception
// is yielded as the error of a final element. The query stays open.
func (q *Query) Solutions() iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		for i := 0; ; i++ {
			more, err := q.NextSolution()
			if errors.Is(err, ErrFailure) {
				return
			}
			if err != nil {
				yield(i, err)
				return
			}
			if !yield(i, nil) || !more {
				return
			}
		}
	}
}
