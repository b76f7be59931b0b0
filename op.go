// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/kont"
)

// queryDispatcher is the structural interface for query operations.
// DispatchQuery runs synchronously on the thread holding the engine.
type queryDispatcher interface {
	DispatchQuery(q *Query) kont.Resumed
}

// queryHandler implements kont.Handler for query effects.
type queryHandler[R any] struct {
	q *Query
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h queryHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	qop, ok := op.(queryDispatcher)
	if !ok {
		panic("prolog: unhandled effect in queryHandler")
	}
	return qop.DispatchQuery(h.q), true
}

// Pre-boxed solve results.
var (
	solveMore kont.Resumed = kont.Right[error](true)
	solveLast kont.Resumed = kont.Right[error](false)
)

// Solve is the effect operation for asking the next solution.
// Perform(Solve{}) resumes with Right(more) on a solution and with
// Left(err) on failure or exception.
type Solve struct {
	kont.Phantom[kont.Either[error, bool]]
}

// DispatchQuery handles Solve on the open query.
func (Solve) DispatchQuery(q *Query) kont.Resumed {
	more, err := q.NextSolution()
	switch {
	case err != nil:
		return kont.Left[error, bool](err)
	case more:
		return solveMore
	default:
		return solveLast
	}
}

// CutQuery is the effect operation for cutting the query.
type CutQuery struct {
	kont.Phantom[struct{}]
}

// DispatchQuery handles CutQuery on the open query.
func (CutQuery) DispatchQuery(q *Query) kont.Resumed {
	q.Cut()
	return struct{}{}
}

// DiscardQuery is the effect operation for discarding the query.
type DiscardQuery struct {
	kont.Phantom[struct{}]
}

// DispatchQuery handles DiscardQuery on the open query.
func (DiscardQuery) DispatchQuery(q *Query) kont.Resumed {
	q.Discard()
	return struct{}{}
}
