// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/kont"
)

// queryErrorHandler handles both query and error effects.
// Query ops dispatch synchronously. Error ops short-circuit on Throw.
type queryErrorHandler[E, A any] struct {
	q      *Query
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler for the composed Query+Error handler.
// Dispatch order: Query → Error.
func (h queryErrorHandler[E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if qop, ok := op.(queryDispatcher); ok {
		return qop.DispatchQuery(h.q), true
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("prolog: unhandled effect in queryErrorHandler")
}

// ExecError runs a query protocol with error handling on an open query.
// Returns Either[E, R]: Right on success, Left on Throw. A query left
// open, including by a Throw, is discarded.
func ExecError[E, R any](q *Query, protocol kont.Eff[R]) kont.Either[E, R] {
	defer q.Release()
	wrapped := kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := queryErrorHandler[E, R]{q: q, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// StepError evaluates a query protocol with error support until the
// first effect suspension. Returns (Either[E, R], nil) on completion or
// error, or (zero, suspension) if pending.
func StepError[E, R any](protocol kont.Expr[R]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	return kont.StepExpr(wrapped)
}

// AdvanceError dispatches the suspended operation on q. Error ops are
// eager: Throw discards the suspension and returns Left.
func AdvanceError[E, R any](q *Query, susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	if qop, ok := susp.Op().(queryDispatcher); ok {
		return susp.Resume(qop.DispatchQuery(q))
	}
	if eop, ok := susp.Op().(interface {
		DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
	}); ok {
		var ctx kont.ErrorContext[E]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			return kont.Left[E, R](ctx.Err), nil
		}
		return susp.Resume(v)
	}
	panic("prolog: unhandled effect in AdvanceError")
}
