// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a query protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended query operation on q and runs the
// protocol to its next suspension or completion. Query operations never
// block: the suspension is always consumed.
func Advance[R any](q *Query, susp *kont.Suspension[R]) (R, *kont.Suspension[R]) {
	qop, ok := susp.Op().(queryDispatcher)
	if !ok {
		panic("prolog: unhandled effect in Advance")
	}
	return susp.Resume(qop.DispatchQuery(q))
}
