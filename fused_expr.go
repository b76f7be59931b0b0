// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprSolve       kont.Erased = Solve{}
	exprCut         kont.Erased = CutQuery{}
	exprDiscard     kont.Erased = DiscardQuery{}
)

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

func solveBranchUnwind[A any](data, data2, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	onSolution := data.(func(bool) kont.Expr[A])
	onEnd := data2.(func(error) kont.Expr[A])
	e := current.(kont.Either[error, bool])
	var result kont.Expr[A]
	if err, ok := e.GetLeft(); ok {
		result = onEnd(err)
	} else {
		more, _ := e.GetRight()
		result = onSolution(more)
	}
	return kont.Erased(result.Value), result.Frame
}

// ExprSolveBranch asks for the next solution and calls onSolution or
// onEnd. Fuses ExprPerform(Solve{}) + ExprBind + Either branch.
func ExprSolveBranch[A any](onSolution func(more bool) kont.Expr[A], onEnd func(err error) kont.Expr[A]) kont.Expr[A] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = onSolution
	bf.Data2 = onEnd
	bf.Unwind = solveBranchUnwind[A]
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprSolve
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[A](ef)
}

// exprThenDone performs op and then returns a.
func exprThenDone[A any](op kont.Erased, a A) kont.Expr[A] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(a), Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[A](ef)
}

// ExprCutDone cuts the query and returns a.
// Fuses ExprPerform(CutQuery{}) + ExprThen + ExprReturn.
func ExprCutDone[A any](a A) kont.Expr[A] {
	return exprThenDone(exprCut, a)
}

// ExprDiscardDone discards the query and returns a.
// Fuses ExprPerform(DiscardQuery{}) + ExprThen + ExprReturn.
func ExprDiscardDone[A any](a A) kont.Expr[A] {
	return exprThenDone(exprDiscard, a)
}
