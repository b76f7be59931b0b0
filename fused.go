// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/kont"
)

// SolveBind asks for the next solution and passes the outcome to f.
// Fuses Perform(Solve{}) + Bind.
func SolveBind[B any](f func(kont.Either[error, bool]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Solve{}), f)
}

// SolveBranch asks for the next solution and calls onSolution with the
// more flag, or onEnd with ErrFailure or the exception.
// Fuses Perform(Solve{}) + Bind + Either branch.
func SolveBranch[A any](onSolution func(more bool) kont.Eff[A], onEnd func(err error) kont.Eff[A]) kont.Eff[A] {
	return SolveBind(func(e kont.Either[error, bool]) kont.Eff[A] {
		if err, ok := e.GetLeft(); ok {
			return onEnd(err)
		}
		more, _ := e.GetRight()
		return onSolution(more)
	})
}

// CutDone cuts the query and returns a.
// Fuses Perform(CutQuery{}) + Then + Pure.
func CutDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(CutQuery{}), kont.Pure(a))
}

// DiscardDone discards the query and returns a.
// Fuses Perform(DiscardQuery{}) + Then + Pure.
func DiscardDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(DiscardQuery{}), kont.Pure(a))
}
