// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"errors"

	"code.hybscloud.com/kont"
)

// Loop runs a recursive query protocol (Cont-world), typically one
// Solve per round. step returns Left(nextState) to continue or
// Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}

// Collect is a protocol that reads every solution with read, then
// discards the query. It stops at the last solution, on failure, or on
// the first exception, which it returns as Left.
func Collect[T any](read func() T) kont.Eff[kont.Either[error, []T]] {
	finish := func(acc []T, err error) kont.Eff[kont.Either[[]T, kont.Either[error, []T]]] {
		result := kont.Right[error](acc)
		if err != nil && !errors.Is(err, ErrFailure) {
			result = kont.Left[error, []T](err)
		}
		return DiscardDone(kont.Right[[]T](result))
	}
	return Loop(make([]T, 0), func(acc []T) kont.Eff[kont.Either[[]T, kont.Either[error, []T]]] {
		return SolveBranch(
			func(more bool) kont.Eff[kont.Either[[]T, kont.Either[error, []T]]] {
				acc = append(acc, read())
				if more {
					return kont.Pure(kont.Left[[]T, kont.Either[error, []T]](acc))
				}
				return finish(acc, nil)
			},
			func(err error) kont.Eff[kont.Either[[]T, kont.Either[error, []T]]] {
				return finish(acc, err)
			},
		)
	})
}
