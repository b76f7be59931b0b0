// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"errors"
	"fmt"
)

var (
	// ErrFailure reports that a goal has no (more) solutions. It is part
	// of normal control flow, not an engine error.
	ErrFailure = errors.New("prolog: goal failed")

	// ErrException reports that solving raised an exception. The
	// exception stays pending on the engine until it is cleared.
	ErrException = errors.New("prolog: exception raised")

	// ErrRunnerClosed is returned when submitting to a closed Runner.
	ErrRunnerClosed = errors.New("prolog: runner closed")

	// ErrJobPanicked is returned for a Runner job that panicked.
	ErrJobPanicked = errors.New("prolog: runner job panicked")
)

// WrongArityError is returned when a predicate is wrapped as a callable
// of a different arity.
type WrongArityError struct {
	Expected int
	Actual   int
}

func (e *WrongArityError) Error() string {
	return fmt.Sprintf("prolog: wrong arity: expected %d, got %d", e.Expected, e.Actual)
}

// ExceptionError carries the rendered exception term of a failed solve.
// It matches ErrException under errors.Is.
type ExceptionError struct {
	Term string
}

func (e *ExceptionError) Error() string {
	return "prolog: exception: " + e.Term
}

// Is reports whether target is ErrException.
func (e *ExceptionError) Is(target error) bool {
	return target == ErrException
}
