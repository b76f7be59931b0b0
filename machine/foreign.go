// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"io"

	"code.hybscloud.com/prolog/fli"
)

// Foreign is a predicate implemented in Go. It is called once per solve
// step. The first call of a query sees a nil State; returning Retry
// records a choice point whose state is passed to the next call.
// Bindings made by a call are undone before the next call.
type Foreign func(c *Call) Outcome

type outcomeKind uint8

const (
	outcomeFail outcomeKind = iota
	outcomeExit
	outcomeRetry
	outcomeThrow
)

// Outcome is the result of one call of a Foreign predicate.
type Outcome struct {
	kind  outcomeKind
	state any
	term  fli.TermRef
	val   *value
}

// Fail reports that there are no (more) solutions.
func Fail() Outcome { return Outcome{kind: outcomeFail} }

// Exit reports a solution with no choice point left.
func Exit() Outcome { return Outcome{kind: outcomeExit} }

// Retry reports a solution and keeps a choice point carrying state.
func Retry(state any) Outcome { return Outcome{kind: outcomeRetry, state: state} }

// Throw raises the term t as an exception.
func Throw(t fli.TermRef) Outcome { return Outcome{kind: outcomeThrow, term: t} }

func throwValue(v value) Outcome { return Outcome{kind: outcomeThrow, val: &v} }

// Call is the environment of one Foreign invocation.
type Call struct {
	m     *Machine
	e     *engine
	args  fli.TermRef
	arity int
	state any
}

// Driver returns the machine, for term access on the calling engine.
func (c *Call) Driver() fli.Driver { return c.m }

// Arity returns the number of arguments.
func (c *Call) Arity() int { return c.arity }

// Arg returns the i-th (0-based) argument.
func (c *Call) Arg(i int) fli.TermRef {
	if i < 0 || i >= c.arity {
		panic("machine: argument index out of range")
	}
	return c.args + fli.TermRef(i)
}

// State returns the state passed to Retry by the previous call, or nil.
func (c *Call) State() any { return c.state }

// Output returns the writer configured for write/1 and friends.
func (c *Call) Output() io.Writer { return c.m.out }

func (c *Call) cell(i int) int { return c.e.deref(c.e.slot(c.Arg(i))) }

func (c *Call) copyArg(i int) value { return c.e.copyOut(c.e.slot(c.Arg(i))) }
