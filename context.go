// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/prolog/fli"
)

// Phase tags of a Context.
type (
	// Activated is the phase of the base context of an activation.
	Activated struct{}
	// InFrame is the phase of a context inside a frame.
	InFrame struct{}
	// InQuery is the phase of an open query. It cannot allocate terms
	// or open queries; open a frame first.
	InQuery struct{}
	// Unknown is the phase of an erased context.
	Unknown struct{}
)

// Phase is the set of context phases.
type Phase interface {
	Activated | InFrame | InQuery | Unknown
}

// Allocating is the set of phases that may allocate terms and open
// queries.
type Allocating interface {
	Activated | InFrame | Unknown
}

type scopeKind uint8

const (
	scopeBase scopeKind = iota
	scopeFrame
	scopeQuery
)

func (k scopeKind) String() string {
	switch k {
	case scopeBase:
		return "activation"
	case scopeFrame:
		return "frame"
	default:
		return "query"
	}
}

// scope is one link of a thread's nested context chain. Exactly one
// open scope per chain is active: entering a child deactivates the
// parent and retiring the child reactivates it.
type scope struct {
	engine *Engine
	act    *Activation
	parent *scope
	kind   scopeKind
	active bool
	closed bool
	// gen counts rewinds; terms carry the generation they were
	// allocated in.
	gen   uint32
	frame fli.FrameID
	query fli.QueryID
}

func (s *scope) assertActive() {
	switch {
	case s == nil:
		panic("prolog: use of a zero Context")
	case s.closed:
		panic("prolog: " + s.kind.String() + " is closed")
	case !s.active:
		panic("prolog: " + s.kind.String() + " context is not activated")
	}
	s.engine.assertCurrent()
}

// assertAllocating rejects allocation in a query scope reached through
// an erased context.
func (s *scope) assertAllocating() {
	s.assertActive()
	if s.kind == scopeQuery {
		panic("prolog: cannot allocate inside an open query; open a frame first")
	}
}

// enter opens a child scope and deactivates s.
func (s *scope) enter(kind scopeKind) *scope {
	s.active = false
	child := &scope{engine: s.engine, act: s.act, parent: s, kind: kind, active: true}
	s.act.top = child
	return child
}

// retire closes s and hands control back to its parent.
func (s *scope) retire() {
	s.close()
	s.parent.active = true
	s.act.top = s.parent
}

func (s *scope) close() {
	s.closed = true
	s.active = false
}

// Context is the capability required by every operation that touches
// engine state. The phase P decides at compile time which operations
// are legal; each operation re-verifies at run time that the context is
// the innermost live one and that its engine is active on the calling
// thread.
type Context[P Phase] struct {
	s *scope
}

// AssertActivated panics unless c is the innermost live context of an
// engine active on the calling thread.
func (c Context[P]) AssertActivated() {
	c.s.assertActive()
}

// IsActivated reports whether c is open and has no live child.
func (c Context[P]) IsActivated() bool {
	return c.s != nil && !c.s.closed && c.s.active
}

// Engine returns the engine of c.
func (c Context[P]) Engine() *Engine {
	if c.s == nil {
		return nil
	}
	return c.s.engine
}

// Phase returns the name of the phase of c.
func (c Context[P]) Phase() string {
	var p P
	switch any(p).(type) {
	case Activated:
		return "activated"
	case InFrame:
		return "frame"
	case InQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Erase forgets the phase of c. The erased context shares c's scope.
func (c Context[P]) Erase() Context[Unknown] {
	return Context[Unknown]{s: c.s}
}

// HasException reports whether the engine has a pending exception.
func (c Context[P]) HasException() bool {
	c.s.assertActive()
	return c.s.engine.drv.HasException()
}

// AssertNoException panics if the engine has a pending exception.
func (c Context[P]) AssertNoException() {
	if c.HasException() {
		panic("prolog: pending exception: " + pendingText(c.s.engine.drv))
	}
}

// ClearException drops the pending exception, if any.
func (c Context[P]) ClearException() {
	c.s.assertActive()
	c.s.engine.drv.ClearException()
}

// ExceptionError returns the pending exception as an *ExceptionError,
// or nil when there is none. The exception stays pending.
func (c Context[P]) ExceptionError() error {
	if !c.HasException() {
		return nil
	}
	return &ExceptionError{Term: pendingText(c.s.engine.drv)}
}

// OpenFrame opens a frame and deactivates c until the frame is retired.
func (c Context[P]) OpenFrame() *Frame {
	c.s.assertActive()
	fid := c.s.engine.drv.OpenFrame()
	child := c.s.enter(scopeFrame)
	child.frame = fid
	return &Frame{Context: Context[InFrame]{s: child}}
}

// pendingText renders the pending exception inside a scratch frame so
// that nothing stays allocated.
func pendingText(drv fli.Driver) string {
	f := drv.OpenFrame()
	defer drv.DiscardFrame(f)
	t := drv.Exception(0)
	if t == 0 {
		return ""
	}
	return drv.Format(t)
}

// NewTerm allocates a fresh variable in the scope of c.
func NewTerm[P Allocating](c Context[P]) Term {
	return NewTerms(c, 1)[0]
}

// NewTerms allocates n fresh variables in the scope of c.
func NewTerms[P Allocating](c Context[P], n int) []Term {
	c.s.assertAllocating()
	if n == 0 {
		return nil
	}
	base := c.s.engine.drv.NewTermRefs(n)
	if base == 0 {
		panic("prolog: out of term references")
	}
	ts := make([]Term, n)
	for i := range ts {
		ts[i] = Term{ref: base + fli.TermRef(i), s: c.s, gen: c.s.gen}
	}
	return ts
}

// Exception returns the pending exception as a term of c's scope.
func Exception[P Allocating](c Context[P]) (Term, bool) {
	c.s.assertAllocating()
	t := c.s.engine.drv.Exception(0)
	if t == 0 {
		return Term{}, false
	}
	return Term{ref: t, s: c.s, gen: c.s.gen}, true
}
