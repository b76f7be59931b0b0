// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"code.hybscloud.com/prolog/fli"
)

type tag uint8

const (
	tagRef tag = iota
	tagAtom
	tagInt
	tagFloat
	tagString
	tagCompound
)

// cell is one heap slot. An unbound variable is a tagRef cell pointing
// at itself. A compound stores its arguments in the arity cells that
// follow args.
type cell struct {
	tag   tag
	ref   int
	i     int64
	f     float64
	s     string
	arity int
	args  int
}

// mark is a snapshot of the three stacks.
type mark struct {
	refs  int
	heap  int
	trail int
}

type scopeKind uint8

const (
	scopeFrame scopeKind = iota
	scopeQuery
)

// scope is one entry on the frame/query nesting stack.
type scope struct {
	kind  scopeKind
	id    uint64
	mark  mark
	query *query
}

// engine is the per-engine state. It is only touched by the thread the
// engine is bound to.
type engine struct {
	id      fli.EngineID
	owner   uint64
	heap    []cell
	refs    []int
	trail   []int
	scopes  []scope
	nextID  uint64
	pending *value
	maxRefs int
}

func newEngine(id fli.EngineID, maxRefs int) *engine {
	return &engine{
		id:      id,
		heap:    make([]cell, 0, 256),
		refs:    make([]int, 0, 64),
		trail:   make([]int, 0, 64),
		maxRefs: maxRefs,
	}
}

func (e *engine) snapshot() mark {
	return mark{refs: len(e.refs), heap: len(e.heap), trail: len(e.trail)}
}

// undo resets every binding recorded since m.trail.
func (e *engine) undo(m mark) {
	for i := len(e.trail) - 1; i >= m.trail; i-- {
		h := e.trail[i]
		e.heap[h].ref = h
	}
	e.trail = e.trail[:m.trail]
}

// rewind undoes bindings and drops heap cells and references since m.
func (e *engine) rewind(m mark) {
	e.undo(m)
	e.heap = e.heap[:m.heap]
	if len(e.refs) > m.refs {
		e.refs = e.refs[:m.refs]
	}
}

func (e *engine) newVar() int {
	h := len(e.heap)
	e.heap = append(e.heap, cell{tag: tagRef, ref: h})
	return h
}

func (e *engine) push(c cell) int {
	h := len(e.heap)
	e.heap = append(e.heap, c)
	return h
}

func (e *engine) deref(h int) int {
	for {
		c := &e.heap[h]
		if c.tag != tagRef || c.ref == h {
			return h
		}
		h = c.ref
	}
}

func (e *engine) isVar(h int) bool {
	c := &e.heap[h]
	return c.tag == tagRef && c.ref == h
}

func (e *engine) bind(v, to int) {
	e.heap[v].ref = to
	e.trail = append(e.trail, v)
}

// newRefs allocates n consecutive term reference slots holding fresh
// variables and returns the first slot as a TermRef, or 0 on overflow.
func (e *engine) newRefs(n int) fli.TermRef {
	if n < 0 || (e.maxRefs > 0 && len(e.refs)+n > e.maxRefs) {
		return 0
	}
	first := len(e.refs) + 1
	for range n {
		e.refs = append(e.refs, e.newVar())
	}
	return fli.TermRef(first)
}

// slot resolves a term reference to the heap cell it holds.
func (e *engine) slot(t fli.TermRef) int {
	i := int(t) - 1
	if i < 0 || i >= len(e.refs) {
		panic("machine: invalid term reference")
	}
	return e.refs[i]
}

// unify unifies two heap cells, recording every binding on the trail.
// On failure, bindings made so far remain; callers undo to a mark.
func (e *engine) unify(a, b int) bool {
	type pair struct{ a, b int }
	work := []pair{{a, b}}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		x, y := e.deref(p.a), e.deref(p.b)
		if x == y {
			continue
		}
		cx, cy := &e.heap[x], &e.heap[y]
		switch {
		case e.isVar(x) && e.isVar(y):
			// Bind the younger variable to the older one.
			if x < y {
				e.bind(y, x)
			} else {
				e.bind(x, y)
			}
		case e.isVar(x):
			e.bind(x, y)
		case e.isVar(y):
			e.bind(y, x)
		case cx.tag != cy.tag:
			return false
		default:
			switch cx.tag {
			case tagAtom, tagString:
				if cx.s != cy.s {
					return false
				}
			case tagInt:
				if cx.i != cy.i {
					return false
				}
			case tagFloat:
				if cx.f != cy.f {
					return false
				}
			case tagCompound:
				if cx.s != cy.s || cx.arity != cy.arity {
					return false
				}
				for i := range cx.arity {
					work = append(work, pair{cx.args + i, cy.args + i})
				}
			}
		}
	}
	return true
}

// tryUnify unifies a and b, leaving no bindings behind on failure.
func (e *engine) tryUnify(a, b int) bool {
	m := e.snapshot()
	if e.unify(a, b) {
		return true
	}
	e.undo(m)
	return false
}

// compound pushes a compound cell whose arguments are fresh copies of the
// cells at args[0..arity).
func (e *engine) compound(name string, args []int) int {
	start := len(e.heap)
	for _, a := range args {
		e.push(cell{tag: tagRef, ref: e.deref(a)})
	}
	return e.push(cell{tag: tagCompound, s: name, arity: len(args), args: start})
}

// top returns the innermost scope, or nil.
func (e *engine) top() *scope {
	if len(e.scopes) == 0 {
		return nil
	}
	return &e.scopes[len(e.scopes)-1]
}

func (e *engine) pushScope(kind scopeKind, q *query) uint64 {
	e.nextID++
	e.scopes = append(e.scopes, scope{kind: kind, id: e.nextID, mark: e.snapshot(), query: q})
	return e.nextID
}

// innermost checks that id names the innermost scope of the given kind.
func (e *engine) innermost(kind scopeKind, id uint64) *scope {
	s := e.top()
	if s == nil || s.kind != kind || s.id != id {
		if kind == scopeFrame {
			panic("machine: frame is not the innermost scope")
		}
		panic("machine: query is not the innermost scope")
	}
	return s
}

func (e *engine) popScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}
