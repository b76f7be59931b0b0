// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"code.hybscloud.com/prolog/fli"
)

type query struct {
	proc      *procedure
	args      fli.TermRef
	flags     fli.QueryFlags
	state     any
	done      bool
	exception *value
}

func (e *engine) findQuery(id fli.QueryID) *query {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		s := &e.scopes[i]
		if s.kind == scopeQuery && s.id == uint64(id) {
			return s.query
		}
	}
	panic("machine: no such open query")
}

// OpenQuery implements fli.Driver. The module argument selects the
// context module; resolution already happened in Predicate.
func (m *Machine) OpenQuery(_ fli.ModuleID, flags fli.QueryFlags, p fli.PredicateID, args fli.TermRef) fli.QueryID {
	e := m.current()
	proc := m.db.lookup(p)
	if proc.key.arity > 0 {
		// Validate the argument block before it is captured.
		e.slot(args + fli.TermRef(proc.key.arity-1))
	}
	q := &query{proc: proc, args: args, flags: flags}
	return fli.QueryID(e.pushScope(scopeQuery, q))
}

// NextSolution implements fli.Driver.
func (m *Machine) NextSolution(id fli.QueryID) fli.Status {
	e := m.current()
	s := e.innermost(scopeQuery, uint64(id))
	q := s.query
	if q.done {
		return status(q.flags, fli.StatusFailure)
	}
	e.rewind(s.mark)

	c := &Call{m: m, e: e, args: q.args, arity: q.proc.key.arity, state: q.state}
	out := m.solve(q.proc, c)

	switch out.kind {
	case outcomeFail:
		e.rewind(s.mark)
		q.done = true
		return status(q.flags, fli.StatusFailure)
	case outcomeExit:
		q.done = true
		return status(q.flags, fli.StatusLast)
	case outcomeRetry:
		q.state = out.state
		return status(q.flags, fli.StatusTrue)
	default:
		v := out.val
		if v == nil {
			copied := e.copyOut(e.slot(out.term))
			v = &copied
		}
		e.rewind(s.mark)
		q.done = true
		q.exception = v
		if q.flags&fli.FlagPassException != 0 {
			pending := *v
			e.pending = &pending
		}
		return status(q.flags, fli.StatusException)
	}
}

// status maps an extended status to the plain protocol when the query
// was opened without FlagExtStatus.
func status(flags fli.QueryFlags, s fli.Status) fli.Status {
	if flags&fli.FlagExtStatus != 0 {
		return s
	}
	switch s {
	case fli.StatusTrue, fli.StatusLast:
		return 1
	default:
		return 0
	}
}

func (m *Machine) solve(p *procedure, c *Call) Outcome {
	fn, defined := m.definition(p)
	switch {
	case fn != nil:
		return fn(c)
	case defined:
		return m.solveFacts(p, c)
	default:
		return throwValue(errorValue(compoundValue("existence_error",
			atomValue("procedure"), indicatorValue(p.key.name, p.key.arity))))
	}
}

type factCursor struct {
	facts [][]value
	next  int
}

// solveFacts unifies the arguments with each fact in turn.
func (m *Machine) solveFacts(p *procedure, c *Call) Outcome {
	cur, ok := c.state.(*factCursor)
	if !ok {
		cur = &factCursor{facts: m.snapshotFacts(p)}
	}
	e := c.e
	for cur.next < len(cur.facts) {
		fact := cur.facts[cur.next]
		cur.next++
		mk := e.snapshot()
		matched := true
		for i, v := range fact {
			if !e.unify(e.slot(c.Arg(i)), e.copyIn(v)) {
				matched = false
				break
			}
		}
		if !matched {
			e.rewind(mk)
			continue
		}
		if cur.next < len(cur.facts) {
			return Retry(cur)
		}
		return Exit()
	}
	return Fail()
}

// CutQuery implements fli.Driver.
func (m *Machine) CutQuery(id fli.QueryID) {
	e := m.current()
	s := e.innermost(scopeQuery, uint64(id))
	s.query.done = true
	e.popScope()
}

// CloseQuery implements fli.Driver.
func (m *Machine) CloseQuery(id fli.QueryID) {
	e := m.current()
	s := e.innermost(scopeQuery, uint64(id))
	s.query.done = true
	e.rewind(s.mark)
	e.popScope()
}
