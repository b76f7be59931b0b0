// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"code.hybscloud.com/prolog/fli"
)

// TermType implements fli.Driver.
func (m *Machine) TermType(t fli.TermRef) fli.TermType {
	e := m.current()
	c := &e.heap[e.deref(e.slot(t))]
	switch c.tag {
	case tagRef:
		return fli.TypeVariable
	case tagAtom:
		return fli.TypeAtom
	case tagInt:
		return fli.TypeInteger
	case tagFloat:
		return fli.TypeFloat
	case tagString:
		return fli.TypeString
	default:
		return fli.TypeCompound
	}
}

func (m *Machine) unifyCell(t fli.TermRef, c cell) bool {
	e := m.current()
	h := e.slot(t)
	mk := e.snapshot()
	if e.unify(h, e.push(c)) {
		return true
	}
	e.undo(mk)
	return false
}

// UnifyInt64 implements fli.Driver.
func (m *Machine) UnifyInt64(t fli.TermRef, v int64) bool {
	return m.unifyCell(t, cell{tag: tagInt, i: v})
}

// UnifyFloat64 implements fli.Driver.
func (m *Machine) UnifyFloat64(t fli.TermRef, v float64) bool {
	return m.unifyCell(t, cell{tag: tagFloat, f: v})
}

// UnifyAtom implements fli.Driver.
func (m *Machine) UnifyAtom(t fli.TermRef, name string) bool {
	return m.unifyCell(t, cell{tag: tagAtom, s: name})
}

// UnifyString implements fli.Driver.
func (m *Machine) UnifyString(t fli.TermRef, s string) bool {
	return m.unifyCell(t, cell{tag: tagString, s: s})
}

// UnifyCompound implements fli.Driver. The arguments are the arity
// consecutive references starting at args.
func (m *Machine) UnifyCompound(t fli.TermRef, name string, args fli.TermRef, arity int) bool {
	e := m.current()
	cells := make([]int, arity)
	for i := range arity {
		cells[i] = e.slot(args + fli.TermRef(i))
	}
	h := e.slot(t)
	mk := e.snapshot()
	if e.unify(h, e.compound(name, cells)) {
		return true
	}
	e.undo(mk)
	return false
}

func (m *Machine) get(t fli.TermRef, want tag) (*cell, bool) {
	e := m.current()
	c := &e.heap[e.deref(e.slot(t))]
	if c.tag != want {
		return nil, false
	}
	return c, true
}

// GetInt64 implements fli.Driver.
func (m *Machine) GetInt64(t fli.TermRef) (int64, bool) {
	if c, ok := m.get(t, tagInt); ok {
		return c.i, true
	}
	return 0, false
}

// GetFloat64 implements fli.Driver. Integers convert.
func (m *Machine) GetFloat64(t fli.TermRef) (float64, bool) {
	if c, ok := m.get(t, tagFloat); ok {
		return c.f, true
	}
	if c, ok := m.get(t, tagInt); ok {
		return float64(c.i), true
	}
	return 0, false
}

// GetAtom implements fli.Driver.
func (m *Machine) GetAtom(t fli.TermRef) (string, bool) {
	if c, ok := m.get(t, tagAtom); ok {
		return c.s, true
	}
	return "", false
}

// GetString implements fli.Driver.
func (m *Machine) GetString(t fli.TermRef) (string, bool) {
	if c, ok := m.get(t, tagString); ok {
		return c.s, true
	}
	return "", false
}

// GetCompound implements fli.Driver.
func (m *Machine) GetCompound(t fli.TermRef) (string, int, bool) {
	if c, ok := m.get(t, tagCompound); ok {
		return c.s, c.arity, true
	}
	return "", 0, false
}

// GetArg implements fli.Driver.
func (m *Machine) GetArg(index int, t, arg fli.TermRef) bool {
	c, ok := m.get(t, tagCompound)
	if !ok || index < 1 || index > c.arity {
		return false
	}
	e := m.current()
	mk := e.snapshot()
	if e.unify(e.slot(arg), c.args+index-1) {
		return true
	}
	e.undo(mk)
	return false
}

// Format implements fli.Driver.
func (m *Machine) Format(t fli.TermRef) string {
	e := m.current()
	return formatValue(e.copyOut(e.slot(t)), true)
}
