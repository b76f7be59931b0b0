// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/prolog/fli"
)

// Term is a term reference together with the scope that allocated it.
// A term is valid while that scope is open and its engine is active on
// the calling thread; using it otherwise panics.
type Term struct {
	ref fli.TermRef
	s   *scope
	gen uint32
}

func (t Term) check() fli.Driver {
	switch {
	case t.s == nil:
		panic("prolog: use of a zero Term")
	case t.s.closed:
		panic("prolog: term used after its " + t.s.kind.String() + " closed")
	case t.gen != t.s.gen:
		panic("prolog: term used after its frame was rewound")
	}
	t.s.engine.assertCurrent()
	return t.s.engine.drv
}

// Ref returns the driver handle of t.
func (t Term) Ref() fli.TermRef {
	return t.ref
}

// Type returns the type of the value bound to t.
func (t Term) Type() fli.TermType {
	return t.check().TermType(t.ref)
}

// IsVar reports whether t is unbound.
func (t Term) IsVar() bool {
	return t.Type() == fli.TypeVariable
}

// Unify unifies t with u. On failure no bindings are left behind. Terms
// of different engines panic.
func (t Term) Unify(u Term) bool {
	drv := t.check()
	u.check()
	if t.s.engine != u.s.engine {
		panic("prolog: unify terms of different engines")
	}
	return drv.Unify(t.ref, u.ref)
}

// UnifyInt64 unifies t with an integer.
func (t Term) UnifyInt64(v int64) bool {
	return t.check().UnifyInt64(t.ref, v)
}

// UnifyFloat64 unifies t with a float.
func (t Term) UnifyFloat64(v float64) bool {
	return t.check().UnifyFloat64(t.ref, v)
}

// UnifyAtom unifies t with the atom name.
func (t Term) UnifyAtom(name string) bool {
	return t.check().UnifyAtom(t.ref, name)
}

// UnifyString unifies t with a string object.
func (t Term) UnifyString(s string) bool {
	return t.check().UnifyString(t.ref, s)
}

// UnifyBool unifies t with the atom true or false.
func (t Term) UnifyBool(v bool) bool {
	if v {
		return t.UnifyAtom("true")
	}
	return t.UnifyAtom("false")
}

// Int64 returns the integer bound to t.
func (t Term) Int64() (int64, bool) {
	return t.check().GetInt64(t.ref)
}

// Float64 returns the number bound to t as a float.
func (t Term) Float64() (float64, bool) {
	return t.check().GetFloat64(t.ref)
}

// Atom returns the name of the atom bound to t.
func (t Term) Atom() (string, bool) {
	return t.check().GetAtom(t.ref)
}

// Text returns the string object bound to t.
func (t Term) Text() (string, bool) {
	return t.check().GetString(t.ref)
}

// Bool returns the value of the atom true or false bound to t.
func (t Term) Bool() (v, ok bool) {
	switch a, _ := t.Atom(); a {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// String renders t in quoted form.
func (t Term) String() string {
	return t.check().Format(t.ref)
}
