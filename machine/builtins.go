// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"io"
	"unicode/utf8"
)

func (m *Machine) installBuiltins() {
	builtins := []struct {
		name  string
		arity int
		fn    Foreign
	}{
		{"true", 0, func(*Call) Outcome { return Exit() }},
		{"fail", 0, func(*Call) Outcome { return Fail() }},
		{"false", 0, func(*Call) Outcome { return Fail() }},
		{"=", 2, builtinUnify},
		{`\=`, 2, builtinNotUnify},
		{"throw", 1, builtinThrow},
		{"between", 3, builtinBetween},
		{"member", 2, builtinMember},
		{"write", 1, builtinWrite(false)},
		{"print", 1, builtinWrite(false)},
		{"writeq", 1, builtinWrite(true)},
		{"nl", 0, builtinNl},
		{"atom_length", 2, builtinAtomLength},
	}
	for _, b := range builtins {
		if err := m.Define(systemModule, b.name, b.arity, b.fn); err != nil {
			panic(err)
		}
	}
}

func instantiationError() Outcome {
	return throwValue(errorValue(atomValue("instantiation_error")))
}

func typeError(kind string, culprit value) Outcome {
	return throwValue(errorValue(compoundValue("type_error", atomValue(kind), culprit)))
}

func builtinUnify(c *Call) Outcome {
	if c.e.unify(c.e.slot(c.Arg(0)), c.e.slot(c.Arg(1))) {
		return Exit()
	}
	return Fail()
}

func builtinNotUnify(c *Call) Outcome {
	mk := c.e.snapshot()
	ok := c.e.unify(c.e.slot(c.Arg(0)), c.e.slot(c.Arg(1)))
	c.e.undo(mk)
	if ok {
		return Fail()
	}
	return Exit()
}

func builtinThrow(c *Call) Outcome {
	if c.e.isVar(c.cell(0)) {
		return instantiationError()
	}
	return Throw(c.Arg(0))
}

// intArg reads an integer argument or produces the matching error.
func intArg(c *Call, i int) (int64, *Outcome) {
	h := c.cell(i)
	if c.e.isVar(h) {
		out := instantiationError()
		return 0, &out
	}
	cl := &c.e.heap[h]
	if cl.tag != tagInt {
		out := typeError("integer", c.copyArg(i))
		return 0, &out
	}
	return cl.i, nil
}

// builtinBetween enumerates Low =< X =< High.
func builtinBetween(c *Call) Outcome {
	low, errOut := intArg(c, 0)
	if errOut != nil {
		return *errOut
	}
	high, errOut := intArg(c, 1)
	if errOut != nil {
		return *errOut
	}
	x := c.cell(2)
	if !c.e.isVar(x) {
		v, errOut := intArg(c, 2)
		if errOut != nil {
			return *errOut
		}
		if v >= low && v <= high {
			return Exit()
		}
		return Fail()
	}
	next := low
	if n, ok := c.State().(int64); ok {
		next = n
	}
	if next > high {
		return Fail()
	}
	c.e.unify(x, c.e.push(cell{tag: tagInt, i: next}))
	if next == high {
		return Exit()
	}
	return Retry(next + 1)
}

// builtinMember enumerates the elements of a list. An unbound tail ends
// the enumeration.
// The choice point state is the heap cell of the remaining list.
func builtinMember(c *Call) Outcome {
	e := c.e
	list := c.cell(1)
	if h, ok := c.State().(int); ok {
		list = h
	}
	for {
		l := e.deref(list)
		cl := &e.heap[l]
		if cl.tag != tagCompound || cl.s != "[|]" || cl.arity != 2 {
			return Fail()
		}
		mk := e.snapshot()
		if !e.unify(c.e.slot(c.Arg(0)), cl.args) {
			e.undo(mk)
			list = cl.args + 1
			continue
		}
		return Retry(cl.args + 1)
	}
}

func builtinWrite(quoted bool) Foreign {
	return func(c *Call) Outcome {
		_, _ = io.WriteString(c.Output(), formatValue(c.copyArg(0), quoted))
		return Exit()
	}
}

func builtinNl(c *Call) Outcome {
	_, _ = io.WriteString(c.Output(), "\n")
	return Exit()
}

func builtinAtomLength(c *Call) Outcome {
	h := c.cell(0)
	if c.e.isVar(h) {
		return instantiationError()
	}
	cl := &c.e.heap[h]
	var n int
	switch cl.tag {
	case tagAtom, tagString:
		n = utf8.RuneCountInString(cl.s)
	default:
		return typeError("atom", c.copyArg(0))
	}
	if c.e.unify(c.e.slot(c.Arg(1)), c.e.push(cell{tag: tagInt, i: int64(n)})) {
		return Exit()
	}
	return Fail()
}
