// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"fmt"
)

// value is a term copied off the stacks. Exceptions and facts are kept
// as values so they survive rewinds of the stacks they came from.
type value struct {
	tag  tag
	v    int // variable number when tag == tagRef
	i    int64
	f    float64
	s    string
	args []value
}

// Text is a Prolog string (as opposed to an atom) for Assert.
type Text string

func atomValue(name string) value { return value{tag: tagAtom, s: name} }

func intValue(i int64) value { return value{tag: tagInt, i: i} }

func compoundValue(name string, args ...value) value {
	return value{tag: tagCompound, s: name, args: args}
}

func varValue(n int) value { return value{tag: tagRef, v: n} }

// errorValue builds error(Formal, _), the standard exception shape.
func errorValue(formal value) value {
	return compoundValue("error", formal, varValue(0))
}

func indicatorValue(name string, arity int) value {
	return compoundValue("/", atomValue(name), intValue(int64(arity)))
}

// fromGo converts a host value for Assert.
func fromGo(x any) (value, error) {
	switch v := x.(type) {
	case int:
		return intValue(int64(v)), nil
	case int32:
		return intValue(int64(v)), nil
	case int64:
		return intValue(v), nil
	case uint32:
		return intValue(int64(v)), nil
	case float64:
		return value{tag: tagFloat, f: v}, nil
	case float32:
		return value{tag: tagFloat, f: float64(v)}, nil
	case string:
		return atomValue(v), nil
	case Text:
		return value{tag: tagString, s: string(v)}, nil
	case bool:
		if v {
			return atomValue("true"), nil
		}
		return atomValue("false"), nil
	default:
		return value{}, fmt.Errorf("machine: unsupported fact argument type %T", x)
	}
}

// copyOut copies the term at heap cell h into a value. Variables are
// numbered by first occurrence so sharing is preserved.
func (e *engine) copyOut(h int) value {
	vars := make(map[int]int)
	var walk func(h int) value
	walk = func(h int) value {
		h = e.deref(h)
		c := &e.heap[h]
		switch c.tag {
		case tagRef:
			n, ok := vars[h]
			if !ok {
				n = len(vars) + 1
				vars[h] = n
			}
			return varValue(n)
		case tagCompound:
			args := make([]value, c.arity)
			for i := range c.arity {
				args[i] = walk(c.args + i)
			}
			return value{tag: tagCompound, s: c.s, args: args}
		default:
			return value{tag: c.tag, i: c.i, f: c.f, s: c.s}
		}
	}
	return walk(h)
}

// copyIn builds v on the heap and returns its cell. Variable number 0 is
// anonymous: every occurrence is a distinct fresh variable.
func (e *engine) copyIn(v value) int {
	vars := make(map[int]int)
	var build func(v value) int
	build = func(v value) int {
		switch v.tag {
		case tagRef:
			if v.v == 0 {
				return e.newVar()
			}
			h, ok := vars[v.v]
			if !ok {
				h = e.newVar()
				vars[v.v] = h
			}
			return h
		case tagCompound:
			args := make([]int, len(v.args))
			for i, a := range v.args {
				args[i] = build(a)
			}
			return e.compound(v.s, args)
		default:
			return e.push(cell{tag: v.tag, i: v.i, f: v.f, s: v.s})
		}
	}
	return build(v)
}
