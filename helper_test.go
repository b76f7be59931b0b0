// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"code.hybscloud.com/prolog"
	"code.hybscloud.com/prolog/machine"
)

// newMachine returns a machine with the fixture predicates:
//
//	answer(42).
//	color(red). color(green). color(blue).
//	greet :- write(hello), nl.
//	boom :- throw(boom).
func newMachine(tb testing.TB, out io.Writer) *machine.Machine {
	tb.Helper()
	m, err := machine.New(machine.Config{Output: out})
	if err != nil {
		tb.Fatal(err)
	}
	must := func(err error) {
		if err != nil {
			tb.Fatal(err)
		}
	}
	must(m.Assert("", "answer", 42))
	must(m.Assert("", "color", "red"))
	must(m.Assert("", "color", "green"))
	must(m.Assert("", "color", "blue"))
	must(m.Define("", "greet", 0, func(c *machine.Call) machine.Outcome {
		_, _ = io.WriteString(c.Output(), "hello\n")
		return machine.Exit()
	}))
	must(m.Define("", "boom", 0, func(c *machine.Call) machine.Outcome {
		d := c.Driver()
		t := d.NewTermRefs(1)
		d.UnifyAtom(t, "boom")
		return machine.Throw(t)
	}))
	return m
}

// newEngine creates an engine on a fresh fixture machine and closes it
// when the test ends.
func newEngine(tb testing.TB, opts ...prolog.Option) *prolog.Engine {
	tb.Helper()
	e, err := prolog.New(newMachine(tb, io.Discard), opts...)
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() { _ = e.Close() })
	return e
}

// callable resolves name in the default module as a callable of arity A.
func callable[A prolog.Args, P prolog.Phase](tb testing.TB, ctx prolog.Context[P], name string) prolog.CallablePredicate[A] {
	tb.Helper()
	p, err := prolog.LookupPredicate(ctx, prolog.DefaultModule, name, prolog.ArityOf[A]())
	if err != nil {
		tb.Fatal(err)
	}
	c, err := prolog.NewCallable[A](p)
	if err != nil {
		tb.Fatal(err)
	}
	return c
}

// mustPanic runs fn and fails unless it panics with a message
// containing want.
func mustPanic(tb testing.TB, want string, fn func()) {
	tb.Helper()
	defer func() {
		tb.Helper()
		r := recover()
		if r == nil {
			tb.Fatalf("expected panic containing %q", want)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, want) {
			tb.Fatalf("panic %q, want it to contain %q", msg, want)
		}
	}()
	fn()
}
