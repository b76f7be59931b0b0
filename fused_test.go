// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/prolog"
)

// openColor activates e and opens color(X) with X bound to bind when
// bind is not empty.
func openColor(t *testing.T, bind string) (prolog.Context[prolog.Activated], *prolog.Query, prolog.Term) {
	t.Helper()
	a := newEngine(t).Activate()
	t.Cleanup(a.Release)
	ctx := a.Context()
	x := prolog.NewTerm(ctx)
	if bind != "" {
		x.UnifyAtom(bind)
	}
	q := prolog.Open(ctx, callable[prolog.Args1](t, ctx, "color"), prolog.DefaultModule, prolog.Args1{x})
	return ctx, q, x
}

func atomOf(x prolog.Term) string {
	s, _ := x.Atom()
	return s
}

func TestExecSolveBranchCut(t *testing.T) {
	ctx, q, x := openColor(t, "")

	protocol := prolog.SolveBranch(
		func(bool) kont.Eff[string] { return prolog.CutDone(atomOf(x)) },
		func(err error) kont.Eff[string] { return prolog.DiscardDone(err.Error()) },
	)
	if got := prolog.Exec(q, protocol); got != "red" {
		t.Fatalf("got %q, want red", got)
	}
	if !ctx.IsActivated() || atomOf(x) != "red" {
		t.Fatalf("after cut: activated=%v x=%v", ctx.IsActivated(), x)
	}
}

func TestExecSolveBranchFailure(t *testing.T) {
	ctx, q, _ := openColor(t, "purple")

	protocol := prolog.SolveBranch(
		func(bool) kont.Eff[error] { return prolog.CutDone[error](nil) },
		func(err error) kont.Eff[error] { return prolog.DiscardDone(err) },
	)
	if err := prolog.Exec(q, protocol); !errors.Is(err, prolog.ErrFailure) {
		t.Fatalf("got %v, want ErrFailure", err)
	}
	if !ctx.IsActivated() {
		t.Fatal("context not reactivated")
	}
}

func TestExecReleasesOpenQuery(t *testing.T) {
	ctx, q, x := openColor(t, "")

	protocol := prolog.SolveBind(func(e kont.Either[error, bool]) kont.Eff[bool] {
		more, _ := e.GetRight()
		return kont.Pure(more)
	})
	if more := prolog.Exec(q, protocol); !more {
		t.Fatal("first color solution reported as last")
	}
	if !ctx.IsActivated() || !x.IsVar() {
		t.Fatalf("open query not discarded: activated=%v x=%v", ctx.IsActivated(), x)
	}
}

func TestExecUnhandledEffect(t *testing.T) {
	_, q, _ := openColor(t, "")
	mustPanic(t, "unhandled effect in queryHandler", func() {
		prolog.Exec(q, kont.ThrowError[string, int]("stray"))
	})
}
