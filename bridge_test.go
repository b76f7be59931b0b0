// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog_test

import (
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/prolog"
)

func TestReifyThenExecExpr(t *testing.T) {
	_, q, x := openColor(t, "")

	cont := prolog.SolveBranch(
		func(bool) kont.Eff[string] { return prolog.CutDone(atomOf(x)) },
		func(error) kont.Eff[string] { return prolog.DiscardDone("") },
	)
	if got := prolog.ExecExpr(q, prolog.Reify(cont)); got != "red" {
		t.Fatalf("got %q, want red", got)
	}
}

func TestReflectThenExec(t *testing.T) {
	_, q, x := openColor(t, "blue")

	expr := prolog.ExprSolveBranch(
		func(more bool) kont.Expr[bool] { return prolog.ExprCutDone(more) },
		func(error) kont.Expr[bool] { return prolog.ExprDiscardDone(true) },
	)
	if more := prolog.Exec(q, prolog.Reflect(expr)); more {
		t.Fatal("color(blue) is the last fact")
	}
	if atomOf(x) != "blue" {
		t.Fatalf("x = %v", x)
	}
}

func TestReifyStepAdvance(t *testing.T) {
	_, q, _ := openColor(t, "")
	defer q.Release()

	n := 0
	cont := prolog.Loop(0, func(i int) kont.Eff[kont.Either[int, int]] {
		return prolog.SolveBranch(
			func(bool) kont.Eff[kont.Either[int, int]] { return kont.Pure(kont.Left[int, int](i + 1)) },
			func(error) kont.Eff[kont.Either[int, int]] { return prolog.DiscardDone(kont.Right[int](i)) },
		)
	})
	r, susp := prolog.Step(prolog.Reify(cont))
	for susp != nil {
		n++
		r, susp = prolog.Advance(q, susp)
	}
	if r != 3 {
		t.Fatalf("loop saw %d solutions, want 3", r)
	}
	// Four Solve operations and the final DiscardQuery.
	if n != 5 {
		t.Fatalf("%d suspensions, want 5", n)
	}
}
