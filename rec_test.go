// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog_test

import (
	"errors"
	"slices"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/prolog"
)

func TestLoopCountsSolutions(t *testing.T) {
	_, q, _ := openColor(t, "")

	count := prolog.Loop(0, func(n int) kont.Eff[kont.Either[int, int]] {
		return prolog.SolveBranch(
			func(more bool) kont.Eff[kont.Either[int, int]] {
				if more {
					return kont.Pure(kont.Left[int, int](n + 1))
				}
				return prolog.CutDone(kont.Right[int](n + 1))
			},
			func(error) kont.Eff[kont.Either[int, int]] {
				return prolog.DiscardDone(kont.Right[int](n))
			},
		)
	})
	if got := prolog.Exec(q, count); got != 3 {
		t.Fatalf("counted %d solutions, want 3", got)
	}
}

func TestCollect(t *testing.T) {
	_, q, x := openColor(t, "")

	r := prolog.Exec(q, prolog.Collect(func() string { return atomOf(x) }))
	got, ok := r.GetRight()
	if !ok {
		err, _ := r.GetLeft()
		t.Fatalf("Collect failed: %v", err)
	}
	if want := []string{"red", "green", "blue"}; !slices.Equal(got, want) {
		t.Fatalf("collected %v, want %v", got, want)
	}
	if !x.IsVar() {
		t.Fatalf("x = %v after Collect, want unbound", x)
	}
}

func TestCollectNoSolutions(t *testing.T) {
	_, q, x := openColor(t, "purple")

	r := prolog.Exec(q, prolog.Collect(func() string { return atomOf(x) }))
	got, ok := r.GetRight()
	if !ok || len(got) != 0 {
		t.Fatalf("Collect on failure = %v", r)
	}
}

func TestCollectException(t *testing.T) {
	a := newEngine(t).Activate()
	defer a.Release()
	ctx := a.Context()
	q := prolog.Open(ctx, callable[prolog.Args0](t, ctx, "boom"), prolog.DefaultModule, prolog.Args0{})

	r := prolog.Exec(q, prolog.Collect(func() int { return 0 }))
	err, ok := r.GetLeft()
	if !ok || !errors.Is(err, prolog.ErrException) {
		t.Fatalf("Collect on exception = %v", r)
	}
	ctx.ClearException()
}
