// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog_test

import (
	"errors"
	"testing"
	"testing/quick"

	"code.hybscloud.com/prolog"
	"code.hybscloud.com/prolog/fli"
)

func TestPhaseNames(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()

	if got := ctx.Phase(); got != "activated" {
		t.Fatalf("base phase %q", got)
	}
	if got := ctx.Erase().Phase(); got != "unknown" {
		t.Fatalf("erased phase %q", got)
	}
	f := ctx.OpenFrame()
	defer f.Release()
	if got := f.Phase(); got != "frame" {
		t.Fatalf("frame phase %q", got)
	}
	q := prolog.Open(f.Context, callable[prolog.Args0](t, f.Context, "greet"), prolog.DefaultModule, prolog.Args0{})
	defer q.Release()
	if got := q.Phase(); got != "query" {
		t.Fatalf("query phase %q", got)
	}
}

func TestZeroValues(t *testing.T) {
	var c prolog.Context[prolog.Activated]
	mustPanic(t, "zero Context", c.AssertActivated)
	if c.IsActivated() {
		t.Fatal("zero context reports activated")
	}
	if c.Engine() != nil {
		t.Fatal("zero context has an engine")
	}
	var x prolog.Term
	mustPanic(t, "zero Term", func() { x.Type() })
}

func TestChildDeactivatesParent(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()

	f := ctx.OpenFrame()
	if ctx.IsActivated() {
		t.Fatal("parent still activated with an open frame")
	}
	mustPanic(t, "activation context is not activated", func() { prolog.NewTerm(ctx) })
	mustPanic(t, "activation context is not activated", func() { ctx.OpenFrame() })

	inner := f.OpenFrame()
	if f.IsActivated() {
		t.Fatal("frame still activated with an open inner frame")
	}
	mustPanic(t, "frame context is not activated", f.Close)
	inner.Close()
	f.Close()

	if !ctx.IsActivated() {
		t.Fatal("parent not reactivated after the frame closed")
	}
	prolog.NewTerm(ctx)
}

func TestFrameClose(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()
	x := prolog.NewTerm(ctx)

	f := ctx.OpenFrame()
	local := prolog.NewTerm(f.Context)
	if !local.UnifyAtom("scratch") || !x.Unify(local) {
		t.Fatal("unify in frame failed")
	}
	f.Close()

	// Bindings of ancestor terms survive the commit.
	if got, ok := x.Atom(); !ok || got != "scratch" {
		t.Fatalf("x = %v after Close, want scratch", x)
	}
	mustPanic(t, "term used after its frame closed", func() { local.Type() })
	mustPanic(t, "frame is closed", f.Close)
	mustPanic(t, "frame is closed", f.Rewind)
	mustPanic(t, "frame is closed", f.Discard)
	f.Release()
}

func TestFrameDiscard(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()
	x := prolog.NewTerm(ctx)

	f := ctx.OpenFrame()
	x.UnifyInt64(1)
	f.Discard()
	if !x.IsVar() {
		t.Fatalf("x = %v after Discard, want unbound", x)
	}

	f = ctx.OpenFrame()
	x.UnifyInt64(2)
	f.Release()
	if !x.IsVar() {
		t.Fatalf("x = %v after Release, want unbound", x)
	}
	f.Release()
}

func TestFrameRewind(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()
	x := prolog.NewTerm(ctx)

	f := ctx.OpenFrame()
	defer f.Release()
	if !x.UnifyAtom("first") {
		t.Fatal("first unify failed")
	}
	if x.UnifyAtom("second") {
		t.Fatal("bound term unified with a different atom")
	}
	f.Rewind()
	if !x.UnifyAtom("second") {
		t.Fatal("unify after Rewind failed")
	}
	f.Close()
	if got, _ := x.Atom(); got != "second" {
		t.Fatalf("x = %q, want second", got)
	}
}

func TestRewindInvalidatesFrameTerms(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()
	outer := prolog.NewTerm(ctx)

	f := ctx.OpenFrame()
	defer f.Release()
	stale := prolog.NewTerm(f.Context)
	stale.UnifyAtom("old")
	f.Rewind()

	fresh := prolog.NewTerm(f.Context)
	fresh.UnifyAtom("new")
	mustPanic(t, "term used after its frame was rewound", func() { stale.Atom() })
	mustPanic(t, "term used after its frame was rewound", func() { fresh.Unify(stale) })
	if got, _ := fresh.Atom(); got != "new" {
		t.Fatalf("fresh = %v", fresh)
	}
	// Terms of enclosing scopes survive the rewind.
	if !outer.Unify(fresh) {
		t.Fatal("outer term unusable after Rewind")
	}
}

// TestRewindIsScoped checks that Rewind and Discard undo exactly the
// bindings made after the frame was opened.
func TestRewindIsScoped(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()

	prop := func(pre, post []int16, rounds uint8) bool {
		pre, post = pre[:min(len(pre), 16)], post[:min(len(post), 16)]
		ok := true
		_ = prolog.WithFrame(ctx, func(scratch *prolog.Frame) error {
			ts := prolog.NewTerms(scratch.Context, len(pre)+len(post))
			before, after := ts[:len(pre)], ts[len(pre):]
			for i, v := range pre {
				before[i].UnifyInt64(int64(v))
			}
			intact := func() bool {
				for i, v := range pre {
					if got, _ := before[i].Int64(); got != int64(v) {
						return false
					}
				}
				for _, x := range after {
					if !x.IsVar() {
						return false
					}
				}
				return true
			}
			bindAfter := func(f *prolog.Frame) {
				for i, v := range post {
					after[i].UnifyInt64(int64(v))
				}
				prolog.NewTerms(f.Context, 2)[0].UnifyInt64(1)
			}

			f := scratch.OpenFrame()
			for range int(rounds%4) + 1 {
				bindAfter(f)
				f.Rewind()
				ok = ok && intact()
			}
			bindAfter(f)
			f.Discard()
			ok = ok && intact()
			return nil
		})
		return ok
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Fatal(err)
	}
}

func TestWithFrame(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()
	x := prolog.NewTerm(ctx)

	errNo := errors.New("no")
	err := prolog.WithFrame(ctx, func(f *prolog.Frame) error {
		x.UnifyInt64(1)
		return errNo
	})
	if !errors.Is(err, errNo) || !x.IsVar() {
		t.Fatalf("error path: err=%v x=%v", err, x)
	}

	mustPanic(t, "inner", func() {
		_ = prolog.WithFrame(ctx, func(f *prolog.Frame) error {
			x.UnifyInt64(2)
			panic("inner")
		})
	})
	if !x.IsVar() || !ctx.IsActivated() {
		t.Fatalf("panic path: x=%v activated=%v", x, ctx.IsActivated())
	}

	err = prolog.WithFrame(ctx, func(f *prolog.Frame) error {
		x.UnifyInt64(3)
		return nil
	})
	if got, _ := x.Int64(); err != nil || got != 3 {
		t.Fatalf("commit path: err=%v x=%v", err, x)
	}
}

func TestTermValues(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()
	ts := prolog.NewTerms(ctx, 5)

	if !ts[0].UnifyBool(true) {
		t.Fatal("UnifyBool failed")
	}
	if v, ok := ts[0].Bool(); !ok || !v {
		t.Fatalf("Bool = %v, %v", v, ok)
	}
	if !ts[1].UnifyFloat64(1.5) {
		t.Fatal("UnifyFloat64 failed")
	}
	if v, ok := ts[1].Float64(); !ok || v != 1.5 {
		t.Fatalf("Float64 = %v, %v", v, ok)
	}
	if _, ok := ts[1].Int64(); ok {
		t.Fatal("float read as integer")
	}
	if !ts[2].UnifyString("text") {
		t.Fatal("UnifyString failed")
	}
	if v, ok := ts[2].Text(); !ok || v != "text" {
		t.Fatalf("Text = %q, %v", v, ok)
	}
	if _, ok := ts[2].Bool(); ok {
		t.Fatal("string read as bool")
	}
	if ts[2].Type() != fli.TypeString {
		t.Fatalf("Type = %v", ts[2].Type())
	}
	if got := ts[2].String(); got != `"text"` {
		t.Fatalf("String = %s", got)
	}
	if !ts[3].Unify(ts[4]) || !ts[4].UnifyAtom("shared") {
		t.Fatal("aliasing failed")
	}
	if v, _ := ts[3].Atom(); v != "shared" {
		t.Fatalf("alias = %q", v)
	}
	if ts[3].Ref() == ts[4].Ref() {
		t.Fatal("distinct terms share a reference")
	}
	if ts[0].Unify(ts[1]) {
		t.Fatal("true unified with 1.5")
	}
}

func TestExceptionAccessors(t *testing.T) {
	e := newEngine(t)
	a := e.Activate()
	defer a.Release()
	ctx := a.Context()

	if ctx.HasException() || ctx.ExceptionError() != nil {
		t.Fatal("exception pending on a fresh activation")
	}
	if _, ok := prolog.Exception(ctx); ok {
		t.Fatal("Exception reported a term")
	}
	ctx.AssertNoException()

	_ = prolog.CallOnce(ctx, callable[prolog.Args0](t, ctx, "boom"), prolog.DefaultModule, prolog.Args0{})
	ex, ok := prolog.Exception(ctx)
	if !ok || ex.String() != "boom" {
		t.Fatalf("Exception = %v, %v", ex, ok)
	}
	var exErr *prolog.ExceptionError
	if err := ctx.ExceptionError(); !errors.As(err, &exErr) || exErr.Term != "boom" {
		t.Fatalf("ExceptionError = %v", err)
	}
	mustPanic(t, "pending exception: boom", ctx.AssertNoException)

	ctx.ClearException()
	if ctx.HasException() {
		t.Fatal("exception pending after ClearException")
	}
}
