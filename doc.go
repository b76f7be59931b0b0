// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package prolog drives an embedded Prolog engine through a checked
// activation, context and query protocol.
//
// The engine underneath (a [code.hybscloud.com/prolog/fli.Driver]) is unchecked: term references,
// frames and queries are raw handles, and using them out of order
// corrupts the engine. This package tracks which engine is active on
// the calling OS thread, enforces strict nesting of frames and queries,
// and releases every handle on every exit path.
//
// # Architecture
//
//   - Activation: [Engine.Activate] locks the goroutine to its OS thread and makes the engine active there. One engine per thread, one thread per engine.
//   - Typestate: [Context] is tagged with a phase ([Activated], [InFrame], [InQuery], [Unknown]). Allocation and query opening are generic over [Allocating] phases only, so an open query cannot allocate until it opens a frame.
//   - Nesting: opening a [Frame] or a [Query] deactivates the parent context; retiring the child reactivates it. Using a deactivated or closed context panics.
//   - Results: [Query.NextSolution] maps the engine's status to (more, nil), [ErrFailure] or an [*ExceptionError]. Exceptions stay pending on the engine until cleared.
//   - Callables: [Args0] .. [Args8] carry the arity in the type. [NewCallable] checks the arity of a resolved [Predicate]; [LazyPredicate] caches resolution process-wide.
//
// # Protocols
//
//   - Operations: [Solve], [CutQuery], [DiscardQuery], performed with [code.hybscloud.com/kont].
//   - Cont-world: [SolveBind], [SolveBranch], [CutDone], [DiscardDone], [Loop], [Collect]. Run with [Exec] or [ExecError].
//   - Expr-world: [ExprSolveBranch], [ExprCutDone], [ExprDiscardDone]. Bridge via [Reify] and [Reflect]; drive with [Step] and [Advance].
//
// # Threads
//
// Goroutines move between OS threads. Code that is not already running
// under an activation submits work to a [Runner], which owns an engine on
// a dedicated locked thread.
//
// # Example
//
//	m, _ := machine.New(machine.Config{})
//	e, _ := prolog.New(m)
//	err := e.Do(func(ctx prolog.Context[prolog.Activated]) error {
//		p, err := prolog.LookupPredicate(ctx, prolog.DefaultModule, "between", 3)
//		if err != nil {
//			return err
//		}
//		between, err := prolog.NewCallable[prolog.Args3](p)
//		if err != nil {
//			return err
//		}
//		t := prolog.NewTerms(ctx, 3)
//		t[0].UnifyInt64(1)
//		t[1].UnifyInt64(3)
//		q := prolog.Open(ctx, between, prolog.DefaultModule, prolog.Args3{t[0], t[1], t[2]})
//		defer q.Release()
//		for _, err := range q.Solutions() {
//			if err != nil {
//				return err
//			}
//			fmt.Println(t[2])
//		}
//		return nil
//	})
package prolog
