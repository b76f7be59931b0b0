// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"fmt"

	"code.hybscloud.com/prolog/fli"
)

// Argument arrays. The array length is the arity, so a callable can
// only be opened with the number of arguments it was built for.
type (
	Args0 [0]Term
	Args1 [1]Term
	Args2 [2]Term
	Args3 [3]Term
	Args4 [4]Term
	Args5 [5]Term
	Args6 [6]Term
	Args7 [7]Term
	Args8 [8]Term
)

// Args is the set of argument arrays.
type Args interface {
	Args0 | Args1 | Args2 | Args3 | Args4 | Args5 | Args6 | Args7 | Args8
	Terms() []Term
}

func (a Args0) Terms() []Term { return a[:] }
func (a Args1) Terms() []Term { return a[:] }
func (a Args2) Terms() []Term { return a[:] }
func (a Args3) Terms() []Term { return a[:] }
func (a Args4) Terms() []Term { return a[:] }
func (a Args5) Terms() []Term { return a[:] }
func (a Args6) Terms() []Term { return a[:] }
func (a Args7) Terms() []Term { return a[:] }
func (a Args8) Terms() []Term { return a[:] }

// ArityOf returns the arity encoded by A.
func ArityOf[A Args]() int {
	var a A
	return len(a.Terms())
}

// Module names a context module. The empty name is the default module.
type Module string

// DefaultModule is the driver's default context module.
const DefaultModule Module = ""

// Callable is anything that can be invoked as a predicate with the
// arguments A.
type Callable[A Args] interface {
	Open(c Context[Unknown], m Module, args A) *Query
}

// Predicate is a resolved predicate reference. Predicate identities do
// not change for the life of the process, so a Predicate may be cached
// and shared across threads.
type Predicate struct {
	id     fli.PredicateID
	module string
	name   string
	arity  int
}

// LookupPredicate resolves name/arity in module.
func LookupPredicate[P Phase](c Context[P], module Module, name string, arity int) (Predicate, error) {
	c.s.assertActive()
	return resolve(c.s.engine.drv, module, name, arity)
}

func resolve(drv fli.Driver, module Module, name string, arity int) (Predicate, error) {
	id, err := drv.Predicate(drv.Module(string(module)), name, arity)
	if err != nil {
		return Predicate{}, fmt.Errorf("prolog: lookup %s/%d: %w", name, arity, err)
	}
	mod, n, a := drv.PredicateInfo(id)
	return Predicate{id: id, module: mod, name: n, arity: a}, nil
}

// ID returns the driver handle of p.
func (p Predicate) ID() fli.PredicateID { return p.id }

// Module returns the module p is defined in.
func (p Predicate) Module() string { return p.module }

// Name returns the predicate name.
func (p Predicate) Name() string { return p.name }

// Arity returns the predicate arity.
func (p Predicate) Arity() int { return p.arity }

func (p Predicate) String() string {
	return fmt.Sprintf("%s:%s/%d", p.module, p.name, p.arity)
}

// CallablePredicate is a predicate whose arity matches A.
type CallablePredicate[A Args] struct {
	p Predicate
}

var _ Callable[Args2] = CallablePredicate[Args2]{}

// NewCallable wraps p as a callable of arity len(A). A mismatch returns
// a *WrongArityError.
func NewCallable[A Args](p Predicate) (CallablePredicate[A], error) {
	if want := ArityOf[A](); p.arity != want {
		return CallablePredicate[A]{}, &WrongArityError{Expected: want, Actual: p.arity}
	}
	return CallablePredicate[A]{p: p}, nil
}

// WrapPredicate wraps p without checking its arity. The caller
// guarantees that p has arity len(A).
func WrapPredicate[A Args](p Predicate) CallablePredicate[A] {
	return CallablePredicate[A]{p: p}
}

// Predicate returns the wrapped predicate.
func (c CallablePredicate[A]) Predicate() Predicate {
	return c.p
}

// Open copies args into fresh term references of ctx's scope and opens
// the query. ctx stays deactivated until the query is retired. Opening
// with a pending exception panics.
func (c CallablePredicate[A]) Open(ctx Context[Unknown], m Module, args A) *Query {
	s := ctx.s
	s.assertAllocating()
	ctx.AssertNoException()
	drv := s.engine.drv

	terms := args.Terms()
	var base fli.TermRef
	if len(terms) > 0 {
		base = drv.NewTermRefs(len(terms))
		if base == 0 {
			panic("prolog: out of term references")
		}
	}
	for i, t := range terms {
		t.check()
		if t.s.engine != s.engine {
			panic("prolog: argument term of a different engine")
		}
		if !drv.Unify(base+fli.TermRef(i), t.ref) {
			panic("prolog: unify with a fresh argument failed")
		}
	}

	flags := fli.FlagNormal | fli.FlagCatchException | fli.FlagExtStatus
	qid := drv.OpenQuery(drv.Module(string(m)), flags, c.p.id, base)
	child := s.enter(scopeQuery)
	child.query = qid
	return &Query{Context: Context[InQuery]{s: child}, pred: c.p}
}

// Open opens callable with args in c.
func Open[A Args, P Allocating](c Context[P], callable Callable[A], m Module, args A) *Query {
	return callable.Open(c.Erase(), m, args)
}

// CallOnce opens callable, takes the first solution and cuts.
func CallOnce[A Args, P Allocating](c Context[P], callable Callable[A], m Module, args A) error {
	return Open(c, callable, m, args).Once()
}

// Call opens callable, hands the query to fn and discards the query
// when fn leaves it open.
func Call[A Args, P Allocating](c Context[P], callable Callable[A], m Module, args A, fn func(q *Query) error) error {
	q := Open(c, callable, m, args)
	defer q.Release()
	return fn(q)
}
