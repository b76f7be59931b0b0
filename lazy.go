// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/atomix"
)

// LazyPredicate resolves module:name/len(A) on first use and caches the
// resolved predicate. It is safe for concurrent use. Racing resolutions
// store equal predicates. The cell is published with release; hits load
// it relaxed and read through the pointer.
type LazyPredicate[A Args] struct {
	module Module
	name   string
	cell   atomix.Pointer[Predicate]
}

// NewLazyPredicate returns an unresolved cache entry.
func NewLazyPredicate[A Args](module Module, name string) *LazyPredicate[A] {
	return &LazyPredicate[A]{module: module, name: name}
}

// AsCallable returns the cached callable, resolving it through the
// engine active on the calling thread on a miss. It panics when no
// engine is active or when the name cannot be resolved.
func (l *LazyPredicate[A]) AsCallable() CallablePredicate[A] {
	e := Current()
	if e == nil {
		panic("prolog: no engine active on this thread")
	}
	if p := l.cell.LoadRelaxed(); p != nil {
		return WrapPredicate[A](*p)
	}
	p, err := resolve(e.drv, l.module, l.name, ArityOf[A]())
	if err != nil {
		panic(err.Error())
	}
	l.cell.StoreRelease(&p)
	return WrapPredicate[A](p)
}

