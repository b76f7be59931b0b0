// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"code.hybscloud.com/prolog/internal/thread"
)

// registry records which engine is active on which OS thread.
type registry struct {
	mu      sync.Mutex
	threads map[uint64]*Engine
	engines map[*Engine]uint64
}

var active = registry{
	threads: make(map[uint64]*Engine),
	engines: make(map[*Engine]uint64),
}

// bind records e as active on tid.
func (r *registry) bind(tid uint64, e *Engine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur := r.threads[tid]; cur != nil {
		if cur == e {
			return fmt.Errorf("prolog: engine %d is already active on this thread", e.serial)
		}
		return fmt.Errorf("prolog: thread already has engine %d active", cur.serial)
	}
	if owner, ok := r.engines[e]; ok {
		return fmt.Errorf("prolog: engine %d is active on thread %d", e.serial, owner)
	}
	r.threads[tid] = e
	r.engines[e] = tid
	return nil
}

func (r *registry) unbind(tid uint64, e *Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.threads[tid] == e {
		delete(r.threads, tid)
		delete(r.engines, e)
	}
}

// current returns the engine active on tid, or nil.
func (r *registry) current(tid uint64) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.threads[tid]
}

// holder returns the thread e is active on, or 0.
func (r *registry) holder(e *Engine) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engines[e]
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.threads)
}

// Current returns the engine active on the calling thread, or nil.
func Current() *Engine {
	return active.current(thread.ID())
}

// assertCurrent panics unless e is active on the calling thread.
func (e *Engine) assertCurrent() {
	if active.current(thread.ID()) != e {
		panic("prolog: engine is not active on this thread")
	}
}

// Activation proves that an engine is active on the calling thread.
// It must be released on the same goroutine that created it.
type Activation struct {
	e    *Engine
	tid  uint64
	root *scope
	top  *scope
	done bool
}

// Activate makes e the active engine of the calling thread and locks
// the calling goroutine to that thread until the activation is released.
// It panics if the thread already has an engine active, or if e is
// active on another thread.
func (e *Engine) Activate() *Activation {
	if e.closed.Load() != 0 {
		panic("prolog: activate a closed engine")
	}
	runtime.LockOSThread()
	tid := thread.ID()
	if err := active.bind(tid, e); err != nil {
		runtime.UnlockOSThread()
		panic(err.Error())
	}
	if err := e.drv.SetEngine(e.id); err != nil {
		active.unbind(tid, e)
		runtime.UnlockOSThread()
		panic(fmt.Sprintf("prolog: set engine: %v", err))
	}
	a := &Activation{e: e, tid: tid}
	a.root = &scope{engine: e, act: a, kind: scopeBase, active: true}
	a.top = a.root
	e.log.Debug("engine activated", zap.Uint32("serial", e.serial), zap.Uint64("thread", tid))
	return a
}

// Context returns the base context of the activation.
func (a *Activation) Context() Context[Activated] {
	return Context[Activated]{s: a.root}
}

// Engine returns the activated engine.
func (a *Activation) Engine() *Engine {
	return a.e
}

// Deactivate releases the engine. A pending exception is cleared so
// that it cannot leak into a later activation. It panics if called
// twice, from another thread, or while a frame or query is still open.
func (a *Activation) Deactivate() {
	if a.done {
		panic("prolog: activation already released")
	}
	if tid := thread.ID(); tid != a.tid {
		panic("prolog: deactivate on a different thread")
	}
	if !a.root.active {
		panic("prolog: deactivate with a live frame or query")
	}
	drv := a.e.drv
	if drv.HasException() {
		a.e.log.Warn("pending exception discarded at deactivation",
			zap.Uint32("serial", a.e.serial), zap.String("exception", pendingText(drv)))
		drv.ClearException()
	}
	if err := drv.SetEngine(0); err != nil {
		panic(fmt.Sprintf("prolog: unset engine: %v", err))
	}
	a.root.close()
	a.done = true
	active.unbind(a.tid, a.e)
	runtime.UnlockOSThread()
	a.e.log.Debug("engine deactivated", zap.Uint32("serial", a.e.serial))
}

// Release deactivates the engine if the activation is still held.
// Frames and queries still open, as left by a panic, are discarded
// innermost first. It is meant for defer.
func (a *Activation) Release() {
	if a.done {
		return
	}
	if tid := thread.ID(); tid != a.tid {
		panic("prolog: deactivate on a different thread")
	}
	if n := a.unwind(); n > 0 {
		a.e.log.Warn("open scopes discarded at release",
			zap.Uint32("serial", a.e.serial), zap.Int("scopes", n))
	}
	a.Deactivate()
}

// unwind discards every open frame and query above the base context,
// innermost first, and returns how many it discarded.
func (a *Activation) unwind() int {
	drv := a.e.drv
	n := 0
	for s := a.top; s != a.root; s = a.top {
		switch s.kind {
		case scopeFrame:
			drv.DiscardFrame(s.frame)
		case scopeQuery:
			drv.CloseQuery(s.query)
		}
		s.retire()
		n++
	}
	return n
}
