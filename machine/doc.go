// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package machine is an in-memory Prolog engine implementing [fli.Driver].
//
// It models the parts of an embedded engine that a host program touches
// through the foreign interface: per-engine term stacks with a trail,
// foreign frames, nondeterministic queries with choice points, and the
// exception channel. Resolution is delegated to foreign predicates
// written in Go, to asserted facts, and to relations derived by a Mangle
// program (see [Machine.LoadMangle]).
//
// # Stacks
//
// Each engine owns a local stack of term reference slots, a global heap
// of cells and a trail of bindings. Frames and queries snapshot all three.
//
//   - CloseFrame pops term references only; bindings and heap survive.
//   - RewindFrame undoes the trail and truncates heap and references.
//   - DiscardFrame rewinds and pops.
//   - CutQuery keeps the current solution; CloseQuery undoes it.
//
// Frames and queries nest strictly. Closing anything other than the
// innermost scope panics, as does touching an engine from a thread it is
// not active on.
//
// # Threads
//
// Engines are bound to OS threads with [Machine.SetEngine]. Callers must
// keep the goroutine locked to its thread while an engine is bound.
//
// # Example
//
//	m, _ := machine.New(machine.DefaultConfig())
//	e, _ := m.CreateEngine()
//	runtime.LockOSThread()
//	_ = m.SetEngine(e)
//	x := m.NewTermRefs(1)
//	m.UnifyInt64(x, 42)
package machine
