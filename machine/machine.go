// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"fmt"
	"io"
	"os"
	"sync"

	"code.hybscloud.com/prolog/fli"
	"code.hybscloud.com/prolog/internal/thread"
)

// Machine is a process-wide engine host. Modules and predicates are
// shared by all engines; stacks are per engine.
type Machine struct {
	cfg Config
	out io.Writer

	mu      sync.Mutex
	engines map[fli.EngineID]*engine
	bound   map[uint64]*engine
	nextEng fli.EngineID

	db database
}

var _ fli.Driver = (*Machine)(nil)

// New creates a machine with the builtin predicates installed. When
// cfg names a Mangle program, its relations are loaded into
// cfg.MangleModule.
func New(cfg Config) (*Machine, error) {
	cfg = cfg.withDefaults()
	m := &Machine{
		cfg:     cfg,
		out:     cfg.Output,
		engines: make(map[fli.EngineID]*engine),
		bound:   make(map[uint64]*engine),
	}
	if m.out == nil {
		m.out = io.Discard
	}
	m.db.init(cfg.DefaultModule)
	m.installBuiltins()

	if cfg.MangleProgram != "" {
		src, err := os.ReadFile(cfg.MangleProgram)
		if err != nil {
			return nil, fmt.Errorf("machine: read mangle program: %w", err)
		}
		if err := m.LoadMangle(cfg.MangleModule, string(src)); err != nil {
			return nil, err
		}
	}
	if cfg.MangleSource != "" {
		if err := m.LoadMangle(cfg.MangleModule, cfg.MangleSource); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Config returns the effective configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

// CreateEngine implements fli.Driver.
func (m *Machine) CreateEngine() (fli.EngineID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextEng++
	id := m.nextEng
	m.engines[id] = newEngine(id, m.cfg.MaxTermRefs)
	return id, nil
}

// DestroyEngine implements fli.Driver.
func (m *Machine) DestroyEngine(id fli.EngineID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engines[id]
	if !ok {
		return fli.ErrNoEngine
	}
	if e.owner != 0 {
		return fli.ErrEngineBusy
	}
	delete(m.engines, id)
	return nil
}

// SetEngine implements fli.Driver.
func (m *Machine) SetEngine(id fli.EngineID) error {
	tid := thread.ID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur := m.bound[tid]; cur != nil {
		if cur.id == id {
			return nil
		}
		cur.owner = 0
		delete(m.bound, tid)
	}
	if id == 0 {
		return nil
	}
	e, ok := m.engines[id]
	if !ok {
		return fli.ErrNoEngine
	}
	if e.owner != 0 && e.owner != tid {
		return fli.ErrEngineBusy
	}
	e.owner = tid
	m.bound[tid] = e
	return nil
}

// CurrentEngine implements fli.Driver.
func (m *Machine) CurrentEngine() fli.EngineID {
	tid := thread.ID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.bound[tid]; e != nil {
		return e.id
	}
	return 0
}

// current returns the engine bound to the calling thread.
func (m *Machine) current() *engine {
	tid := thread.ID()
	m.mu.Lock()
	e := m.bound[tid]
	m.mu.Unlock()
	if e == nil {
		panic("machine: no engine active on this thread")
	}
	return e
}

// NewTermRefs implements fli.Driver.
func (m *Machine) NewTermRefs(n int) fli.TermRef {
	return m.current().newRefs(n)
}

// OpenFrame implements fli.Driver.
func (m *Machine) OpenFrame() fli.FrameID {
	return fli.FrameID(m.current().pushScope(scopeFrame, nil))
}

// CloseFrame implements fli.Driver.
func (m *Machine) CloseFrame(f fli.FrameID) {
	e := m.current()
	s := e.innermost(scopeFrame, uint64(f))
	e.refs = e.refs[:s.mark.refs]
	e.popScope()
}

// DiscardFrame implements fli.Driver.
func (m *Machine) DiscardFrame(f fli.FrameID) {
	e := m.current()
	s := e.innermost(scopeFrame, uint64(f))
	e.rewind(s.mark)
	e.popScope()
}

// RewindFrame implements fli.Driver.
func (m *Machine) RewindFrame(f fli.FrameID) {
	e := m.current()
	s := e.innermost(scopeFrame, uint64(f))
	e.rewind(s.mark)
}

// Unify implements fli.Driver.
func (m *Machine) Unify(a, b fli.TermRef) bool {
	e := m.current()
	return e.tryUnify(e.slot(a), e.slot(b))
}

// RaiseException implements fli.Driver.
func (m *Machine) RaiseException(t fli.TermRef) {
	e := m.current()
	v := e.copyOut(e.slot(t))
	e.pending = &v
}

// HasException implements fli.Driver.
func (m *Machine) HasException() bool {
	return m.current().pending != nil
}

// ClearException implements fli.Driver.
func (m *Machine) ClearException() {
	m.current().pending = nil
}

// Exception implements fli.Driver.
func (m *Machine) Exception(q fli.QueryID) fli.TermRef {
	e := m.current()
	var v *value
	if q == 0 {
		v = e.pending
	} else {
		v = e.findQuery(q).exception
	}
	if v == nil {
		return 0
	}
	t := e.newRefs(1)
	if t == 0 {
		panic("machine: term reference limit exceeded")
	}
	e.refs[int(t)-1] = e.copyIn(*v)
	return t
}
