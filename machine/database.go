// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"fmt"
	"sync"

	"code.hybscloud.com/prolog/fli"
)

// systemModule holds the builtins. Lookups in any module fall back to it.
const systemModule = "system"

type procKey struct {
	module string
	name   string
	arity  int
}

type procedure struct {
	id      fli.PredicateID
	key     procKey
	foreign Foreign
	facts   [][]value
	defined bool
}

// database is the process-wide module and predicate table.
type database struct {
	mu            sync.RWMutex
	defaultModule string
	modules       map[string]fli.ModuleID
	moduleNames   []string
	procs         map[procKey]*procedure
	byID          []*procedure
}

func (db *database) init(defaultModule string) {
	db.defaultModule = defaultModule
	db.modules = make(map[string]fli.ModuleID)
	db.procs = make(map[procKey]*procedure)
	db.module(defaultModule)
	db.module(systemModule)
}

// module interns name. Callers hold db.mu or are single-threaded.
func (db *database) module(name string) fli.ModuleID {
	if id, ok := db.modules[name]; ok {
		return id
	}
	db.moduleNames = append(db.moduleNames, name)
	id := fli.ModuleID(len(db.moduleNames))
	db.modules[name] = id
	return id
}

func (db *database) moduleName(id fli.ModuleID) string {
	if id == 0 {
		return db.defaultModule
	}
	i := int(id) - 1
	if i < 0 || i >= len(db.moduleNames) {
		panic("machine: invalid module handle")
	}
	return db.moduleNames[i]
}

// procedure returns the procedure for key, creating an undefined one.
// Callers hold db.mu for writing.
func (db *database) procedure(key procKey) *procedure {
	if p, ok := db.procs[key]; ok {
		return p
	}
	db.module(key.module)
	p := &procedure{id: fli.PredicateID(len(db.byID) + 1), key: key}
	db.byID = append(db.byID, p)
	db.procs[key] = p
	return p
}

func (db *database) lookup(id fli.PredicateID) *procedure {
	db.mu.RLock()
	defer db.mu.RUnlock()
	i := int(id) - 1
	if i < 0 || i >= len(db.byID) {
		panic("machine: invalid predicate handle")
	}
	return db.byID[i]
}

// Module implements fli.Driver. The empty name is the default module.
func (m *Machine) Module(name string) fli.ModuleID {
	if name == "" {
		return 0
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.db.module(name)
}

// Predicate implements fli.Driver. Resolution tries the module, then the
// system module. An unknown predicate resolves to an undefined procedure
// of the module; calling it raises an existence error.
func (m *Machine) Predicate(module fli.ModuleID, name string, arity int) (fli.PredicateID, error) {
	if name == "" || arity < 0 {
		return 0, fmt.Errorf("%w: %q/%d", fli.ErrInvalidName, name, arity)
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	mod := m.db.moduleName(module)
	key := procKey{module: mod, name: name, arity: arity}
	if p, ok := m.db.procs[key]; ok && p.defined {
		return p.id, nil
	}
	if p, ok := m.db.procs[procKey{module: systemModule, name: name, arity: arity}]; ok && p.defined {
		return p.id, nil
	}
	return m.db.procedure(key).id, nil
}

// PredicateInfo implements fli.Driver.
func (m *Machine) PredicateInfo(id fli.PredicateID) (module, name string, arity int) {
	p := m.db.lookup(id)
	return p.key.module, p.key.name, p.key.arity
}

// Define installs a foreign predicate, replacing any previous definition.
func (m *Machine) Define(module, name string, arity int, fn Foreign) error {
	if name == "" || arity < 0 || fn == nil {
		return fmt.Errorf("%w: %q/%d", fli.ErrInvalidName, name, arity)
	}
	if module == "" {
		module = m.cfg.DefaultModule
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p := m.db.procedure(procKey{module: module, name: name, arity: arity})
	p.foreign = fn
	p.facts = nil
	p.defined = true
	return nil
}

// Assert appends a fact. Arguments are ints, floats, strings (atoms),
// Text (strings) or bools (atoms true and false).
func (m *Machine) Assert(module, name string, args ...any) error {
	if name == "" {
		return fmt.Errorf("%w: %q", fli.ErrInvalidName, name)
	}
	fact := make([]value, len(args))
	for i, a := range args {
		v, err := fromGo(a)
		if err != nil {
			return fmt.Errorf("machine: assert %s/%d arg %d: %w", name, len(args), i, err)
		}
		fact[i] = v
	}
	if module == "" {
		module = m.cfg.DefaultModule
	}
	m.assertValues(module, name, [][]value{fact}, false)
	return nil
}

// assertValues adds facts to a procedure; replace drops existing facts.
func (m *Machine) assertValues(module, name string, facts [][]value, replace bool) {
	arity := 0
	if len(facts) > 0 {
		arity = len(facts[0])
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p := m.db.procedure(procKey{module: module, name: name, arity: arity})
	if p.foreign != nil || replace {
		p.foreign = nil
		p.facts = nil
	}
	p.facts = append(p.facts[:len(p.facts):len(p.facts)], facts...)
	p.defined = true
}

// snapshotFacts returns the current fact list of p.
func (m *Machine) snapshotFacts(p *procedure) [][]value {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	return p.facts
}

// definition returns the foreign implementation and definedness of p.
func (m *Machine) definition(p *procedure) (Foreign, bool) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	return p.foreign, p.defined
}
