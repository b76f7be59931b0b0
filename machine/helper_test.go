// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/prolog/fli"
	"code.hybscloud.com/prolog/machine"
)

// bind creates an engine and binds it to the test goroutine's thread
// until the test ends.
func bind(t *testing.T, m *machine.Machine) fli.EngineID {
	t.Helper()
	runtime.LockOSThread()
	id, err := m.CreateEngine()
	require.NoError(t, err)
	require.NoError(t, m.SetEngine(id))
	t.Cleanup(func() {
		require.NoError(t, m.SetEngine(0))
		require.NoError(t, m.DestroyEngine(id))
		runtime.UnlockOSThread()
	})
	return id
}

func newMachine(t *testing.T, cfg machine.Config) *machine.Machine {
	t.Helper()
	m, err := machine.New(cfg)
	require.NoError(t, err)
	return m
}

// list builds a proper list of atoms in a fresh reference.
func list(t *testing.T, m *machine.Machine, atoms ...string) fli.TermRef {
	t.Helper()
	tail := m.NewTermRefs(1)
	require.True(t, m.UnifyAtom(tail, "[]"))
	for i := len(atoms) - 1; i >= 0; i-- {
		cell := m.NewTermRefs(2)
		require.True(t, m.UnifyAtom(cell, atoms[i]))
		require.True(t, m.Unify(cell+1, tail))
		next := m.NewTermRefs(1)
		require.True(t, m.UnifyCompound(next, "[|]", cell, 2))
		tail = next
	}
	return tail
}

// solve runs name/len(args) to exhaustion and renders args after each
// solution.
func solve(t *testing.T, m *machine.Machine, name string, args fli.TermRef, arity int) (sols [][]string, st fli.Status) {
	t.Helper()
	p, err := m.Predicate(0, name, arity)
	require.NoError(t, err)
	q := m.OpenQuery(0, fli.FlagNormal|fli.FlagCatchException|fli.FlagExtStatus, p, args)
	defer m.CloseQuery(q)
	for {
		st = m.NextSolution(q)
		if st != fli.StatusTrue && st != fli.StatusLast {
			return sols, st
		}
		row := make([]string, arity)
		for i := range arity {
			row[i] = m.Format(args + fli.TermRef(i))
		}
		sols = append(sols, row)
		if st == fli.StatusLast {
			return sols, st
		}
	}
}
