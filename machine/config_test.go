// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/prolog/machine"
)

func TestDefaultConfig(t *testing.T) {
	c := machine.DefaultConfig()
	require.Equal(t, "user", c.DefaultModule)
	require.Equal(t, "user", c.MangleModule)
	require.Zero(t, c.MaxTermRefs)
}

func TestParseConfig(t *testing.T) {
	c, err := machine.ParseConfig([]byte(`
default_module: app
max_term_refs: 1024
mangle_module: kb
mangle_source: |
  parent(/tom, /bob).
`))
	require.NoError(t, err)
	require.Equal(t, "app", c.DefaultModule)
	require.Equal(t, 1024, c.MaxTermRefs)
	require.Equal(t, "kb", c.MangleModule)
	require.Contains(t, c.MangleSource, "parent(/tom, /bob).")

	_, err = machine.ParseConfig([]byte("max_term_refs: -1"))
	require.Error(t, err)

	_, err = machine.ParseConfig([]byte("default_module: [unclosed"))
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "family.mg")
	require.NoError(t, os.WriteFile(program, []byte("parent(/tom, /bob).\n"), 0o644))
	path := filepath.Join(dir, "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mangle_program: "+program+"\n"), 0o644))

	c, err := machine.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, program, c.MangleProgram)

	m, err := machine.New(c)
	require.NoError(t, err)
	bind(t, m)
	args := m.NewTermRefs(2)
	sols, _ := solve(t, m, "parent", args, 2)
	require.Equal(t, [][]string{{"tom", "bob"}}, sols)

	_, err = machine.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	_, err = machine.New(machine.Config{MangleProgram: filepath.Join(dir, "missing.mg")})
	require.Error(t, err)
}
