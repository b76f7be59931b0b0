// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
)

// LoadMangle evaluates a Mangle (Datalog) program and installs every
// derived relation as a fact predicate of module, replacing existing
// clauses of the same name and arity. Names become atoms; strings stay
// strings.
func (m *Machine) LoadMangle(module, source string) error {
	if module == "" {
		module = m.cfg.DefaultModule
	}
	unit, err := parse.Unit(strings.NewReader(source))
	if err != nil {
		return fmt.Errorf("machine: parse mangle program: %w", err)
	}
	info, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return fmt.Errorf("machine: analyze mangle program: %w", err)
	}
	store := factstore.NewSimpleInMemoryStore()
	for _, fact := range info.InitialFacts {
		store.Add(fact)
	}
	if _, err := mengine.EvalProgramWithStats(info, store); err != nil {
		return fmt.Errorf("machine: evaluate mangle program: %w", err)
	}

	for _, sym := range store.ListPredicates() {
		var facts [][]value
		err := store.GetFacts(ast.NewQuery(sym), func(a ast.Atom) error {
			fact := make([]value, len(a.Args))
			for i, arg := range a.Args {
				fact[i] = fromMangle(arg)
			}
			facts = append(facts, fact)
			return nil
		})
		if err != nil {
			return fmt.Errorf("machine: read mangle relation %s: %w", sym.Symbol, err)
		}
		if len(facts) == 0 {
			continue
		}
		m.assertValues(module, sym.Symbol, facts, true)
	}
	return nil
}

func fromMangle(t ast.BaseTerm) value {
	c, ok := t.(ast.Constant)
	if !ok {
		return value{tag: tagString, s: t.String()}
	}
	switch c.Type {
	case ast.NameType:
		return atomValue(strings.TrimPrefix(c.Symbol, "/"))
	case ast.StringType, ast.BytesType:
		return value{tag: tagString, s: c.Symbol}
	case ast.NumberType:
		return intValue(c.NumValue)
	case ast.Float64Type:
		return value{tag: tagFloat, f: math.Float64frombits(uint64(c.NumValue))}
	default:
		return value{tag: tagString, s: c.String()}
	}
}
