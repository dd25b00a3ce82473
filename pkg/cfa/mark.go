// Copyright The Petrel Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cfa

import (
	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"

	"github.com/petrel-lang/petrel/pkg/ast"
)

// Mark computes which labels are dynamic: those whose value may differ
// between stochastic executions.  A label is dynamic if the stochastic taint
// flows there, if it sits under an if whose condition is stochastic, or if
// its abstraction may flow to a dynamic call site.  The result is a bit per
// label; bits only ever transition from clear to set.
func Mark(term ast.Term, data []*ValueSet, nLabels uint) *bitset.BitSet {
	m := &marker{
		data:  data,
		marks: bitset.New(nLabels),
	}
	// Every label the stochastic taint flows to is dynamic outright.
	for l, values := range data {
		if values.Contains(Stoch{}) {
			m.marks.Set(uint(l))
		}
	}
	// Iterate to fixpoint, since marking an abstraction can make call sites
	// seen earlier in the traversal dynamic.
	passes := 0
	//
	for {
		m.modified = false
		m.visit(term, false)
		//
		passes++
		//
		if !m.modified {
			break
		}
	}
	//
	log.Debugf("marked %d of %d labels dynamic in %d passes", m.marks.Count(), nLabels, passes)
	//
	return m.marks
}

type marker struct {
	data []*ValueSet
	// One bit per label; set means dynamic.
	marks *bitset.BitSet
	// Whether the current pass changed anything.
	modified bool
}

func (m *marker) set(label uint) {
	if !m.marks.Test(label) {
		m.marks.Set(label)
		m.modified = true
	}
}

// Visit a node carrying a flag indicating whether it sits under an if branch
// whose condition is stochastic.
func (m *marker) visit(term ast.Term, flag bool) {
	l := term.Attr().Label
	// A dynamic node makes every abstraction flowing to it dynamic too.
	if flag || m.marks.Test(l) {
		m.set(l)
		//
		for _, value := range m.data[l].ToArray() {
			if fun, ok := value.(Fun); ok {
				m.set(fun.Outer)
			}
		}
	}
	//
	switch t := term.(type) {
	case *ast.App:
		// Outside any dynamic branch, an if application taints both branches
		// when its condition is stochastic.
		if !flag {
			if head, args := ast.Spine(t); len(args) == 3 {
				if _, ok := head.(*ast.IfExp); ok {
					m.visit(args[0], false)
					//
					taint := m.data[args[0].Attr().Label].Contains(Stoch{})
					m.visit(args[1], taint)
					m.visit(args[2], taint)
					//
					return
				}
			}
		}
		//
		m.visit(t.Fn, flag)
		m.visit(t.Arg, flag)
	case *ast.Lam:
		m.visit(t.Body, flag || m.marks.Test(t.Attrs.Label))
	case *ast.Utest:
		m.visit(t.Lhs, flag)
		m.visit(t.Rhs, flag)
		m.visit(t.Next, flag)
	case *ast.Var, *ast.Const, *ast.IfExp, *ast.Fix, *ast.Rec, *ast.Proj, *ast.Nop:
		// Leaves
	default:
		ast.Fatalf(ast.Structural, "unsupported term %s in marking", ast.String(term))
	}
}

// Analyze runs constraint generation, solving and marking over a labeled
// term, returning the per-label value sets and the dynamic marks.
func Analyze(bmap BindingMap, term ast.Term, nLabels uint) ([]*ValueSet, *bitset.BitSet) {
	constraints := Generate(bmap, term)
	data := Solve(constraints, nLabels)
	marks := Mark(term, data, nLabels)
	//
	return data, marks
}
