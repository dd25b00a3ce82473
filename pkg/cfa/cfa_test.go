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
	"slices"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"

	"github.com/petrel-lang/petrel/pkg/ast"
)

// ============================================================================
// Solver
// ============================================================================

func TestSolve_0(t *testing.T) {
	// Unconditional flow propagates along subset edges.
	data := Solve([]Constraint{
		Direct{Stoch{}, 0},
		Subset{0, 1},
		Subset{1, 2},
	}, 3)
	//
	assert.True(t, data[2].Contains(Stoch{}))
}

func TestSolve_1(t *testing.T) {
	// A conditional edge stays dormant until its guard is satisfied.
	data := Solve([]Constraint{
		Direct{Stoch{}, 1},
		Conditional{Fun{5, 6, 7}, 0, 1, 2},
	}, 3)
	//
	assert.False(t, data[2].Contains(Stoch{}))
}

func TestSolve_2(t *testing.T) {
	// A conditional edge fires once its guard is satisfied, regardless of the
	// order in which the sets grow.
	fun := Fun{5, 6, 7}
	//
	data := Solve([]Constraint{
		Conditional{fun, 0, 1, 2},
		Direct{Stoch{}, 1},
		Direct{fun, 0},
	}, 3)
	//
	assert.True(t, data[2].Contains(Stoch{}))
}

func TestSolve_3(t *testing.T) {
	// Cyclic subset constraints still reach a fixpoint.
	data := Solve([]Constraint{
		Direct{Stoch{}, 0},
		Subset{0, 1},
		Subset{1, 0},
	}, 2)
	//
	assert.True(t, data[0].Contains(Stoch{}))
	assert.True(t, data[1].Contains(Stoch{}))
}

// ============================================================================
// Scenarios
// ============================================================================

// The identity function carries no stochastic behaviour at all.
func TestAnalyze_0(t *testing.T) {
	var (
		x    = ast.NewVar("x")
		lam  = ast.NewLam("x", x)
		f    = analyzeTerm(lam)
		self = Fun{lam.Attrs.Label, x.Attrs.Label, lam.Attrs.VarLabel}
	)
	//
	assert.True(t, f.data[lam.Attrs.Label].Contains(self))
	assert.Equal(t, uint(0), f.marks.Count())
}

// let d = normal 0.0 1.0 in sample d
func TestAnalyze_1(t *testing.T) {
	var (
		sampleApp = ast.NewApp(ast.NewVar("sample"), ast.NewVar("d"))
		body      = ast.NewLam("d", sampleApp)
		dist      = ast.Apply(ast.NewConst(ast.NewAtom("normal")),
			ast.NewConst(ast.Float{Value: 0.0}), ast.NewConst(ast.Float{Value: 1.0}))
		let = ast.NewApp(body, dist)
		f   = analyzeTerm(let)
	)
	// The sample call is stochastic, hence dynamic.
	assert.True(t, f.data[sampleApp.Attrs.Label].Contains(Stoch{}))
	assert.True(t, f.marks.Test(sampleApp.Attrs.Label))
	// The taint flows out of the let body.
	assert.True(t, f.data[let.Attrs.Label].Contains(Stoch{}))
}

// if sample (bernoulli 0.5) then 1 else 2
func TestAnalyze_2(t *testing.T) {
	var (
		coin  = ast.NewApp(ast.NewConst(ast.NewAtom("bernoulli")), ast.NewConst(ast.Float{Value: 0.5}))
		cond  = ast.NewApp(ast.NewVar("sample"), coin)
		one   = ast.NewConst(ast.Int{Value: 1})
		two   = ast.NewConst(ast.Int{Value: 2})
		thenT = ast.NewLam("_", one)
		elseT = ast.NewLam("_", two)
		ifApp = ast.Apply(ast.NewIfExp(), cond, thenT, elseT)
		f     = analyzeTerm(ifApp)
	)
	// The condition is stochastic.
	assert.True(t, f.data[cond.Attrs.Label].Contains(Stoch{}))
	// Everything strictly inside either branch is dynamic.
	assert.True(t, f.marks.Test(thenT.Attrs.Label))
	assert.True(t, f.marks.Test(elseT.Attrs.Label))
	assert.True(t, f.marks.Test(one.Attrs.Label))
	assert.True(t, f.marks.Test(two.Attrs.Label))
	// The condition itself is not.
	assert.False(t, f.marks.Test(coin.Attrs.Label))
}

// fix (λf. λn. f n)
func TestAnalyze_3(t *testing.T) {
	var (
		call   = ast.NewApp(ast.NewVar("f"), ast.NewVar("n"))
		inner  = ast.NewLam("n", call)
		outer  = ast.NewLam("f", inner)
		fixApp = ast.NewApp(ast.NewFix(), outer)
		f      = analyzeTerm(fixApp)
		rec    = Fun{inner.Attrs.Label, call.Attrs.Label, inner.Attrs.VarLabel}
	)
	// The fixpoint feeds the recursive closure back into its own parameter
	// and out to the application.
	assert.True(t, f.data[outer.Attrs.VarLabel].Contains(rec))
	assert.True(t, f.data[fixApp.Attrs.Label].Contains(rec))
	// No sampling anywhere, so nothing is dynamic.
	assert.Equal(t, uint(0), f.marks.Count())
}

// Binary operator applications propagate their operands' taint.
func TestAnalyze_4(t *testing.T) {
	var (
		draw = ast.NewApp(ast.NewVar("sample"), ast.NewConst(ast.Float{Value: 0.5}))
		app  = ast.Apply(ast.NewConst(ast.NewAtom("normal")), draw, ast.NewConst(ast.Float{Value: 1.0}))
		f    = analyzeTerm(app)
	)
	//
	assert.True(t, f.data[app.Attr().Label].Contains(Stoch{}))
}

// Unary operator applications likewise.
func TestAnalyze_5(t *testing.T) {
	var (
		draw = ast.NewApp(ast.NewVar("sample"), ast.NewConst(ast.Float{Value: 0.5}))
		app  = ast.NewApp(ast.NewConst(ast.NewAtom("bernoulli")), draw)
		f    = analyzeTerm(app)
	)
	//
	assert.True(t, f.data[app.Attrs.Label].Contains(Stoch{}))
}

// A stochastic value reaching a function makes its uses stochastic.
func TestAnalyze_6(t *testing.T) {
	var (
		x    = ast.NewVar("x")
		id   = ast.NewLam("x", x)
		draw = ast.NewApp(ast.NewVar("sample"), ast.NewConst(ast.Float{Value: 0.5}))
		app  = ast.NewApp(id, draw)
		f    = analyzeTerm(app)
	)
	// The taint flows through the parameter to the occurrence and out.
	assert.True(t, f.data[x.Attrs.Label].Contains(Stoch{}))
	assert.True(t, f.data[app.Attrs.Label].Contains(Stoch{}))
}

// An abstraction inside a stochastic branch becomes dynamic itself.
func TestAnalyze_7(t *testing.T) {
	var (
		g     = ast.NewLam("y", ast.NewVar("y"))
		cond  = ast.NewApp(ast.NewVar("sample"), ast.NewConst(ast.Float{Value: 0.5}))
		thenT = ast.NewLam("_", g)
		elseT = ast.NewLam("_", ast.NewConst(ast.Int{Value: 0}))
		ifApp = ast.Apply(ast.NewIfExp(), cond, thenT, elseT)
		f     = analyzeTerm(ifApp)
	)
	// g sits inside a stochastic branch, so it is dynamic.
	assert.True(t, f.marks.Test(g.Attrs.Label))
}

// Every label carrying the stochastic taint is marked dynamic.
func TestAnalyze_8(t *testing.T) {
	var (
		sampleApp = ast.NewApp(ast.NewVar("sample"), ast.NewVar("d"))
		body      = ast.NewLam("d", sampleApp)
		dist      = ast.NewApp(ast.NewConst(ast.NewAtom("bernoulli")), ast.NewConst(ast.Float{Value: 0.5}))
		f         = analyzeTerm(ast.NewApp(body, dist))
	)
	//
	for l := uint(0); l < f.labels; l++ {
		if f.data[l].Contains(Stoch{}) {
			assert.True(t, f.marks.Test(l), "label %d is stochastic but not dynamic", l)
		}
	}
}

// ============================================================================
// Helpers
// ============================================================================

type fixture struct {
	bmap   BindingMap
	labels uint
	data   []*ValueSet
	marks  *bitset.BitSet
}

// Label and analyze a program against the standard atom names.
func analyzeTerm(term ast.Term) *fixture {
	names := slices.Concat(ast.PreCPSAtoms(), ast.PostCPSAtoms())
	//
	_, bmap, n := Label(names, term)
	data, marks := Analyze(bmap, term, n)
	//
	return &fixture{bmap, n, data, marks}
}
