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
package cps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-lang/petrel/pkg/ast"
)

// ============================================================================
// Atomic terms
// ============================================================================

func TestAtomic_0(t *testing.T) {
	// Variables pass through untouched.
	CheckAtomic(t, "x", "x")
}

func TestAtomic_1(t *testing.T) {
	// Abstractions gain a continuation parameter and tail-apply it.
	CheckAtomic(t, "(lam x x)", "(lam $0 (lam x (app $0 x)))")
}

func TestAtomic_2(t *testing.T) {
	CheckAtomic(t, "(lam x (app x x))", "(lam $0 (lam x (app (app x $0) x)))")
}

func TestAtomic_3(t *testing.T) {
	// Literals have arity zero and stay as they are.
	CheckAtomic(t, "1", "1")
	CheckAtomic(t, "nop", "nop")
}

func TestAtomic_4(t *testing.T) {
	// An arity-one constant becomes a single continuation layer.
	CheckAtomic(t, "(atom bernoulli)",
		"(lam $0 (lam $1 (app $0 (app (atom bernoulli) $1))))")
}

func TestAtomic_5(t *testing.T) {
	// An arity-two constant curries through two continuation layers.
	CheckAtomic(t, "(atom normal)",
		"(lam $0 (lam $1 (app $0 (lam $2 (lam $3 (app $2 (app (app (atom normal) $1) $3)))))))")
}

func TestAtomic_6(t *testing.T) {
	// Checkpoints keep their raw form.
	CheckAtomic(t, "(atom sample)", "(atom sample)")
	CheckAtomic(t, "(atom weight)", "(atom weight)")
}

func TestAtomic_7(t *testing.T) {
	// The if combinator routes the final continuation into both thunks.
	CheckAtomic(t, "if",
		"(lam $0 (lam $1 (app $0 (lam $2 (lam $3 (app $2 (lam $4 (lam $5 (lam $6 "+
			"(app (app (app if $1) (app $3 $6)) (app $5 $6)))))))))))")
}

func TestAtomic_8(t *testing.T) {
	// The fixed function takes a continuation first; fix itself needs the
	// unwrapped value.
	CheckAtomic(t, "fix",
		"(lam $0 (lam $1 (app $0 (app fix (app $1 (lam $2 $2))))))")
}

func TestAtomic_9(t *testing.T) {
	// Unit-test assertions are driven to values by the identity.
	CheckAtomic(t, "(utest 1 2 nop)",
		"(utest (app (lam $0 $0) 1) (app (lam $1 $1) 2) (app (lam $2 $2) nop))")
}

func TestAtomic_10(t *testing.T) {
	// Records and projections are atomic.
	CheckAtomic(t, "(rec (x 1))", "(rec (x 1))")
	CheckAtomic(t, "(proj r x)", "(proj r x)")
}

func TestAtomic_11(t *testing.T) {
	// Applications are never atomic.
	ResetFresh()
	//
	term, err := ast.FromString("(app f x)")
	require.NoError(t, err)
	//
	assert.PanicsWithValue(t,
		ast.Fatal{Kind: ast.Structural, Msg: "term (app f x) is not atomic"},
		func() { Atomic(term) })
}

// ============================================================================
// Computations
// ============================================================================

func TestTransform_0(t *testing.T) {
	// A value is handed straight to its continuation.
	CheckTransform(t, "x", "(app k x)")
}

func TestTransform_1(t *testing.T) {
	// The continuation becomes the function's first argument.
	CheckTransform(t, "(app f x)", "(app (app f k) x)")
}

func TestTransform_2(t *testing.T) {
	// A non-atomic function position is bound to a fresh variable.
	CheckTransform(t, "(app (app f x) y)",
		"(app (app f (lam $0 (app (app $0 k) y))) x)")
}

func TestTransform_3(t *testing.T) {
	// Both positions non-atomic: the function is named first.
	CheckTransform(t, "(app (app f x) (app g y))",
		"(app (app f (lam $0 (app (app g (lam $1 (app (app $0 k) $1))) y))) x)")
}

func TestTransform_4(t *testing.T) {
	// A sample call survives in raw form, taking the continuation before the
	// distribution.
	CheckTransform(t, "(app sample d)", "(app (app sample k) d)")
}

// ============================================================================
// Helpers
// ============================================================================

// CheckAtomic checks the CPS form of a value against its expectation, with
// the fresh-name supply restarted for reproducibility.
func CheckAtomic(t *testing.T, input string, expected string) {
	ResetFresh()
	//
	term, err := ast.FromString(input)
	require.NoError(t, err)
	//
	actual := ast.String(Atomic(term))
	//
	if actual != expected {
		t.Errorf("cps of %s produced %s, expected %s", input, actual, expected)
	}
}

// CheckTransform checks the CPS form of a computation against its
// expectation, using the variable k as continuation.
func CheckTransform(t *testing.T, input string, expected string) {
	ResetFresh()
	//
	term, err := ast.FromString(input)
	require.NoError(t, err)
	//
	actual := ast.String(Transform(ast.NewVar("k"), term))
	//
	if actual != expected {
		t.Errorf("cps of %s produced %s, expected %s", input, actual, expected)
	}
}
