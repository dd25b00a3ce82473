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
package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Reading
// ============================================================================

func TestTerm_0(t *testing.T) {
	CheckTerm(t, "x", "x")
}

func TestTerm_1(t *testing.T) {
	CheckTerm(t, "(lam x x)", "(lam x x)")
}

func TestTerm_2(t *testing.T) {
	// Multi-parameter abstractions curry.
	CheckTerm(t, "(lam x y (app x y))", "(lam x (lam y (app x y)))")
}

func TestTerm_3(t *testing.T) {
	// N-ary applications fold left.
	CheckTerm(t, "(app f a b)", "(app (app f a) b)")
}

func TestTerm_4(t *testing.T) {
	CheckTerm(t, "(app if c (lam _ 1) (lam _ 2))",
		"(app (app (app if c) (lam _ 1)) (lam _ 2))")
}

func TestTerm_5(t *testing.T) {
	CheckTerm(t, "(utest 1 2 nop)", "(utest 1 2 nop)")
}

func TestTerm_6(t *testing.T) {
	CheckTerm(t, "(rec (y 2) (x 1))", "(rec (x 1) (y 2))")
}

func TestTerm_7(t *testing.T) {
	CheckTerm(t, "(proj r x)", "(proj r x)")
}

func TestTerm_8(t *testing.T) {
	CheckTerm(t, "(app fix f)", "(app fix f)")
}

func TestTerm_9(t *testing.T) {
	CheckTerm(t, "(app (atom normal) 0.5 true)", "(app (app (atom normal) 0.5) true)")
}

func TestTerm_Err_0(t *testing.T) {
	CheckTermErr(t, "()")
}

func TestTerm_Err_1(t *testing.T) {
	CheckTermErr(t, "(lam x)")
}

func TestTerm_Err_2(t *testing.T) {
	CheckTermErr(t, "(app f)")
}

func TestTerm_Err_3(t *testing.T) {
	CheckTermErr(t, "(proj r)")
}

func TestTerm_Err_4(t *testing.T) {
	CheckTermErr(t, "(blah 1 2)")
}

// ============================================================================
// Spine view
// ============================================================================

func TestSpine_0(t *testing.T) {
	head, args := Spine(NewVar("x"))
	//
	assert.IsType(t, &Var{}, head)
	assert.Empty(t, args)
}

func TestSpine_1(t *testing.T) {
	var (
		f          = NewVar("f")
		a          = NewVar("a")
		b          = NewVar("b")
		head, args = Spine(Apply(f, a, b))
	)
	//
	assert.Same(t, f, head)
	//
	if assert.Len(t, args, 2) {
		assert.Same(t, a, args[0])
		assert.Same(t, b, args[1])
	}
}

// ============================================================================
// Constants
// ============================================================================

func TestArity_0(t *testing.T) {
	assert.Equal(t, uint(2), NewAtom("normal").Arity())
	assert.Equal(t, uint(1), NewAtom("bernoulli").Arity())
	assert.Equal(t, uint(2), NewAtom("sample").Arity())
}

func TestArity_1(t *testing.T) {
	// Partially applied atoms count down.
	atom := Atom{ID: "normal", Args: []Term{NewConst(Float{0.0})}}
	assert.Equal(t, uint(1), atom.Arity())
}

func TestArity_2(t *testing.T) {
	assert.Equal(t, uint(0), Float{1.0}.Arity())
	assert.Equal(t, uint(0), Int{1}.Arity())
	assert.Equal(t, uint(0), Bool{true}.Arity())
}

func TestArity_3(t *testing.T) {
	// Unknown atoms are fatal.
	assert.Panics(t, func() { NewAtom("flip").Arity() })
}

// ============================================================================
// Helpers
// ============================================================================

// CheckTerm checks that reading a given string produces a term which renders
// as expected.
func CheckTerm(t *testing.T, input string, expected string) {
	term, err := FromString(input)
	//
	if err != nil {
		t.Errorf("reading %s failed: %s", input, err)
	} else if String(term) != expected {
		t.Errorf("reading %s produced %s, expected %s", input, String(term), expected)
	}
}

// CheckTermErr checks that reading a given string fails.
func CheckTermErr(t *testing.T, input string) {
	_, err := FromString(input)
	//
	if err == nil {
		t.Errorf("reading %s should have failed", input)
	}
}
