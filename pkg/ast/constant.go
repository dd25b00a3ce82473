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
	"fmt"
	"strconv"
)

// Constant is a constant value embedded in a term.  Literals have arity zero;
// atoms have whatever arity remains after the arguments already applied to
// them.
type Constant interface {
	// Arity returns the number of arguments this constant still expects
	// before it can fire.
	Arity() uint
	// String generates a string representation.
	String() string
}

// Float is a floating-point literal.
type Float struct {
	Value float64
}

// Arity of a literal is always zero.
func (c Float) Arity() uint { return 0 }

func (c Float) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// Int is an integer literal.
type Int struct {
	Value int64
}

// Arity of a literal is always zero.
func (c Int) Arity() uint { return 0 }

func (c Int) String() string {
	return strconv.FormatInt(c.Value, 10)
}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

// Arity of a literal is always zero.
func (c Bool) Arity() uint { return 0 }

func (c Bool) String() string {
	return strconv.FormatBool(c.Value)
}

// Char is a character literal.
type Char struct {
	Value rune
}

// Arity of a literal is always zero.
func (c Char) Arity() uint { return 0 }

func (c Char) String() string {
	return fmt.Sprintf("'%c'", c.Value)
}

// Atom is a built-in symbolic constant with a fixed arity, possibly partially
// applied.  Args holds the arguments applied so far, most recent first.
type Atom struct {
	ID   string
	Args []Term
}

// NewAtom constructs an unapplied atom for a given symbol.
func NewAtom(id string) Atom {
	return Atom{ID: id}
}

// Arity returns the number of arguments this atom still expects.  Asking for
// the arity of an unknown symbol is a fatal error.
func (c Atom) Arity() uint {
	max := MaxArity(c.ID)
	//
	if uint(len(c.Args)) > max {
		panic(fmt.Sprintf("atom %s applied to %d arguments (max %d)", c.ID, len(c.Args), max))
	}
	//
	return max - uint(len(c.Args))
}

func (c Atom) String() string {
	return c.ID
}

// ===================================================================
// Atom tables
// ===================================================================

// atomArity fixes the arity of every known atom symbol.
var atomArity = map[string]uint{
	// Distribution constructors
	"normal":      2,
	"uniform":     2,
	"gamma":       2,
	"exponential": 1,
	"bernoulli":   1,
	// Inference
	"infer": 1,
	"prob":  2,
	// Checkpoints.  Both receive their continuation as an extra argument,
	// ahead of their operand, hence arity two rather than one.
	"sample": 2,
	"weight": 2,
}

// preCPSAtoms are the atoms wrapped by the CPS pass, in table order.
var preCPSAtoms = []string{
	"normal", "uniform", "gamma", "exponential", "bernoulli", "infer", "prob",
}

// postCPSAtoms are the checkpoint atoms, which the CPS pass leaves in raw
// form: their continuation arrives as an ordinary argument.
var postCPSAtoms = []string{"sample", "weight"}

// MaxArity returns the full arity of a given atom symbol.  An unknown symbol
// is a fatal error.
func MaxArity(id string) uint {
	arity, ok := atomArity[id]
	//
	if !ok {
		Fatalf(ArityMismatch, "unknown atom %s", id)
	}
	//
	return arity
}

// PreCPSAtoms returns the names of all atoms subject to CPS wrapping, in the
// order they enter the builtin table.
func PreCPSAtoms() []string {
	return preCPSAtoms
}

// PostCPSAtoms returns the names of all checkpoint atoms, in the order they
// enter the builtin table.
func PostCPSAtoms() []string {
	return postCPSAtoms
}

// IsPostCPS checks whether a given symbol names a checkpoint atom.
func IsPostCPS(id string) bool {
	for _, name := range postCPSAtoms {
		if name == id {
			return true
		}
	}
	//
	return false
}
