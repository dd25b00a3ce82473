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
	"fmt"

	"github.com/petrel-lang/petrel/pkg/util/collection/set"
)

// AbstractValue is an element of the 0-CFA analysis domain: a stochastic
// taint, the closure of an abstraction, or the fixpoint combinator.
type AbstractValue interface {
	set.Comparable[AbstractValue]
	// String generates a string representation.
	String() string
}

// ValueSet is a set of abstract values with deterministic iteration order.
type ValueSet = set.SortedSet[AbstractValue]

// NewValueSet constructs a value set holding zero or more initial values.
func NewValueSet(values ...AbstractValue) *ValueSet {
	return set.NewSortedSet(values...)
}

// Ordinals used to order abstract values of different shapes.
const (
	stochOrdinal = iota
	funOrdinal
	fixOrdinal
)

// ===================================================================
// Stochastic taint
// ===================================================================

// Stoch marks a value directly or transitively derived from a random draw.
type Stoch struct{}

// Cmp implementation for the Comparable interface.
func (p Stoch) Cmp(other AbstractValue) int {
	if _, ok := other.(Stoch); ok {
		return 0
	}
	//
	return -1
}

func (p Stoch) String() string {
	return "stoch"
}

// ===================================================================
// Closures
// ===================================================================

// Fun is the closure of an abstraction, identified by three labels: the
// abstraction's own label, its body's label and its parameter's label.
type Fun struct {
	Outer uint
	Inner uint
	Param uint
}

// Cmp implementation for the Comparable interface.  Equality is structural
// over the three labels.
func (p Fun) Cmp(other AbstractValue) int {
	q, ok := other.(Fun)
	//
	if !ok {
		return cmpOrdinal(funOrdinal, other)
	} else if p.Outer != q.Outer {
		return cmpUint(p.Outer, q.Outer)
	} else if p.Inner != q.Inner {
		return cmpUint(p.Inner, q.Inner)
	}
	//
	return cmpUint(p.Param, q.Param)
}

func (p Fun) String() string {
	return fmt.Sprintf("fun(%d,%d,%d)", p.Outer, p.Inner, p.Param)
}

// ===================================================================
// Fixpoint
// ===================================================================

// Fix is the fixpoint combinator considered as a value.
type Fix struct{}

// Cmp implementation for the Comparable interface.
func (p Fix) Cmp(other AbstractValue) int {
	if _, ok := other.(Fix); ok {
		return 0
	}
	//
	return 1
}

func (p Fix) String() string {
	return "fix"
}

func ordinalOf(v AbstractValue) int {
	switch v.(type) {
	case Stoch:
		return stochOrdinal
	case Fun:
		return funOrdinal
	default:
		return fixOrdinal
	}
}

func cmpOrdinal(ordinal int, other AbstractValue) int {
	return ordinal - ordinalOf(other)
}

func cmpUint(lhs uint, rhs uint) int {
	if lhs < rhs {
		return -1
	} else if lhs > rhs {
		return 1
	}
	//
	return 0
}
