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
	"github.com/petrel-lang/petrel/pkg/util/collection/stack"
)

// Solve computes, for every label, the set of abstract values flowing there,
// as the least fixpoint of a given set of constraints.  Termination follows
// from the data sets growing monotonically within a finite domain.
func Solve(constraints []Constraint, nLabels uint) []*ValueSet {
	s := newSolver(nLabels)
	// Seed the data sets and build the constraint graph.
	for _, c := range constraints {
		switch c := c.(type) {
		case Direct:
			s.insert(c.Target, c.Value)
		case Subset:
			s.attach(c.From, c)
		case Conditional:
			// Fires when either the source set or the guard set grows.
			s.attach(c.From, c)
			s.attach(c.Guard, c)
		default:
			ast.Fatalf(ast.Structural, "unknown constraint %s", c.String())
		}
	}
	// Iterate to fixpoint.
	steps := 0
	//
	for !s.worklist.IsEmpty() {
		q := s.worklist.Pop()
		s.queued.Clear(q)
		//
		steps++
		//
		for _, c := range s.edges[q] {
			switch c := c.(type) {
			case Subset:
				s.propagate(c.From, c.To)
			case Conditional:
				if s.data[c.Guard].Contains(c.Value) {
					s.propagate(c.From, c.To)
				}
			default:
				// Direct constraints are consumed during seeding and must
				// never end up on an edge.
				ast.Fatalf(ast.Structural, "constraint %s on solver edge", c.String())
			}
		}
	}
	//
	log.Debugf("solved %d constraints over %d labels in %d steps", len(constraints), nLabels, steps)
	//
	return s.data
}

// solver holds the state of one fixpoint computation: per-label value sets,
// per-label constraint edges and the worklist of labels whose set has grown.
type solver struct {
	data  []*ValueSet
	edges [][]Constraint
	// Worklist of labels to revisit, with a membership bitset to avoid
	// queueing a label twice.
	worklist *stack.Stack[uint]
	queued   *bitset.BitSet
}

func newSolver(nLabels uint) *solver {
	data := make([]*ValueSet, nLabels)
	//
	for i := range data {
		data[i] = NewValueSet()
	}
	//
	return &solver{
		data:     data,
		edges:    make([][]Constraint, nLabels),
		worklist: stack.NewStack[uint](),
		queued:   bitset.New(nLabels),
	}
}

// Attach a constraint to the edge list of a given label, so it is revisited
// whenever that label's set grows.
func (s *solver) attach(label uint, c Constraint) {
	s.edges[label] = append(s.edges[label], c)
}

// Insert a single value into the set at a given label, scheduling the label
// if the set grew.
func (s *solver) insert(label uint, value AbstractValue) {
	if s.data[label].Insert(value) {
		s.enqueue(label)
	}
}

// Propagate everything at one label into another, scheduling the target if
// its set grew.
func (s *solver) propagate(from uint, to uint) {
	if s.data[to].InsertAll(s.data[from]) {
		s.enqueue(to)
	}
}

func (s *solver) enqueue(label uint) {
	if !s.queued.Test(label) {
		s.queued.Set(label)
		s.worklist.Push(label)
	}
}
