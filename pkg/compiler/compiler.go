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

// Package compiler wires the analysis and transformation passes into a
// pipeline taking a parsed program to an evaluator-ready term: labeling,
// control-flow analysis, dynamic marking, CPS transformation and de Bruijn
// indexing.
package compiler

import (
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/petrel-lang/petrel/pkg/ast"
	"github.com/petrel-lang/petrel/pkg/cfa"
	"github.com/petrel-lang/petrel/pkg/cps"
)

// Evaluator abstracts the downstream execution engine.  It consumes the de
// Bruijn indexed, CPS-transformed program together with an environment
// holding one entry per builtin, pushed in table order.
type Evaluator interface {
	Eval(program ast.Term, env []ast.Term) (ast.Term, error)
}

// Config determines how a program is compiled.
type Config struct {
	// User builtin table, before augmentation with the probabilistic atoms.
	Builtins []Builtin
	// Optional execution engine invoked on the compiled program.
	Evaluator Evaluator
}

// Result of compiling one program.
type Result struct {
	// The CPS-transformed, de Bruijn indexed program.
	Program ast.Term
	// Evaluator environment, one entry per builtin in table order.
	Env []ast.Term
	// Builtin name to label map.
	Bindings cfa.BindingMap
	// Number of labels allocated by the labeler.
	Labels uint
	// Per-label abstract value sets.
	Data []*cfa.ValueSet
	// Per-label dynamic marks, the input contract of alignment.
	Marks *bitset.BitSet
	// Result of evaluation, when an evaluator is configured.
	Value ast.Term
}

// Compile a parsed program.  The pipeline is invoked once per program; any
// fatal diagnostic raised by a pass aborts that compilation and surfaces here
// as an error, so a driver can report it and continue with its next input.
func Compile(cfg Config, program ast.Term) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			fatal, ok := r.(ast.Fatal)
			// Only fatal diagnostics are converted; anything else is a bug
			// and keeps unwinding.
			if !ok {
				panic(r)
			}
			//
			result, err = nil, errors.Wrap(fatal, "compilation aborted")
		}
	}()
	//
	start := time.Now()
	//
	table := StandardTable(cfg.Builtins)
	names := Names(table)
	// Label the program, with builtin names consuming the first labels.
	_, bmap, nLabels := cfa.Label(names, program)
	// Propagate the stochastic taint.
	data, marks := cfa.Analyze(bmap, program, nLabels)
	// Rewrite into continuation-passing style.  The program itself is driven
	// to a value by the identity continuation.
	transformed := cps.Transform(cps.Identity(), program)
	// Builtins pass through the same rewrite; the checkpoint atoms come out
	// unchanged.  Each builtin is indexed in the scope of those before it.
	var (
		env   = make([]ast.Term, len(table))
		scope []string
	)
	//
	for i, builtin := range table {
		env[i] = Index(scope, cps.Atomic(builtin.Term))
		scope = push(builtin.Name, scope)
	}
	//
	indexed := Index(scope, transformed)
	//
	log.Debugf("compiled %d labels over %d builtins, %d dynamic, in %0.2fs",
		nLabels, len(table), marks.Count(), time.Since(start).Seconds())
	//
	result = &Result{
		Program:  indexed,
		Env:      env,
		Bindings: bmap,
		Labels:   nLabels,
		Data:     data,
		Marks:    marks,
	}
	// Hand over to the execution engine, if one is configured.
	if cfg.Evaluator != nil {
		value, eerr := cfg.Evaluator.Eval(indexed, env)
		//
		if eerr != nil {
			return nil, errors.Wrap(eerr, "evaluation failed")
		}
		//
		result.Value = value
	}
	//
	return result, nil
}
