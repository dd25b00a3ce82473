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
	"github.com/petrel-lang/petrel/pkg/ast"
)

// BindingMap maps the name of every free builtin to the label standing for
// its binding site.
type BindingMap map[string]uint

// Label assigns a unique label to every subterm and every binding occurrence
// of a variable in a given term.  Builtin names are consumed first, in order,
// so that their labels are identical across labeling and evaluation.  The
// term is labeled in place and returned together with the builtin binding map
// and the total number of labels allocated.  A variable with no binder in
// scope is a fatal error.
func Label(builtins []string, term ast.Term) (ast.Term, BindingMap, uint) {
	l := &labeler{}
	bmap := BindingMap{}
	// Builtins consume the first labels, in table order.
	for _, name := range builtins {
		bmap[name] = l.alloc()
	}
	// Environment for the binding pass starts out as the builtin map.
	env := make(map[string]uint, len(bmap))
	for name, label := range bmap {
		env[name] = label
	}
	// Pass one: tie every variable to its binding site.
	l.bindVars(env, term)
	// Pass two: label every node.
	l.labelTerms(term)
	//
	return term, bmap, l.next
}

// labeler allocates labels from a single monotonic counter.
type labeler struct {
	next uint
}

func (l *labeler) alloc() uint {
	label := l.next
	l.next++
	//
	return label
}

// Tie every variable occurrence to the label of its binder, allocating a
// fresh label at every abstraction.  Shadowing is handled by restoring the
// displaced binding on the way back out.
func (l *labeler) bindVars(env map[string]uint, term ast.Term) {
	switch t := term.(type) {
	case *ast.Var:
		label, ok := env[t.Name]
		//
		if !ok {
			ast.Fatalf(ast.NameResolution, "unbound variable %s", t.Name)
		}
		//
		t.Attrs.VarLabel = label
	case *ast.Lam:
		t.Attrs.VarLabel = l.alloc()
		// Extend environment, remembering any displaced binding.
		shadowed, wasBound := env[t.Param]
		env[t.Param] = t.Attrs.VarLabel
		//
		l.bindVars(env, t.Body)
		// Restore environment.
		if wasBound {
			env[t.Param] = shadowed
		} else {
			delete(env, t.Param)
		}
	case *ast.App:
		l.bindVars(env, t.Fn)
		l.bindVars(env, t.Arg)
	case *ast.Utest:
		l.bindVars(env, t.Lhs)
		l.bindVars(env, t.Rhs)
		l.bindVars(env, t.Next)
	case *ast.Const, *ast.IfExp, *ast.Fix, *ast.Rec, *ast.Proj, *ast.Nop:
		// Atomic: no substructure is bound.
	default:
		ast.Fatalf(ast.Structural, "unsupported term %s in labeling", ast.String(term))
	}
}

// Assign a label to every node.  Records and projections receive a label but
// their substructure does not.
func (l *labeler) labelTerms(term ast.Term) {
	term.Attr().Label = l.alloc()
	//
	switch t := term.(type) {
	case *ast.Lam:
		l.labelTerms(t.Body)
	case *ast.App:
		l.labelTerms(t.Fn)
		l.labelTerms(t.Arg)
	case *ast.Utest:
		l.labelTerms(t.Lhs)
		l.labelTerms(t.Rhs)
		l.labelTerms(t.Next)
	case *ast.Var, *ast.Const, *ast.IfExp, *ast.Fix, *ast.Rec, *ast.Proj, *ast.Nop:
		// Leaves
	default:
		ast.Fatalf(ast.Structural, "unsupported term %s in labeling", ast.String(term))
	}
}
