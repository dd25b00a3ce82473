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
	"sort"

	"github.com/petrel-lang/petrel/pkg/sexp"
)

// String renders a term through its S-expression form.
func String(t Term) string {
	return t.Lisp().String()
}

// Lisp converts this variable into an S-expression.
func (p *Var) Lisp() sexp.SExp {
	return sexp.NewSymbol(p.Name)
}

// Lisp converts this abstraction into an S-expression.
func (p *Lam) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("lam"), sexp.NewSymbol(p.Param), p.Body.Lisp())
}

// Lisp converts this application into an S-expression.
func (p *App) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("app"), p.Fn.Lisp(), p.Arg.Lisp())
}

// Lisp converts this constant into an S-expression.
func (p *Const) Lisp() sexp.SExp {
	if atom, ok := p.Value.(Atom); ok {
		elements := []sexp.SExp{sexp.NewSymbol("atom"), sexp.NewSymbol(atom.ID)}
		// Applied arguments are held most recent first.
		for i := len(atom.Args) - 1; i >= 0; i-- {
			elements = append(elements, atom.Args[i].Lisp())
		}
		//
		return sexp.NewList(elements...)
	}
	//
	return sexp.NewSymbol(p.Value.String())
}

// Lisp converts the if combinator into an S-expression.
func (p *IfExp) Lisp() sexp.SExp {
	return sexp.NewSymbol("if")
}

// Lisp converts the fixpoint combinator into an S-expression.
func (p *Fix) Lisp() sexp.SExp {
	return sexp.NewSymbol("fix")
}

// Lisp converts this record into an S-expression, with fields in
// lexicographic order.
func (p *Rec) Lisp() sexp.SExp {
	names := make([]string, 0, len(p.Fields))
	//
	for name := range p.Fields {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	elements := []sexp.SExp{sexp.NewSymbol("rec")}
	for _, name := range names {
		elements = append(elements, sexp.NewList(sexp.NewSymbol(name), p.Fields[name].Lisp()))
	}
	//
	return sexp.NewList(elements...)
}

// Lisp converts this projection into an S-expression.
func (p *Proj) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("proj"), p.Term.Lisp(), sexp.NewSymbol(p.Field))
}

// Lisp converts the unit value into an S-expression.
func (p *Nop) Lisp() sexp.SExp {
	return sexp.NewSymbol("nop")
}

// Lisp converts this unit test into an S-expression.
func (p *Utest) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("utest"), p.Lhs.Lisp(), p.Rhs.Lisp(), p.Next.Lisp())
}

// Lisp converts this closure into an S-expression.  Closures never appear in
// the compilation core, but the evaluator may hand them back for display.
func (p *Closure) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("closure"), sexp.NewSymbol(p.Param), p.Body.Lisp())
}
