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
package compiler

import (
	"github.com/petrel-lang/petrel/pkg/ast"
)

// Index resolves every variable occurrence in a term to its de Bruijn index:
// the number of binders between the occurrence and its binding site.  The
// scope lists the free names in scope, innermost first, so the evaluator's
// environment must be pushed in exactly the reverse order.  The term is
// indexed in place and returned; an unresolvable name is a fatal error.
func Index(scope []string, term ast.Term) ast.Term {
	switch t := term.(type) {
	case *ast.Var:
		t.Index = lookup(scope, t.Name)
	case *ast.Lam:
		Index(push(t.Param, scope), t.Body)
	case *ast.App:
		Index(scope, t.Fn)
		Index(scope, t.Arg)
	case *ast.Utest:
		Index(scope, t.Lhs)
		Index(scope, t.Rhs)
		Index(scope, t.Next)
	case *ast.Const, *ast.IfExp, *ast.Fix, *ast.Rec, *ast.Proj, *ast.Nop:
		// Leaves
	default:
		ast.Fatalf(ast.Structural, "unsupported term %s in indexing", ast.String(term))
	}
	//
	return term
}

func lookup(scope []string, name string) int {
	for i, n := range scope {
		if n == name {
			return i
		}
	}
	//
	ast.Fatalf(ast.NameResolution, "unbound variable %s", name)
	//
	return -1
}

// Extend a scope with a new innermost name, without mutating the original.
func push(name string, scope []string) []string {
	extended := make([]string, 0, len(scope)+1)
	extended = append(extended, name)
	//
	return append(extended, scope...)
}
