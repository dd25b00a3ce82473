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

// Package cps rewrites terms into continuation-passing style.  After the
// rewrite every user-defined function takes a continuation as an extra first
// parameter and tail-applies it to its result, so that the sample and weight
// checkpoints can intercept control during inference.
package cps

import (
	"github.com/petrel-lang/petrel/pkg/ast"
)

// Transform a computation given its continuation.  Applications are the only
// non-atomic computations: both positions are driven to values, binding a
// fresh variable for any position which is itself a computation, and the
// continuation is passed as the function's first argument.
func Transform(cont ast.Term, term ast.Term) ast.Term {
	app, ok := term.(*ast.App)
	// Values are handed straight to the continuation.
	if !ok {
		return ast.NewApp(cont, Atomic(term))
	}
	//
	var (
		fName, eName string
		f, e         ast.Term
	)
	// Drive the function position to a value.
	if isAtomic(app.Fn) {
		f = Atomic(app.Fn)
	} else {
		fName = fresh()
		f = ast.NewVar(fName)
	}
	// Drive the argument position to a value.
	if isAtomic(app.Arg) {
		e = Atomic(app.Arg)
	} else {
		eName = fresh()
		e = ast.NewVar(eName)
	}
	// The function receives the continuation first, then the argument.
	inner := ast.Term(ast.NewApp(ast.NewApp(f, cont), e))
	//
	if eName != "" {
		inner = Transform(ast.NewLam(eName, inner), app.Arg)
	}
	//
	if fName != "" {
		inner = Transform(ast.NewLam(fName, inner), app.Fn)
	}
	//
	return inner
}

// Atomic transforms a term which is already a value, without a supplied
// continuation.  Handing an application to this function is a fatal error.
func Atomic(term ast.Term) ast.Term {
	switch t := term.(type) {
	case *ast.Var, *ast.Nop, *ast.Rec, *ast.Proj:
		return term
	case *ast.Lam:
		// Prepend the continuation parameter.
		k := fresh()
		//
		return ast.NewLam(k, ast.NewLam(t.Param, Transform(ast.NewVar(k), t.Body)))
	case *ast.Const:
		return atomicConst(t)
	case *ast.IfExp:
		return atomicIf(t)
	case *ast.Fix:
		return atomicFix(t)
	case *ast.Utest:
		// Assertions are driven to values by the identity continuation.
		return ast.NewUtest(
			Transform(Identity(), t.Lhs),
			Transform(Identity(), t.Rhs),
			Transform(Identity(), t.Next))
	default:
		ast.Fatalf(ast.Structural, "term %s is not atomic", ast.String(term))
		//
		return nil
	}
}

// Identity returns a fresh identity function.
func Identity() ast.Term {
	x := fresh()
	//
	return ast.NewLam(x, ast.NewVar(x))
}

func isAtomic(term ast.Term) bool {
	_, ok := term.(*ast.App)
	//
	return !ok
}

// A constant of arity n becomes an n-ary curried function, each layer
// accepting a continuation first and then the original argument.  The
// checkpoint atoms are the exception: they stay raw, since their declared
// arity already accounts for the continuation they receive as an ordinary
// argument.
func atomicConst(t *ast.Const) ast.Term {
	if atom, ok := t.Value.(ast.Atom); ok && ast.IsPostCPS(atom.ID) {
		return t
	}
	//
	return wrapConst(t, nil, t.Value.Arity())
}

func wrapConst(c ast.Term, vars []ast.Term, remaining uint) ast.Term {
	// Once saturated, fire the constant on the collected arguments.
	if remaining == 0 {
		return ast.Apply(c, vars...)
	}
	//
	k := fresh()
	v := fresh()
	//
	inner := wrapConst(c, append(vars, ast.NewVar(v)), remaining-1)
	//
	return ast.NewLam(k, ast.NewLam(v, ast.NewApp(ast.NewVar(k), inner)))
}

// The if combinator takes its three operands through separate continuations,
// with the then and else thunks each receiving the final continuation rather
// than having their results applied to it.
func atomicIf(t *ast.IfExp) ast.Term {
	var (
		k1 = fresh()
		a  = fresh()
		k2 = fresh()
		b  = fresh()
		k3 = fresh()
		c  = fresh()
		kf = fresh()
	)
	// if a (b kf) (c kf)
	dispatch := ast.Apply(t,
		ast.NewVar(a),
		ast.NewApp(ast.NewVar(b), ast.NewVar(kf)),
		ast.NewApp(ast.NewVar(c), ast.NewVar(kf)))
	// The final continuation arrives through ordinary application, so the
	// innermost layer leaves its own continuation unused.
	inner := ast.NewLam(k3, ast.NewLam(c, ast.NewLam(kf, dispatch)))
	middle := ast.NewLam(k2, ast.NewLam(b, ast.NewApp(ast.NewVar(k2), inner)))
	//
	return ast.NewLam(k1, ast.NewLam(a, ast.NewApp(ast.NewVar(k1), middle)))
}

// The fixed function takes a continuation as its first argument, but the
// fixpoint combinator itself needs the unwrapped value; feeding the identity
// strips the continuation layer off.
func atomicFix(t *ast.Fix) ast.Term {
	k := fresh()
	v := fresh()
	// k (fix (v id))
	body := ast.NewApp(
		ast.NewVar(k),
		ast.NewApp(t, ast.NewApp(ast.NewVar(v), Identity())))
	//
	return ast.NewLam(k, ast.NewLam(v, body))
}
