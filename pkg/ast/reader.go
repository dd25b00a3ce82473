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
	"strconv"

	"github.com/pkg/errors"
	"github.com/petrel-lang/petrel/pkg/sexp"
)

// FromString reads a term from its S-expression interchange form.  This is
// not a surface-syntax parser: it accepts exactly the already-parsed AST
// shape a front end produces, one list form per variant.
func FromString(text string) (Term, error) {
	s, err := sexp.Parse(text)
	//
	if err != nil {
		return nil, err
	} else if s == nil {
		return nil, errors.New("empty term")
	}
	//
	return FromSExp(s)
}

// FromSExp converts an S-expression into a term, or returns an error if the
// expression does not encode one.
func FromSExp(s sexp.SExp) (Term, error) {
	switch e := s.(type) {
	case *sexp.Symbol:
		return termOfSymbol(e.Value), nil
	case *sexp.List:
		return termOfList(e)
	}
	//
	return nil, errors.Errorf("unknown S-expression %s", s.String())
}

// Convert a bare symbol into a term.  Combinators and literals are carved
// out; everything else is a variable occurrence.
func termOfSymbol(value string) Term {
	switch value {
	case "if":
		return NewIfExp()
	case "fix":
		return NewFix()
	case "nop":
		return NewNop()
	case "true":
		return NewConst(Bool{true})
	case "false":
		return NewConst(Bool{false})
	}
	// Numeric literals
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return NewConst(Int{i})
	} else if f, err := strconv.ParseFloat(value, 64); err == nil {
		return NewConst(Float{f})
	}
	// Anything else is a variable.
	return NewVar(value)
}

func termOfList(list *sexp.List) (Term, error) {
	if list.Len() == 0 {
		return nil, errors.New("empty list is not a term")
	}
	//
	head, ok := list.Get(0).(*sexp.Symbol)
	if !ok {
		return nil, errors.Errorf("malformed term %s", list.String())
	}
	//
	switch head.Value {
	case "lam":
		return lamOfList(list)
	case "app":
		return appOfList(list)
	case "rec":
		return recOfList(list)
	case "proj":
		return projOfList(list)
	case "utest":
		return utestOfList(list)
	case "atom":
		return atomOfList(list)
	}
	//
	return nil, errors.Errorf("unknown term form %s", head.Value)
}

// (lam x1 .. xn body) curries into nested single-argument abstractions.
func lamOfList(list *sexp.List) (Term, error) {
	if list.Len() < 3 {
		return nil, errors.Errorf("malformed abstraction %s", list.String())
	}
	//
	body, err := FromSExp(list.Get(list.Len() - 1))
	if err != nil {
		return nil, err
	}
	// Wrap parameters innermost first.
	for i := list.Len() - 2; i >= 1; i-- {
		param, ok := list.Get(i).(*sexp.Symbol)
		if !ok {
			return nil, errors.Errorf("malformed parameter %s", list.Get(i).String())
		}
		//
		body = NewLam(param.Value, body)
	}
	//
	return body, nil
}

// (app f e1 .. en) folds into a left-nested application chain.
func appOfList(list *sexp.List) (Term, error) {
	if list.Len() < 3 {
		return nil, errors.Errorf("malformed application %s", list.String())
	}
	//
	fn, err := FromSExp(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	for i := 2; i < list.Len(); i++ {
		arg, err := FromSExp(list.Get(i))
		if err != nil {
			return nil, err
		}
		//
		fn = NewApp(fn, arg)
	}
	//
	return fn, nil
}

// (rec (name term) ...)
func recOfList(list *sexp.List) (Term, error) {
	fields := make(map[string]Term)
	//
	for i := 1; i < list.Len(); i++ {
		entry, ok := list.Get(i).(*sexp.List)
		if !ok || entry.Len() != 2 {
			return nil, errors.Errorf("malformed record field %s", list.Get(i).String())
		}
		//
		name, ok := entry.Get(0).(*sexp.Symbol)
		if !ok {
			return nil, errors.Errorf("malformed record field %s", entry.String())
		}
		//
		value, err := FromSExp(entry.Get(1))
		if err != nil {
			return nil, err
		}
		//
		fields[name.Value] = value
	}
	//
	return NewRec(fields), nil
}

// (proj term field)
func projOfList(list *sexp.List) (Term, error) {
	if list.Len() != 3 {
		return nil, errors.Errorf("malformed projection %s", list.String())
	}
	//
	term, err := FromSExp(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	field, ok := list.Get(2).(*sexp.Symbol)
	if !ok {
		return nil, errors.Errorf("malformed projection %s", list.String())
	}
	//
	return NewProj(term, field.Value), nil
}

// (utest lhs rhs next)
func utestOfList(list *sexp.List) (Term, error) {
	if list.Len() != 4 {
		return nil, errors.Errorf("malformed unit test %s", list.String())
	}
	//
	lhs, err := FromSExp(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	rhs, err := FromSExp(list.Get(2))
	if err != nil {
		return nil, err
	}
	//
	next, err := FromSExp(list.Get(3))
	if err != nil {
		return nil, err
	}
	//
	return NewUtest(lhs, rhs, next), nil
}

// (atom id) introduces an unapplied atom constant.
func atomOfList(list *sexp.List) (Term, error) {
	if list.Len() != 2 {
		return nil, errors.Errorf("malformed atom %s", list.String())
	}
	//
	id, ok := list.Get(1).(*sexp.Symbol)
	if !ok {
		return nil, errors.Errorf("malformed atom %s", list.String())
	}
	// Reject unknown symbols eagerly.
	if _, known := atomArity[id.Value]; !known {
		return nil, errors.Errorf("unknown atom %s", id.Value)
	}
	//
	return NewConst(NewAtom(id.Value)), nil
}
