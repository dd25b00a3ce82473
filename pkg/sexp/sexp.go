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

// Package sexp provides the S-expression interchange form for terms: one
// symbol or list per term variant, space separated, with semicolon comments.
// The front end hands programs over in this shape and analysis results render
// back into it, so printing and reading are exact inverses.
package sexp

import "strings"

// SExp is either a List of zero or more S-expressions, or an atomic Symbol.
// Consumers dispatch on the concrete type.
type SExp interface {
	// String generates a representation which reads back as the same
	// expression.
	String() string
}

// ===================================================================
// List
// ===================================================================

// List holds zero or more S-expressions.
type List struct {
	Elements []SExp
}

var _ SExp = (*List)(nil)

// NewList constructs a list from zero or more elements.
func NewList(elements ...SExp) *List {
	return &List{elements}
}

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get the ith element of this list.
func (l *List) Get(i int) SExp { return l.Elements[i] }

func (l *List) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, e := range l.Elements {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(e.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ===================================================================
// Symbol
// ===================================================================

// Symbol is a terminal: a name, combinator keyword or literal.
type Symbol struct {
	Value string
}

var _ SExp = (*Symbol)(nil)

// NewSymbol constructs a symbol from a given string.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

func (s *Symbol) String() string { return s.Value }
