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
	"slices"

	"github.com/petrel-lang/petrel/pkg/ast"
)

// Builtin binds a free name available to every program to its defining term.
type Builtin struct {
	Name string
	Term ast.Term
}

// StandardTable extends a user-supplied builtin table with the probabilistic
// atoms: first the constructors and inference primitives (which the CPS pass
// wraps), then the checkpoints (which it leaves raw).  The resulting order
// determines label assignment and evaluator-environment position, so it must
// be identical across labeling and evaluation.
func StandardTable(user []Builtin) []Builtin {
	table := slices.Clone(user)
	//
	for _, name := range ast.PreCPSAtoms() {
		table = append(table, Builtin{name, ast.NewConst(ast.NewAtom(name))})
	}
	//
	for _, name := range ast.PostCPSAtoms() {
		table = append(table, Builtin{name, ast.NewConst(ast.NewAtom(name))})
	}
	//
	return table
}

// Names extracts the builtin names, in table order.
func Names(table []Builtin) []string {
	names := make([]string, len(table))
	//
	for i, b := range table {
		names[i] = b.Name
	}
	//
	return names
}
