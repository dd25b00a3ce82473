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

// Spine flattens an application chain into its head and the list of argument
// terms, in application order.  For a non-application term the head is the
// term itself and the argument list is empty.  Analysis passes use this view
// to turn deeply nested application patterns into head-and-arity checks.
func Spine(t Term) (Term, []Term) {
	var args []Term
	// Walk down the chain of applications.
	for {
		app, ok := t.(*App)
		//
		if !ok {
			break
		}
		//
		args = append(args, app.Arg)
		t = app.Fn
	}
	// Arguments were collected innermost last; reverse into application
	// order.
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	//
	return t, args
}
