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
package cps

import "strconv"

// Process-wide counter backing the fresh-name supply.  The leading "$" is
// lexically unavailable to source programs, so fresh names can never shadow
// user bindings.  Callers compiling multiple programs in one process either
// reset the counter between runs or tolerate strictly increasing names; the
// names stay unique either way.
var counter uint64

// fresh draws the next variable name, "$0", "$1" and so on.
func fresh() string {
	name := "$" + strconv.FormatUint(counter, 10)
	counter++
	//
	return name
}

// ResetFresh restarts the fresh-name supply.  Only safe between compilation
// runs.
func ResetFresh() {
	counter = 0
}
