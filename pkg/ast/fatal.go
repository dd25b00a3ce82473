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

import "fmt"

// ErrorKind classifies the fatal diagnostics the compilation core can raise.
type ErrorKind uint8

const (
	// Structural indicates an ill-formed term, such as a closure reaching a
	// compilation pass, or an unsupported variant.
	Structural ErrorKind = iota
	// NameResolution indicates a free variable with no binder in scope.
	NameResolution
	// ArityMismatch indicates an unknown atom, or an internal inconsistency
	// between a term and the analysis state derived from it.
	ArityMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case NameResolution:
		return "name resolution"
	case ArityMismatch:
		return "arity mismatch"
	}
	//
	return "unknown"
}

// Fatal is the diagnostic carried by panics raised in the compilation core.
// Nothing below the pipeline boundary recovers from one; the pipeline itself
// converts it into an error for the caller.
type Fatal struct {
	Kind ErrorKind
	Msg  string
}

func (p Fatal) Error() string {
	return fmt.Sprintf("%s: %s", p.Kind, p.Msg)
}

// Fatalf aborts the current compilation with a diagnostic of a given kind.
func Fatalf(kind ErrorKind, format string, args ...any) {
	panic(Fatal{kind, fmt.Sprintf(format, args...)})
}
