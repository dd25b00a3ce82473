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
package sexp

import "fmt"

// SyntaxError reports a malformed input, retaining the byte offset at which
// the problem was detected.
type SyntaxError struct {
	offset int
	msg    string
}

func errorAt(offset int, msg string) *SyntaxError {
	return &SyntaxError{offset, msg}
}

// Offset returns the position in the input at which this error is reported.
func (p *SyntaxError) Offset() int {
	return p.offset
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", p.offset, p.msg)
}
