// Copyright Consensys Software Inc.
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
package macro

import (
	"errors"
	"fmt"
)

// Kind classifies the errors which can arise during quoting or expansion.
type Kind uint16

const (
	// InvalidSpliceTarget arises when the argument of an unquote-splicing
	// marker does not denote a sequence of nodes.
	InvalidSpliceTarget Kind = iota
	// MalformedTemplate arises when a template is structurally invalid, such
	// as an empty form or a misplaced escape marker.
	MalformedTemplate
	// UnboundVariable arises when an unquote marker refers to a template
	// variable for which no binding exists.
	UnboundVariable
	// ArityMismatch arises when a macro is invoked with the wrong number of
	// arguments.
	ArityMismatch
	// UnboundMacro arises (in strict mode) when a form head resolves to
	// neither a registered macro nor a known operator.
	UnboundMacro
	// ExpansionDepthExceeded arises when recursive macro expansion exceeds
	// the configured depth limit.
	ExpansionDepthExceeded
	// DuplicateBindingCollision indicates the hygiene renamer produced a
	// clashing name.  This signals a bug in the renamer itself and should
	// never be observed.
	DuplicateBindingCollision
)

func (k Kind) String() string {
	switch k {
	case InvalidSpliceTarget:
		return "invalid splice target"
	case MalformedTemplate:
		return "malformed template"
	case UnboundVariable:
		return "unbound variable"
	case ArityMismatch:
		return "arity mismatch"
	case UnboundMacro:
		return "unbound macro"
	case ExpansionDepthExceeded:
		return "expansion depth exceeded"
	case DuplicateBindingCollision:
		return "duplicate binding collision"
	default:
		return "unknown error"
	}
}

// Error is a structured error arising from a single quote or expand
// invocation.
type Error struct {
	kind Kind
	msg  string
}

// Kind returns the classification of this error.
func (p *Error) Kind() Kind {
	return p.kind
}

// Message returns the message to be reported.
func (p *Error) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *Error) Error() string {
	return fmt.Sprintf("%s: %s", p.kind, p.msg)
}

// IsKind checks whether a given error is a macro error of a given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	//
	return errors.As(err, &e) && e.kind == kind
}

// Construct a new error of a given kind with a formatted message.
func errorf(kind Kind, format string, args ...any) *Error {
	return &Error{kind, fmt.Sprintf(format, args...)}
}
