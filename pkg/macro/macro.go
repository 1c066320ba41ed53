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
	"strings"

	"github.com/consensys/go-macro/pkg/macro/ast"
	"github.com/consensys/go-macro/pkg/sexp"
)

// Expansion is the signature of a macro.  A macro receives the arguments of
// its call site as syntax (i.e. unevaluated nodes) and produces a replacement
// node.  The replacement is subject to hygiene renaming by the expander.
type Expansion func(args []ast.Node) (ast.Node, error)

// NewTemplateMacro constructs an expansion function from a parameter list and
// a template.  At each invocation the template is quoted afresh with the
// parameters bound to the call site arguments; hence, every invocation
// introduces its own scope for identifiers internal to the template.  The
// template refers to its parameters via unquote / unquote-splicing markers.
//
// A trailing parameter of the form "xs..." is variadic: it is bound to the
// sequence of all remaining arguments, suitable for unquote-splicing.
func NewTemplateMacro(name string, params []string, template sexp.SExp) Expansion {
	n := len(params)
	variadic := n > 0 && strings.HasSuffix(params[n-1], "...")
	//
	return func(args []ast.Node) (ast.Node, error) {
		bindings := NewBindings()
		//
		if variadic {
			if len(args) < n-1 {
				return nil, errorf(ArityMismatch, "macro %s expects at least %d argument(s), got %d",
					name, n-1, len(args))
			}
			// Bind fixed parameters
			for i := 0; i < n-1; i++ {
				bindings.Bind(params[i], args[i])
			}
			// Bind the rest as a sequence
			rest := strings.TrimSuffix(params[n-1], "...")
			bindings.BindSequence(rest, args[n-1:])
		} else if len(args) != n {
			return nil, errorf(ArityMismatch, "macro %s expects %d argument(s), got %d", name, n, len(args))
		} else {
			for i, param := range params {
				bindings.Bind(param, args[i])
			}
		}
		//
		return Quote(template, bindings)
	}
}
