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
	"github.com/consensys/go-macro/pkg/macro/ast"
	"github.com/consensys/go-macro/pkg/sexp"
)

// ToSExp converts a (fully expanded) node back into surface syntax, such that
// parsing and quoting the result yields an equivalent tree.  When marked,
// identifiers are annotated with their scope; such output is for human
// inspection and does not round trip.
func ToSExp(node ast.Node, marked bool) sexp.SExp {
	switch t := node.(type) {
	case *ast.Literal:
		return sexp.NewSymbol(t.Val.String())
	case *ast.Identifier:
		return sexp.NewSymbol(t.String(marked))
	case *ast.Form:
		elements := make([]sexp.SExp, 0, len(t.Args)+1)
		// Sequence forms print with their surface bracket syntax.
		if name, ok := t.HeadName(); ok && name == ast.ArrayHead {
			for _, arg := range t.Args {
				elements = append(elements, ToSExp(arg, marked))
			}
			//
			return sexp.NewArray(elements)
		}
		//
		elements = append(elements, ToSExp(t.Head, marked))
		//
		for _, arg := range t.Args {
			elements = append(elements, ToSExp(arg, marked))
		}
		//
		return sexp.NewList(elements)
	default:
		// Splices never survive quotation.
		panic("unreachable")
	}
}
