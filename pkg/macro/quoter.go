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
	"math/big"
	"strings"

	"github.com/consensys/go-macro/pkg/macro/ast"
	"github.com/consensys/go-macro/pkg/sexp"
)

// Quote converts a template into its syntax tree without evaluating it.  Every
// plain symbol in the template becomes an identifier carrying a scope which is
// fresh to this particular quotation; hence, two quotations of the same
// template yield identifiers with distinct identities.  Escape markers are
// consumed during quoting:
//
//   - (unquote e) is replaced by the single node e denotes under the given
//     bindings;
//
//   - (unquote-splicing e) requires e to denote a sequence of nodes, whose
//     elements are inserted as individual siblings into the enclosing form;
//
//   - (unhygienic x) yields a raw identifier for x, which resolves by name
//     alone at the eventual use site (i.e. deliberately permits capture).
//
// The input template is never mutated.
func Quote(template sexp.SExp, bindings *Bindings) (ast.Node, error) {
	q := &quoter{bindings, ast.FreshScope()}
	// Quote the template
	node, err := q.quote(template)
	// Check no splice escapes
	if err == nil && node.AsSplice() != nil {
		return nil, errorf(MalformedTemplate, "misplaced unquote-splicing")
	}
	//
	return node, err
}

// Quoter encapsulates a single quotation, namely the scope minted for it and
// the bindings in effect.
type quoter struct {
	// Bindings in effect for unquote / unquote-splicing markers.
	bindings *Bindings
	// Scope shared by all plain identifiers of this quotation.
	scope ast.Scope
}

func (q *quoter) quote(term sexp.SExp) (ast.Node, error) {
	switch t := term.(type) {
	case *sexp.Symbol:
		return q.quoteSymbol(t), nil
	case *sexp.Array:
		args, err := q.quoteAll(t.Elements)
		//
		if err != nil {
			return nil, err
		}
		//
		return ast.NewArrayForm(args), nil
	case *sexp.List:
		return q.quoteList(t)
	default:
		panic("unreachable")
	}
}

// Quote a symbol, which is either an atomic constant or a plain identifier.
func (q *quoter) quoteSymbol(symbol *sexp.Symbol) ast.Node {
	value := symbol.Value
	//
	if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
		return ast.NewText(value[1 : len(value)-1])
	} else if value == "true" {
		return ast.NewBoolean(true)
	} else if value == "false" {
		return ast.NewBoolean(false)
	} else if number, ok := new(big.Int).SetString(value, 10); ok {
		return ast.NewNumber(number)
	}
	// Plain identifier, introduced by this quotation.
	return ast.NewIdentifier(value, q.scope)
}

func (q *quoter) quoteList(list *sexp.List) (ast.Node, error) {
	switch {
	case list.MatchSymbols(1, "unquote"):
		return q.quoteUnquote(list)
	case list.MatchSymbols(1, "unquote-splicing"):
		return q.quoteUnquoteSplicing(list)
	case list.MatchSymbols(1, "unhygienic"):
		return q.quoteUnhygienic(list)
	case list.Len() == 0:
		return nil, errorf(MalformedTemplate, "empty form")
	}
	// General form
	head, err := q.quote(list.Get(0))
	//
	if err != nil {
		return nil, err
	} else if head.AsSplice() != nil {
		return nil, errorf(MalformedTemplate, "unquote-splicing cannot be a form head")
	}
	//
	args, err := q.quoteAll(list.Elements[1:])
	//
	if err != nil {
		return nil, err
	}
	//
	return ast.NewForm(head, args), nil
}

// Quote a sequence of template elements, consuming any splices arising such
// that their elements become individual siblings.
func (q *quoter) quoteAll(terms []sexp.SExp) ([]ast.Node, error) {
	var nodes []ast.Node
	//
	for _, t := range terms {
		node, err := q.quote(t)
		//
		if err != nil {
			return nil, err
		} else if splice := node.AsSplice(); splice != nil {
			nodes = append(nodes, splice.Elements...)
		} else {
			nodes = append(nodes, node)
		}
	}
	//
	return nodes, nil
}

func (q *quoter) quoteUnquote(list *sexp.List) (ast.Node, error) {
	if list.Len() != 2 {
		return nil, errorf(MalformedTemplate, "unquote expects exactly one argument")
	}
	//
	return q.evalNode(list.Get(1))
}

func (q *quoter) quoteUnquoteSplicing(list *sexp.List) (ast.Node, error) {
	if list.Len() != 2 {
		return nil, errorf(MalformedTemplate, "unquote-splicing expects exactly one argument")
	}
	//
	elements, err := q.evalSequence(list.Get(1))
	//
	if err != nil {
		return nil, err
	}
	//
	return ast.NewSplice(elements), nil
}

func (q *quoter) quoteUnhygienic(list *sexp.List) (ast.Node, error) {
	var symbol *sexp.Symbol
	//
	if list.Len() != 2 {
		return nil, errorf(MalformedTemplate, "unhygienic expects exactly one argument")
	} else if symbol = list.Get(1).AsSymbol(); symbol == nil {
		return nil, errorf(MalformedTemplate, "unhygienic expects an identifier")
	} else if q.quoteSymbol(symbol).AsIdentifier() == nil {
		return nil, errorf(MalformedTemplate, "unhygienic expects an identifier, not a constant")
	}
	//
	return ast.NewRawIdentifier(symbol.Value), nil
}

// Evaluate (at quote time) the argument of an unquote marker down to a single
// node.  A symbol resolves against the bindings in effect; anything else is
// treated as a nested template.
func (q *quoter) evalNode(term sexp.SExp) (ast.Node, error) {
	if symbol := term.AsSymbol(); symbol != nil {
		// Constants denote themselves.
		if node := q.quoteSymbol(symbol); node.AsIdentifier() == nil {
			return node, nil
		}
		// Otherwise, must be a bound template variable.
		if node, ok := q.bindings.Node(symbol.Value); ok {
			return node, nil
		} else if _, ok := q.bindings.Sequence(symbol.Value); ok {
			return nil, errorf(MalformedTemplate, "cannot unquote sequence %s as a single node", symbol.Value)
		}
		//
		return nil, errorf(UnboundVariable, "no binding for %s", symbol.Value)
	}
	// Nested template
	return q.quote(term)
}

// Evaluate (at quote time) the argument of an unquote-splicing marker down to
// a sequence of nodes.  A symbol must be bound to a sequence; an array
// template denotes the sequence of its (quoted) elements.  Anything else is
// not a sequence.
func (q *quoter) evalSequence(term sexp.SExp) ([]ast.Node, error) {
	if symbol := term.AsSymbol(); symbol != nil {
		if nodes, ok := q.bindings.Sequence(symbol.Value); ok {
			return nodes, nil
		} else if q.bindings.Has(symbol.Value) {
			return nil, errorf(InvalidSpliceTarget, "%s is not bound to a sequence", symbol.Value)
		} else if q.quoteSymbol(symbol).AsIdentifier() == nil {
			return nil, errorf(InvalidSpliceTarget, "constant %s is not a sequence", symbol.Value)
		}
		//
		return nil, errorf(UnboundVariable, "no binding for %s", symbol.Value)
	} else if array := term.AsArray(); array != nil {
		return q.quoteAll(array.Elements)
	}
	//
	return nil, errorf(InvalidSpliceTarget, "%s is not a sequence", term.String(false))
}
