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

	"github.com/consensys/go-macro/pkg/macro/ast"
	"github.com/consensys/go-macro/pkg/sexp"
	"github.com/consensys/go-macro/pkg/util/source"
)

// ParseSourceFiles parses a given set of source files into a sequence of
// quoted toplevel expressions, registering any macro definitions encountered
// along the way.  Each file consists of zero or more toplevel terms, where a
// term of the form
//
//	(defmacro (name p1 .. pn) template)
//
// registers a template macro, and any other term is quoted as a call site
// expression.  Declaration order is irrelevant: all definitions are
// registered before any expansion takes place.
func ParseSourceFiles(files []source.File, registry *Registry) ([]ast.Node, []source.SyntaxError) {
	var (
		exprs   []ast.Node
		errors  []source.SyntaxError
		srcmaps = source.NewSourceMaps[sexp.SExp]()
	)
	//
	for _, f := range files {
		terms, errs := parseSourceFile(f, srcmaps)
		errors = append(errors, errs...)
		// Register macro definitions first.
		for _, t := range terms {
			if list := asDefMacro(t); list != nil {
				errs := parseDefMacro(list, registry, srcmaps)
				errors = append(errors, errs...)
			}
		}
		// Quote remaining toplevel expressions.
		for _, t := range terms {
			if asDefMacro(t) == nil {
				node, err := Quote(t, NewBindings())
				//
				if err != nil {
					errors = append(errors, *srcmaps.SyntaxError(t, err.Error()))
				} else {
					exprs = append(exprs, node)
				}
			}
		}
	}
	//
	return exprs, errors
}

func parseSourceFile(srcfile source.File, srcmaps *source.Maps[sexp.SExp]) ([]sexp.SExp, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(&srcfile)
	// Register source mapping
	srcmaps.Join(srcmap)
	//
	if err != nil {
		return terms, []source.SyntaxError{*err}
	}
	//
	return terms, nil
}

// Check whether a given toplevel term is a macro definition and, if so,
// return it as a list.
func asDefMacro(term sexp.SExp) *sexp.List {
	if list := term.AsList(); list != nil && list.MatchSymbols(1, "defmacro") {
		return list
	}
	//
	return nil
}

// Parse a "defmacro" declaration and register the resulting template macro.
func parseDefMacro(list *sexp.List, registry *Registry, srcmaps *source.Maps[sexp.SExp]) []source.SyntaxError {
	var signature *sexp.List
	//
	if list.Len() != 3 {
		return srcmaps.SyntaxErrors(list, "malformed macro definition")
	} else if signature = list.Get(1).AsList(); signature == nil || signature.Len() == 0 {
		return srcmaps.SyntaxErrors(list.Get(1), "malformed macro signature")
	}
	// Parse signature
	name, params, errors := parseMacroSignature(signature, srcmaps)
	//
	if len(errors) > 0 {
		return errors
	}
	// Construct and register the macro.
	registry.Register(name, NewTemplateMacro(name, params, list.Get(2)))
	//
	return nil
}

func parseMacroSignature(signature *sexp.List, srcmaps *source.Maps[sexp.SExp]) (string, []string, []source.SyntaxError) {
	var (
		errors []source.SyntaxError
		params = make([]string, signature.Len()-1)
		name   string
	)
	//
	for i := 0; i < signature.Len(); i++ {
		symbol := signature.Get(i).AsSymbol()
		//
		if symbol == nil || !isMacroIdentifier(symbol.Value) {
			errors = append(errors, *srcmaps.SyntaxError(signature.Get(i), "invalid macro identifier"))
		} else if i == 0 {
			name = symbol.Value
		} else {
			params[i-1] = symbol.Value
		}
	}
	//
	return name, params, errors
}

// Check whether a given symbol is usable as a macro or parameter name.  In
// particular, constants and string literals are not.
func isMacroIdentifier(value string) bool {
	if len(value) == 0 || value == "true" || value == "false" || value[0] == '"' {
		return false
	}
	// Must not parse as a number.
	_, ok := new(big.Int).SetString(value, 10)
	//
	return !ok
}
