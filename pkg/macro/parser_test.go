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
	"testing"

	"github.com/consensys/go-macro/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefMacro(t *testing.T) {
	registry := NewRegistry()
	exprs, errs := ParseSourceFiles(sourceFiles(`
		; negated conditional
		(defmacro (unless cond body)
			(if (not (unquote cond)) (unquote body)))
		(unless ok (raise err))`), registry)
	//
	require.Empty(t, errs)
	require.Len(t, exprs, 1)
	//
	expanded, err := NewExpander(registry, DefaultConfig()).Expand(exprs[0])
	require.NoError(t, err)
	assert.Equal(t, "(if (not ok) (raise err))", expanded.String(false))
}

// Definition order is irrelevant: a call may precede its definition in the
// file.
func TestParse_DefinitionAfterUse(t *testing.T) {
	registry := NewRegistry()
	exprs, errs := ParseSourceFiles(sourceFiles(`
		(twice 2)
		(defmacro (twice e) (+ (unquote e) (unquote e)))`), registry)
	//
	require.Empty(t, errs)
	require.Len(t, exprs, 1)
	//
	expanded, err := NewExpander(registry, DefaultConfig()).Expand(exprs[0])
	require.NoError(t, err)
	assert.Equal(t, "(+ 2 2)", expanded.String(false))
}

func TestParse_VariadicDefMacro(t *testing.T) {
	registry := NewRegistry()
	exprs, errs := ParseSourceFiles(sourceFiles(`
		(defmacro (mylist es...) [(unquote-splicing es)])
		(mylist 1 2 3)`), registry)
	//
	require.Empty(t, errs)
	require.Len(t, exprs, 1)
	//
	expanded, err := NewExpander(registry, DefaultConfig()).Expand(exprs[0])
	require.NoError(t, err)
	assert.Equal(t, "[1 2 3]", expanded.String(false))
}

func TestParse_MalformedDefMacro(t *testing.T) {
	inputs := []string{
		"(defmacro)",
		"(defmacro (m))",
		"(defmacro () (+ 1 2))",
		"(defmacro (1 x) (+ 1 2))",
		"(defmacro (m \"x\") (+ 1 2))",
		"(defmacro ((m) x) (+ 1 2))",
	}
	//
	for _, input := range inputs {
		_, errs := ParseSourceFiles(sourceFiles(input), NewRegistry())
		assert.NotEmpty(t, errs, "should not have parsed: %s", input)
	}
}

// Quote errors within toplevel expressions surface as syntax errors against
// the originating term.
func TestParse_QuoteErrors(t *testing.T) {
	_, errs := ParseSourceFiles(sourceFiles("(f (unquote e))"), NewRegistry())
	//
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message(), "no binding")
}

// ============================================================================
// Helpers
// ============================================================================

func sourceFiles(input string) []source.File {
	return []source.File{*source.NewSourceFile("test", []byte(input))}
}
