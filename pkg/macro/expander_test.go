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

	"github.com/consensys/go-macro/pkg/macro/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Basic expansion
// ============================================================================

// Literals and identifiers expand to themselves.
func TestExpand_Atoms(t *testing.T) {
	expander := NewExpander(NewRegistry(), DefaultConfig())
	//
	for _, input := range []string{"x", "42", "\"hi\""} {
		node := quoteString(t, input, NewBindings())
		//
		expanded, err := expander.Expand(node)
		require.NoError(t, err)
		assert.Equal(t, node, expanded)
	}
}

// A form whose head is not a macro has its children expanded only.
func TestExpand_NonMacroForm(t *testing.T) {
	registry := NewRegistry()
	registry.Register("m", NewTemplateMacro("m", nil, parseOne(t, "1")))
	//
	expander := NewExpander(registry, DefaultConfig())
	//
	node := quoteString(t, "(f x (m))", NewBindings())
	expanded, err := expander.Expand(node)
	//
	require.NoError(t, err)
	assert.Equal(t, "(f x 1)", expanded.String(false))
}

// The "unless" scenario: expansion substitutes the call site arguments with
// their lexical identities preserved.
func TestExpand_Unless(t *testing.T) {
	registry := NewRegistry()
	registry.Register("unless", func(args []ast.Node) (ast.Node, error) {
		head := ast.NewRawIdentifier("if")
		not := ast.NewForm(ast.NewRawIdentifier("not"), []ast.Node{args[0]})
		//
		return ast.NewForm(head, []ast.Node{not, args[1]}), nil
	})
	//
	expander := NewExpander(registry, DefaultConfig())
	//
	call := quoteString(t, "(unless ok (raise err))", NewBindings())
	cond := call.AsForm().Get(0).AsIdentifier()
	body := call.AsForm().Get(1).AsForm()
	//
	expanded, err := expander.Expand(call)
	require.NoError(t, err)
	assert.Equal(t, "(if (not ok) (raise err))", expanded.String(false))
	// Lexical identities of caller-supplied identifiers are preserved.
	form := expanded.AsForm()
	ok := form.Get(0).AsForm().Get(0).AsIdentifier()
	err2 := form.Get(1).AsForm().Get(0).AsIdentifier()
	//
	assert.True(t, cond.SameAs(ok))
	assert.True(t, body.Get(0).AsIdentifier().SameAs(err2))
}

// ============================================================================
// Nested expansion
// ============================================================================

// A macro expanding into another macro call must fully resolve.
func TestExpand_MacroIntoMacro(t *testing.T) {
	registry := NewRegistry()
	registry.Register("m1", NewTemplateMacro("m1", []string{"e"}, parseOne(t, "(m2 (unquote e))")))
	registry.Register("m2", NewTemplateMacro("m2", []string{"e"}, parseOne(t, "(not (unquote e))")))
	//
	expander := NewExpander(registry, DefaultConfig())
	//
	call := quoteString(t, "(m1 z)", NewBindings())
	z := call.AsForm().Get(0).AsIdentifier()
	//
	expanded, err := expander.Expand(call)
	require.NoError(t, err)
	assert.Equal(t, "(not z)", expanded.String(false))
	assert.True(t, z.SameAs(expanded.AsForm().Get(0).AsIdentifier()))
}

// Macro calls nested within arguments of other forms are found too.
func TestExpand_NestedCall(t *testing.T) {
	registry := NewRegistry()
	registry.Register("twice", NewTemplateMacro("twice", []string{"e"},
		parseOne(t, "(+ (unquote e) (unquote e))")))
	//
	expander := NewExpander(registry, DefaultConfig())
	//
	call := quoteString(t, "(f (twice 2))", NewBindings())
	expanded, err := expander.Expand(call)
	//
	require.NoError(t, err)
	assert.Equal(t, "(f (+ 2 2))", expanded.String(false))
}

// ============================================================================
// Termination
// ============================================================================

// A self-recursive macro with no termination condition must fail rather than
// hang.
func TestExpand_DepthExceeded(t *testing.T) {
	registry := NewRegistry()
	registry.Register("loop", NewTemplateMacro("loop", nil, parseOne(t, "(loop)")))
	//
	expander := NewExpander(registry, Config{MaxDepth: 8})
	//
	_, err := expander.Expand(quoteString(t, "(loop)", NewBindings()))
	//
	require.Error(t, err)
	assert.True(t, IsKind(err, ExpansionDepthExceeded))
}

// Mutually recursive macros are caught by the same guard.
func TestExpand_MutualRecursion(t *testing.T) {
	registry := NewRegistry()
	registry.Register("ping", NewTemplateMacro("ping", nil, parseOne(t, "(pong)")))
	registry.Register("pong", NewTemplateMacro("pong", nil, parseOne(t, "(ping)")))
	//
	expander := NewExpander(registry, Config{MaxDepth: 8})
	//
	_, err := expander.Expand(quoteString(t, "(ping)", NewBindings()))
	//
	require.Error(t, err)
	assert.True(t, IsKind(err, ExpansionDepthExceeded))
}

// ============================================================================
// Strict mode
// ============================================================================

func TestExpand_StrictUnboundMacro(t *testing.T) {
	expander := NewExpander(NewRegistry(), Config{Strict: true, Operators: DefaultOperators()})
	//
	_, err := expander.Expand(quoteString(t, "(frobnicate 1)", NewBindings()))
	//
	require.Error(t, err)
	assert.True(t, IsKind(err, UnboundMacro))
}

func TestExpand_StrictKnownOperator(t *testing.T) {
	expander := NewExpander(NewRegistry(), Config{Strict: true, Operators: DefaultOperators()})
	//
	expanded, err := expander.Expand(quoteString(t, "(if x 1 2)", NewBindings()))
	//
	require.NoError(t, err)
	assert.Equal(t, "(if x 1 2)", expanded.String(false))
}

func TestExpand_LenientUnknownHead(t *testing.T) {
	expander := NewExpander(NewRegistry(), DefaultConfig())
	//
	expanded, err := expander.Expand(quoteString(t, "(frobnicate 1)", NewBindings()))
	//
	require.NoError(t, err)
	assert.Equal(t, "(frobnicate 1)", expanded.String(false))
}

// ============================================================================
// Arity
// ============================================================================

func TestExpand_ArityMismatch(t *testing.T) {
	registry := NewRegistry()
	registry.Register("m", NewTemplateMacro("m", []string{"a", "b"}, parseOne(t, "(+ (unquote a) (unquote b))")))
	//
	expander := NewExpander(registry, DefaultConfig())
	//
	_, err := expander.Expand(quoteString(t, "(m 1)", NewBindings()))
	//
	require.Error(t, err)
	assert.True(t, IsKind(err, ArityMismatch))
}

// A variadic macro binds its trailing parameter to the remaining arguments.
func TestExpand_Variadic(t *testing.T) {
	registry := NewRegistry()
	registry.Register("prepend", NewTemplateMacro("prepend", []string{"e", "es..."},
		parseOne(t, "[(unquote e) (unquote-splicing es)]")))
	//
	expander := NewExpander(registry, DefaultConfig())
	//
	expanded, err := expander.Expand(quoteString(t, "(prepend 0 1 2 3)", NewBindings()))
	//
	require.NoError(t, err)
	assert.Equal(t, "[0 1 2 3]", expanded.String(false))
}
