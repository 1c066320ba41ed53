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
)

// Bindings map template variables to the syntax they stand for.  A variable is
// bound either to a single node (substituted by unquote) or to a sequence of
// nodes (substituted by unquote-splicing).  A given name carries at most one
// binding.
type Bindings struct {
	nodes     map[string]ast.Node
	sequences map[string][]ast.Node
}

// NewBindings constructs an (initially empty) set of bindings.
func NewBindings() *Bindings {
	return &Bindings{
		nodes:     make(map[string]ast.Node),
		sequences: make(map[string][]ast.Node),
	}
}

// Bind a given name to a single node, replacing any existing binding.
func (p *Bindings) Bind(name string, node ast.Node) {
	delete(p.sequences, name)
	p.nodes[name] = node
}

// BindSequence binds a given name to a sequence of nodes, replacing any
// existing binding.
func (p *Bindings) BindSequence(name string, nodes []ast.Node) {
	delete(p.nodes, name)
	p.sequences[name] = nodes
}

// Node returns the single node bound to a given name (if any).
func (p *Bindings) Node(name string) (ast.Node, bool) {
	node, ok := p.nodes[name]
	return node, ok
}

// Sequence returns the sequence bound to a given name (if any).
func (p *Bindings) Sequence(name string) ([]ast.Node, bool) {
	nodes, ok := p.sequences[name]
	return nodes, ok
}

// Has checks whether a given name carries any binding at all.
func (p *Bindings) Has(name string) bool {
	_, n := p.nodes[name]
	_, s := p.sequences[name]
	//
	return n || s
}
