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

// Renamer implements hygiene for a single macro invocation.  Identifiers
// whose scope was minted after the mark (i.e. during the macro's own internal
// quotation) are renamed to globally fresh names, memoised per (name, scope)
// pair so that all occurrences of one internal binding share one fresh name.
// Identifiers which arrived from the call site (scope at or below the mark)
// keep their identity, as do raw identifiers.
//
// Form heads which are identifiers are never renamed: call heads resolve by
// textual name alone against whatever scope is current at evaluation time.
// This means a macro calling a helper function by bare name can be redirected
// by a call site which defines a function of the same name.  That behaviour
// is deliberate and must be preserved; hygiene here protects variable
// bindings only.
type renamer struct {
	// Scopes minted after this mark are internal to the invocation.
	mark ast.Scope
	// Source of globally fresh names.
	gensym func(string) string
	// Memoised renamings.
	renames map[renameKey]string
	// Names already present in the tree, or already generated.  Fresh names
	// are retried until they avoid this set, since user code may legitimately
	// contain names of the same shape the gensym produces.
	used map[string]bool
}

type renameKey struct {
	name  string
	scope ast.Scope
}

func newRenamer(tree ast.Node, mark ast.Scope, gensym func(string) string) *renamer {
	p := &renamer{
		mark:    mark,
		gensym:  gensym,
		renames: make(map[renameKey]string),
		used:    make(map[string]bool),
	}
	// Seed the collision set with every name visible in the tree.
	collectNames(tree, p.used)
	//
	return p
}

func (p *renamer) rename(node ast.Node) (ast.Node, error) {
	switch t := node.(type) {
	case *ast.Literal:
		return node, nil
	case *ast.Identifier:
		return p.renameIdentifier(t)
	case *ast.Form:
		return p.renameForm(t)
	default:
		// Splices never survive quotation.
		panic("unreachable")
	}
}

func (p *renamer) renameIdentifier(id *ast.Identifier) (ast.Node, error) {
	// Raw identifiers resolve by name alone; call site identifiers keep their
	// identity.
	if id.IsRaw() || id.Scope <= p.mark {
		return id, nil
	}
	//
	key := renameKey{id.Name, id.Scope}
	//
	if fresh, ok := p.renames[key]; ok {
		return ast.NewIdentifier(fresh, id.Scope), nil
	}
	//
	fresh := p.gensym(id.Name)
	// Retry on collision with a name already visible in the tree.  The gensym
	// counter is monotonic, so each used name can collide at most once;
	// running out of retries means the gensym stopped producing fresh names.
	for retries := len(p.used); p.used[fresh]; retries-- {
		if retries <= 0 {
			return nil, errorf(DuplicateBindingCollision, "fresh name %s already in use", fresh)
		}
		//
		fresh = p.gensym(id.Name)
	}
	//
	p.used[fresh] = true
	p.renames[key] = fresh
	//
	return ast.NewIdentifier(fresh, id.Scope), nil
}

func (p *renamer) renameForm(form *ast.Form) (ast.Node, error) {
	var (
		head ast.Node = form.Head
		err  error
	)
	// Identifier heads are left untouched (see above); anything else is
	// renamed as usual.
	if form.Head.AsIdentifier() == nil {
		if head, err = p.rename(form.Head); err != nil {
			return nil, err
		}
	}
	//
	args := make([]ast.Node, len(form.Args))
	//
	for i, arg := range form.Args {
		if args[i], err = p.rename(arg); err != nil {
			return nil, err
		}
	}
	//
	return ast.NewForm(head, args), nil
}

// Collect the names of all identifiers (including heads) within a tree.
func collectNames(node ast.Node, names map[string]bool) {
	switch t := node.(type) {
	case *ast.Literal:
		// nothing
	case *ast.Identifier:
		names[t.Name] = true
	case *ast.Form:
		collectNames(t.Head, names)
		//
		for _, arg := range t.Args {
			collectNames(arg, names)
		}
	default:
		panic("unreachable")
	}
}
