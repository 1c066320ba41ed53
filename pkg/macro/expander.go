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
	"fmt"

	"github.com/consensys/go-macro/pkg/macro/ast"
	log "github.com/sirupsen/logrus"
)

// DefaultMaxDepth is the depth limit applied when a configuration gives none.
// Recursive macros are legitimate (a macro may expand into another macro
// call), but a macro which expands into itself without bound must be cut off
// rather than allowed to hang the process.
const DefaultMaxDepth uint = 256

// Config determines how an expander treats the forms it encounters.
type Config struct {
	// Strict requires every form head to resolve to either a registered macro
	// or a known operator.  Without strict mode, unknown heads are simply left
	// in place.
	Strict bool
	// MaxDepth bounds the number of nested macro expansions arising from a
	// single call site.  Zero means DefaultMaxDepth.
	MaxDepth uint
	// Operators are head names which are known not to be macros (e.g. "if").
	// Only relevant in strict mode.
	Operators []string
}

// DefaultOperators returns the operators known to the expander out of the
// box.  These cover the forms which macros typically expand into.
func DefaultOperators() []string {
	return []string{
		ast.ArrayHead, "if", "not", "and", "or", "let", "lambda", "set!", "raise", "begin",
		"+", "-", "*", "/", "=", "!=", "<", "<=", ">", ">=",
	}
}

// DefaultConfig returns a non-strict configuration with the default depth
// limit and operator set.
func DefaultConfig() Config {
	return Config{false, DefaultMaxDepth, DefaultOperators()}
}

// Expander rewrites syntax trees until no macro calls remain.  Expansion is a
// pure tree rewrite: the only state an expander carries is its registry, its
// configuration and a counter for generating fresh names.
type Expander struct {
	registry  *Registry
	config    Config
	operators map[string]bool
	gensym    uint64
}

// NewExpander constructs an expander over a given registry.
func NewExpander(registry *Registry, config Config) *Expander {
	if config.MaxDepth == 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	//
	operators := make(map[string]bool)
	//
	for _, op := range config.Operators {
		operators[op] = true
	}
	//
	return &Expander{registry, config, operators, 0}
}

// Expand a given node until no macro calls remain.  Literals and identifiers
// are returned unchanged.  A form whose head names a registered macro is
// replaced by the macro's expansion, which is first subjected to hygiene
// renaming and then expanded again (macros may expand into further macro
// calls).  Other forms simply have their children expanded.
func (p *Expander) Expand(node ast.Node) (ast.Node, error) {
	return p.expand(node, 0)
}

func (p *Expander) expand(node ast.Node, depth uint) (ast.Node, error) {
	switch t := node.(type) {
	case *ast.Literal:
		return node, nil
	case *ast.Identifier:
		return node, nil
	case *ast.Form:
		return p.expandForm(t, depth)
	default:
		// Splices never survive quotation.
		panic("unreachable")
	}
}

func (p *Expander) expandForm(form *ast.Form, depth uint) (ast.Node, error) {
	// NOTE: macro resolution is deliberately by textual name, matching how
	// call heads resolve at evaluation time.
	if name, ok := form.HeadName(); ok {
		if fn, found := p.registry.Lookup(name); found {
			return p.apply(name, fn, form.Args, depth)
		} else if p.config.Strict && !p.operators[name] {
			return nil, errorf(UnboundMacro, "%s is neither a macro nor a known operator", name)
		}
	}
	// Not a macro call, expand children.
	head, err := p.expand(form.Head, depth)
	//
	if err != nil {
		return nil, err
	}
	//
	args := make([]ast.Node, len(form.Args))
	//
	for i, arg := range form.Args {
		if args[i], err = p.expand(arg, depth); err != nil {
			return nil, err
		}
	}
	//
	return ast.NewForm(head, args), nil
}

// Apply a macro to the (unevaluated) arguments of its call site, rename
// whatever the macro introduced and keep expanding until a fixpoint.
func (p *Expander) apply(name string, fn Expansion, args []ast.Node, depth uint) (ast.Node, error) {
	if depth >= p.config.MaxDepth {
		return nil, errorf(ExpansionDepthExceeded, "expanding %s exceeded depth limit %d", name, p.config.MaxDepth)
	}
	// Scopes minted beyond this point belong to the macro's own quotation.
	mark := ast.Mark()
	//
	log.Debugf("expanding macro %s (depth %d)", name, depth)
	//
	replacement, err := fn(args)
	//
	if err != nil {
		return nil, err
	}
	// Apply hygiene
	renamed, err := newRenamer(replacement, mark, p.freshName).rename(replacement)
	//
	if err != nil {
		return nil, err
	}
	// Expansion may itself contain macro calls.
	return p.expand(renamed, depth+1)
}

// Generate a globally fresh name based on a given one.
func (p *Expander) freshName(base string) string {
	p.gensym++
	return fmt.Sprintf("%s$%d", base, p.gensym)
}
