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
package ast

import (
	"strings"
	"sync/atomic"
)

// Scope identifies the quotation in which a given identifier was introduced.
// Two identifiers denote the same variable exactly when both their name and
// their scope match.  The zero scope is reserved for "raw" identifiers, which
// resolve by name alone (i.e. deliberately bypassing hygiene).
type Scope uint64

// Raw is the scope given to identifiers which resolve by textual name alone.
const Raw Scope = 0

// Monotonic scope counter.  Scope zero is never minted.
var scopes atomic.Uint64

// FreshScope mints a scope which is distinct from every scope minted before
// it.
func FreshScope() Scope {
	return Scope(scopes.Add(1))
}

// Mark returns the most recently minted scope.  Any scope minted after a mark
// compares strictly greater than it, which is how the expander identifies
// identifiers introduced during a given macro invocation.
func Mark() Scope {
	return Scope(scopes.Load())
}

// Node is a syntax tree produced by quotation and rewritten by expansion.  It
// is one of Literal, Identifier, Form or Splice.  Nodes are immutable once
// constructed; rewrites always build new nodes.
type Node interface {
	// AsLiteral checks whether this node is a literal and, if so, returns it.
	// Otherwise, it returns nil.
	AsLiteral() *Literal
	// AsIdentifier checks whether this node is an identifier and, if so,
	// returns it.  Otherwise, it returns nil.
	AsIdentifier() *Identifier
	// AsForm checks whether this node is a form and, if so, returns it.
	// Otherwise, it returns nil.
	AsForm() *Form
	// AsSplice checks whether this node is a splice and, if so, returns it.
	// Otherwise, it returns nil.
	AsSplice() *Splice
	// String generates a round-trippable string representation.  When marked,
	// identifiers are annotated with their scope for debugging.
	String(marked bool) string
}

// ===================================================================
// Identifier
// ===================================================================

// Identifier is a variable reference.  Its identity is the pair (Name, Scope),
// not the name alone.
type Identifier struct {
	Name  string
	Scope Scope
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Node = (*Identifier)(nil)

// NewIdentifier creates a new identifier with a given name and scope.
func NewIdentifier(name string, scope Scope) *Identifier {
	return &Identifier{name, scope}
}

// NewRawIdentifier creates an identifier which resolves by name alone.
func NewRawIdentifier(name string) *Identifier {
	return &Identifier{name, Raw}
}

// IsRaw checks whether this identifier bypasses hygiene.
func (p *Identifier) IsRaw() bool { return p.Scope == Raw }

// SameAs checks whether two identifiers denote the same variable.
func (p *Identifier) SameAs(other *Identifier) bool {
	return p.Name == other.Name && p.Scope == other.Scope
}

// AsLiteral returns nil for an identifier.
func (p *Identifier) AsLiteral() *Literal { return nil }

// AsIdentifier returns the given identifier.
func (p *Identifier) AsIdentifier() *Identifier { return p }

// AsForm returns nil for an identifier.
func (p *Identifier) AsForm() *Form { return nil }

// AsSplice returns nil for an identifier.
func (p *Identifier) AsSplice() *Splice { return nil }

func (p *Identifier) String(marked bool) string {
	if !marked {
		return p.Name
	} else if p.Scope == Raw {
		return p.Name + "#!"
	}
	//
	var builder strings.Builder
	//
	builder.WriteString(p.Name)
	builder.WriteString("#")
	builder.WriteString(scopeString(p.Scope))
	//
	return builder.String()
}

// ===================================================================
// Form
// ===================================================================

// Form is a compound expression.  The head typically names an operator,
// function or macro; the arguments are arbitrary child nodes.
type Form struct {
	Head Node
	Args []Node
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Node = (*Form)(nil)

// NewForm creates a new form with a given head and arguments.
func NewForm(head Node, args []Node) *Form {
	return &Form{head, args}
}

// Len gets the number of arguments in this form.
func (p *Form) Len() int { return len(p.Args) }

// Get the ith argument of this form.
func (p *Form) Get(i int) Node { return p.Args[i] }

// HeadName returns the textual name of the head, or false if the head is not
// an identifier.
func (p *Form) HeadName() (string, bool) {
	if id := p.Head.AsIdentifier(); id != nil {
		return id.Name, true
	}
	//
	return "", false
}

// AsLiteral returns nil for a form.
func (p *Form) AsLiteral() *Literal { return nil }

// AsIdentifier returns nil for a form.
func (p *Form) AsIdentifier() *Identifier { return nil }

// AsForm returns the given form.
func (p *Form) AsForm() *Form { return p }

// AsSplice returns nil for a form.
func (p *Form) AsSplice() *Splice { return nil }

func (p *Form) String(marked bool) string {
	var builder strings.Builder
	// Sequence forms print with their surface bracket syntax.
	if name, ok := p.HeadName(); ok && name == ArrayHead {
		builder.WriteString("[")
		//
		for i, arg := range p.Args {
			if i != 0 {
				builder.WriteString(" ")
			}

			builder.WriteString(arg.String(marked))
		}
		//
		builder.WriteString("]")
		//
		return builder.String()
	}
	//
	builder.WriteString("(")
	builder.WriteString(p.Head.String(marked))
	//
	for _, arg := range p.Args {
		builder.WriteString(" ")
		builder.WriteString(arg.String(marked))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ArrayHead is the head name given to forms constructed from the surface
// array syntax (i.e. "[e1 .. en]").
const ArrayHead = "array"

// NewArrayForm creates a form representing the surface array syntax.
func NewArrayForm(args []Node) *Form {
	return &Form{NewRawIdentifier(ArrayHead), args}
}

// ===================================================================
// Splice
// ===================================================================

// Splice wraps a sequence of nodes whose elements are inserted as individual
// siblings into the argument list of an enclosing form.  Splices only exist
// whilst the quoter is constructing a form; a fully quoted tree never contains
// one.
type Splice struct {
	Elements []Node
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Node = (*Splice)(nil)

// NewSplice creates a new splice from a given sequence of nodes.
func NewSplice(elements []Node) *Splice {
	return &Splice{elements}
}

// AsLiteral returns nil for a splice.
func (p *Splice) AsLiteral() *Literal { return nil }

// AsIdentifier returns nil for a splice.
func (p *Splice) AsIdentifier() *Identifier { return nil }

// AsForm returns nil for a splice.
func (p *Splice) AsForm() *Form { return nil }

// AsSplice returns the given splice.
func (p *Splice) AsSplice() *Splice { return p }

func (p *Splice) String(marked bool) string {
	var builder strings.Builder
	//
	builder.WriteString("(unquote-splicing")
	//
	for _, e := range p.Elements {
		builder.WriteString(" ")
		builder.WriteString(e.String(marked))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
