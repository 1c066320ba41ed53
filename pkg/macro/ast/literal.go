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
	"fmt"
	"math/big"
	"strconv"
)

// Val is the value carried by a literal node.  It is one of Number, Text or
// Boolean.
type Val interface {
	// String generates a round-trippable rendering of this value.
	String() string
}

// Number is an arbitrary precision numeric constant.
type Number struct {
	Value big.Int
}

func (p *Number) String() string {
	return p.Value.String()
}

// Text is a string constant.
type Text struct {
	Value string
}

func (p *Text) String() string {
	return fmt.Sprintf("\"%s\"", p.Value)
}

// Boolean is a truth constant.
type Boolean struct {
	Value bool
}

func (p *Boolean) String() string {
	return strconv.FormatBool(p.Value)
}

// ===================================================================
// Literal
// ===================================================================

// Literal is an atomic constant.
type Literal struct {
	Val Val
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Node = (*Literal)(nil)

// NewNumber creates a literal node holding a given numeric constant.
func NewNumber(value *big.Int) *Literal {
	var number Number
	//
	number.Value.Set(value)
	//
	return &Literal{&number}
}

// NewText creates a literal node holding a given string constant.
func NewText(value string) *Literal {
	return &Literal{&Text{value}}
}

// NewBoolean creates a literal node holding a given truth constant.
func NewBoolean(value bool) *Literal {
	return &Literal{&Boolean{value}}
}

// AsLiteral returns the given literal.
func (p *Literal) AsLiteral() *Literal { return p }

// AsIdentifier returns nil for a literal.
func (p *Literal) AsIdentifier() *Identifier { return nil }

// AsForm returns nil for a literal.
func (p *Literal) AsForm() *Form { return nil }

// AsSplice returns nil for a literal.
func (p *Literal) AsSplice() *Splice { return nil }

func (p *Literal) String(marked bool) string {
	return p.Val.String()
}

func scopeString(scope Scope) string {
	return strconv.FormatUint(uint64(scope), 10)
}
