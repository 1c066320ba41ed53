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
package sexp

import "strings"

// Amount of whitespace written per indentation level.
const indentUnit = "   "

// FormattedText accumulates pretty printed output line by line, tracking the
// indentation at which freshly started lines begin.
type FormattedText struct {
	// Indentation applied to the next line started.
	indent int
	// Completed lines, the last of which is still being written.
	lines []string
}

func (p *FormattedText) String() string {
	if len(p.lines) == 0 {
		return ""
	}
	//
	return strings.Join(p.lines, "\n") + "\n"
}

// Indent adjusts the indentation applied to subsequently started lines.
func (p *FormattedText) Indent(delta int) {
	p.indent += delta
}

// NewLine starts a fresh line at the current indentation.
func (p *FormattedText) NewLine() {
	p.lines = append(p.lines, strings.Repeat(indentUnit, max(p.indent, 0)))
}

// LineWidth returns the width of the line currently being written.
func (p *FormattedText) LineWidth() uint {
	if n := len(p.lines); n > 0 {
		return uint(len(p.lines[n-1]))
	}
	//
	return 0
}

// MaxWidth returns the width of the widest line written so far.
func (p *FormattedText) MaxWidth() uint {
	var width int
	//
	for _, line := range p.lines {
		width = max(width, len(line))
	}
	//
	return uint(width)
}

// WriteString appends a given string to the line currently being written,
// starting one if necessary.
func (p *FormattedText) WriteString(str string) {
	if n := len(p.lines); n > 0 {
		p.lines[n-1] += str
	} else {
		p.lines = append(p.lines, str)
	}
}
