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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-macro/pkg/sexp"
	"github.com/consensys/go-macro/pkg/util/source"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, exiting if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return r
}

// GetUint gets an expected uint, exiting if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	return r
}

// Determine a suitable text width for formatting output.  When no explicit
// width is given and stdout is a terminal, the terminal width is used;
// otherwise a sensible default applies.
func textWidth(requested uint) uint {
	if requested != 0 {
		return requested
	}
	//
	if term.IsTerminal(0) {
		if width, _, err := term.GetSize(0); err == nil && width > 0 {
			return uint(width)
		}
	}
	//
	return 80
}

// Construct a formatter with the standard formatting rules for expanded
// output.
func newFormatter(width uint) *sexp.Formatter {
	formatter := sexp.NewFormatter(width)
	//
	formatter.Add(&sexp.SFormatter{Head: "if", Priority: 1})
	formatter.Add(&sexp.SFormatter{Head: "let", Priority: 1})
	formatter.Add(&sexp.LFormatter{Head: "begin", Priority: 1})
	formatter.Add(&sexp.SFormatter{Head: "defmacro", Priority: 1})
	//
	return formatter
}

// Report a set of syntax errors, highlighting the relevant line(s) of the
// original source file for each, then exit.
func reportSyntaxErrors(errs []source.SyntaxError) {
	for i := range errs {
		printSyntaxError(&errs[i])
	}
	//
	os.Exit(2)
}

func printSyntaxError(err *source.SyntaxError) {
	var (
		line   = err.FirstEnclosingLine()
		span   = err.Span()
		offset = span.Start() - line.Start()
	)
	// Column numbers count from 1.
	fmt.Printf("%s:%d:%d: %s\n", err.SourceFile().Filename(), line.Number(), offset+1, err.Message())
	fmt.Println(line.String())
	// Highlight the offending span (clipped to the enclosing line).
	width := min(span.Length(), line.Length()-offset)
	//
	fmt.Print(strings.Repeat(" ", offset))
	fmt.Println(strings.Repeat("^", max(width, 1)))
}
