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

	"github.com/consensys/go-macro/pkg/macro"
	"github.com/consensys/go-macro/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] source_file(s)",
	Short: "expand all macro invocations in the given source files.",
	Long: `Parse the given source files, register any macro definitions
	encountered and expand all remaining toplevel expressions until no
	macro calls remain.  The fully expanded expressions are printed on
	stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		//
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		config := macro.Config{
			Strict:    GetFlag(cmd, "strict"),
			MaxDepth:  GetUint(cmd, "depth"),
			Operators: macro.DefaultOperators(),
		}
		marked := GetFlag(cmd, "marked")
		formatter := newFormatter(textWidth(GetUint(cmd, "textwidth")))
		// Read in source files
		files, err := source.ReadFiles(args...)
		//
		if err != nil {
			log.Fatal(err)
		}
		// Parse and register macros
		registry := macro.NewRegistry()
		exprs, errs := macro.ParseSourceFiles(files, registry)
		//
		if len(errs) > 0 {
			reportSyntaxErrors(errs)
		}
		// Expand each toplevel expression in turn.
		expander := macro.NewExpander(registry, config)
		//
		for _, e := range exprs {
			expanded, err := expander.Expand(e)
			//
			if err != nil {
				log.Fatal(err)
			}
			//
			fmt.Print(formatter.Format(macro.ToSExp(expanded, marked)))
		}
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().Bool("marked", false, "annotate identifiers with their scopes")
	expandCmd.Flags().Uint("textwidth", 0, "set output width (defaults to terminal width)")
}
