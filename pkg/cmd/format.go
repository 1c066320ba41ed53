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

	"github.com/consensys/go-macro/pkg/sexp"
	"github.com/consensys/go-macro/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] source_file(s)",
	Short: "pretty print the given source files without expanding them.",
	Long: `Parse the given source files and pretty print them on stdout,
	without performing any macro expansion.`,
	Run: func(cmd *cobra.Command, args []string) {
		//
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		formatter := newFormatter(textWidth(GetUint(cmd, "textwidth")))
		// Read in source files
		files, err := source.ReadFiles(args...)
		//
		if err != nil {
			log.Fatal(err)
		}
		//
		for i := range files {
			terms, _, serr := sexp.ParseAll(&files[i])
			//
			if serr != nil {
				reportSyntaxErrors([]source.SyntaxError{*serr})
			}
			//
			for _, t := range terms {
				fmt.Print(formatter.Format(t))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().Uint("textwidth", 0, "set output width (defaults to terminal width)")
}
