// Copyright The Petrel Authors.
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

	"github.com/spf13/cobra"

	"github.com/petrel-lang/petrel/pkg/ast"
	"github.com/petrel-lang/petrel/pkg/compiler"
	"github.com/petrel-lang/petrel/pkg/cps"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] program_file(s)",
	Short: "compile program(s) into evaluator-ready form.",
	Long: `Compile the given program(s) into continuation-passing style with de Bruijn
indices resolved, and print the resulting term(s).`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		// A failed compilation is reported and the remaining files are
		// still processed.
		failed := false
		//
		for _, filename := range args {
			if !compileFile(filename) {
				failed = true
			}
		}
		//
		if failed {
			os.Exit(2)
		}
	},
}

func compileFile(filename string) bool {
	// Fresh names restart per program, for reproducible output.
	cps.ResetFresh()
	//
	program, err := ReadProgramFile(filename)
	//
	if err == nil {
		var result *compiler.Result
		//
		result, err = compiler.Compile(compiler.Config{}, program)
		//
		if err == nil {
			fmt.Println(ast.String(result.Program))
			//
			return true
		}
	}
	//
	fmt.Printf("%s: %s\n", filename, err)
	//
	return false
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
