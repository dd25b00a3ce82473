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

	"github.com/petrel-lang/petrel/pkg/cfa"
	"github.com/petrel-lang/petrel/pkg/compiler"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] program_file(s)",
	Short: "run the stochastic control-flow analysis over program(s).",
	Long: `Label the given program(s), solve the 0-CFA constraints and report, per
label, the abstract values flowing there and whether the label is dynamic.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		// Each input file is one program; a failed compilation is reported
		// and the remaining files are still processed.
		failed := false
		//
		for _, filename := range args {
			if !analyzeFile(filename) {
				failed = true
			}
		}
		//
		if failed {
			os.Exit(2)
		}
	},
}

func analyzeFile(filename string) bool {
	program, err := ReadProgramFile(filename)
	//
	if err == nil {
		var result *compiler.Result
		//
		result, err = compiler.Compile(compiler.Config{}, program)
		//
		if err == nil {
			printAnalysis(filename, result)
			//
			return true
		}
	}
	//
	fmt.Printf("%s: %s\n", filename, err)
	//
	return false
}

func printAnalysis(filename string, result *compiler.Result) {
	fmt.Printf("%s: %d labels\n", filename, result.Labels)
	//
	for l := uint(0); l < result.Labels; l++ {
		data := result.Data[l]
		// Uninteresting labels are skipped.
		if data.Size() == 0 && !result.Marks.Test(l) {
			continue
		}
		//
		dynamic := ""
		if result.Marks.Test(l) {
			dynamic = " dynamic"
		}
		//
		fmt.Printf("%4d: %s%s\n", l, data.String(cfa.AbstractValue.String), dynamic)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
