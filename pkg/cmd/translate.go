// Copyright Gridfront Software Inc.
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
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/gridfront/stencilbridge/pkg/iet"
	"github.com/gridfront/stencilbridge/pkg/transform"
	"github.com/gridfront/stencilbridge/pkg/yast"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var translateCmd = &cobra.Command{
	Use:   "translate [flags] equation_file",
	Short: "translate a symbolic equation file into the target compiler AST.",
	Long: `Translate the symbolic equations of a given file into the target compiler's
	 AST, reporting the grids created, the equations emitted (with any
	 sub-domain guards attached) and the flow dependencies threaded between
	 them.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		if GetFlag(cmd, "trace") {
			log.SetLevel(log.TraceLevel)
		}
		//
		name := GetString(cmd, "name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		//
		soln, reg := translateFile(args[0], name)
		//
		if log.IsLevelEnabled(log.TraceLevel) {
			log.Trace(spew.Sdump(reg.Functions()))
		}
		//
		report(soln)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().StringP("name", "n", "", "name of the target solution")
	translateCmd.Flags().Bool("trace", false, "dump the grid registry after translation")
}

func translateFile(filename, name string) (*yast.Solution, *transform.Registry) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	trees, _, err := iet.Parse(string(bytes))
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(1)
	}
	//
	soln := yast.NewSolution(name)
	//
	reg, err := transform.Offload(trees, soln)
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(1)
	}
	//
	return soln, reg
}

// ============================================================================
// Reporting
// ============================================================================

func report(soln *yast.Solution) {
	width := terminalWidth()
	//
	fmt.Printf("solution %s\n", soln.Name())
	//
	for _, g := range soln.Grids() {
		var axes []string
		for _, a := range g.Axes() {
			axes = append(axes, yast.Lisp(a))
		}
		//
		printWrapped(fmt.Sprintf("grid %s (%s)", g.Name(), strings.Join(axes, " ")), width)
	}
	//
	for i, eq := range soln.Equations() {
		printWrapped(fmt.Sprintf("eq %d: %s", i, yast.Lisp(eq)), width)
		//
		if eq.Cond() != nil {
			printWrapped(fmt.Sprintf("  when %s", yast.Lisp(eq.Cond())), width)
		}
	}
	//
	for i, dep := range soln.FlowDependencies() {
		printWrapped(fmt.Sprintf("dep %d: %s after %s",
			i, yast.Lisp(dep.From), yast.Lisp(dep.To)), width)
	}
}

func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 80
	}
	//
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	//
	return width
}

// Break a long report line at spaces, indenting continuations.
func printWrapped(line string, width int) {
	indent := ""
	//
	for len(line) > width-len(indent) {
		i := strings.LastIndexByte(line[:width-len(indent)], ' ')
		if i <= 0 {
			break
		}
		//
		fmt.Printf("%s%s\n", indent, line[:i])
		line = line[i+1:]
		indent = "  "
	}
	//
	fmt.Printf("%s%s\n", indent, line)
}
