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
package yast

import "fmt"

// Grid is a target-side named array declaration with a fixed axis list.  A
// grid with zero axes represents a scalar.
type Grid struct {
	name string
	axes []Node
}

// Name returns the name of this grid.
func (g *Grid) Name() string { return g.name }

// Axes returns the axis list fixed at creation.
func (g *Grid) Axes() []Node { return g.axes }

// IsScalar checks whether this grid has zero axes.
func (g *Grid) IsScalar() bool { return len(g.axes) == 0 }

// Point creates an access to this grid at the given indices, one per axis.
func (g *Grid) Point(indices []Node) Node {
	if len(indices) != len(g.axes) {
		panic(fmt.Sprintf("grid %s accessed with %d of %d indices",
			g.name, len(indices), len(g.axes)))
	}
	//
	return &gridPoint{g, indices}
}

// ============================================================================
// Solution
// ============================================================================

// FlowDependency is an explicit ordering edge between two target equations,
// asserting that From may only be evaluated once To has been.
type FlowDependency struct {
	From Node
	To   Node
}

// Solution is the compiler solution object being populated: the grids created
// so far, the recorded flow dependencies, and the dependency-checker toggle.
type Solution struct {
	name       string
	grids      []*Grid
	gridmap    map[string]*Grid
	equations  []*Equation
	deps       []FlowDependency
	depChecker bool
}

// NewSolution constructs an empty solution with the given name.  The target
// compiler's own dependency checker starts out enabled.
func NewSolution(name string) *Solution {
	return &Solution{
		name:       name,
		gridmap:    make(map[string]*Grid),
		depChecker: true,
	}
}

// Name returns the name of this solution.
func (s *Solution) Name() string { return s.name }

// NewGrid creates a grid with the given name and axis list.  The axis list is
// fixed for the lifetime of the grid.
func (s *Solution) NewGrid(name string, axes []Node) *Grid {
	if _, ok := s.gridmap[name]; ok {
		panic(fmt.Sprintf("grid %q already created", name))
	}
	//
	g := &Grid{name, axes}
	s.grids = append(s.grids, g)
	s.gridmap[name] = g
	//
	return g
}

// Grid looks up a previously created grid by name.
func (s *Solution) Grid(name string) (*Grid, bool) {
	g, ok := s.gridmap[name]
	return g, ok
}

// Grids returns all grids created so far, in creation order.
func (s *Solution) Grids() []*Grid { return s.grids }

// AddEquation records an equation as part of this solution.
func (s *Solution) AddEquation(eq *Equation) {
	s.equations = append(s.equations, eq)
}

// Equations returns all recorded equations, in the order added.
func (s *Solution) Equations() []*Equation { return s.equations }

// AddFlowDependency records that from may only be evaluated once to has been.
func (s *Solution) AddFlowDependency(from, to Node) {
	s.deps = append(s.deps, FlowDependency{from, to})
}

// FlowDependencies returns all recorded ordering edges.
func (s *Solution) FlowDependencies() []FlowDependency { return s.deps }

// SetDependencyCheckerEnabled toggles the target compiler's own dependency
// inference.
func (s *Solution) SetDependencyCheckerEnabled(enabled bool) {
	s.depChecker = enabled
}

// DependencyCheckerEnabled reports whether the target compiler's own
// dependency inference is enabled.
func (s *Solution) DependencyCheckerEnabled() bool { return s.depChecker }
