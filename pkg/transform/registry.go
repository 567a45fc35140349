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
package transform

import (
	"github.com/gridfront/stencilbridge/pkg/expr"
	"github.com/gridfront/stencilbridge/pkg/yast"
)

// Registry tracks the target-side state built up during one translation pass:
// the grids created for array and constant functions, and the nodes bound to
// scalar temporaries.  A registry is scoped to a single pass over a single
// solution and is never shared between passes.
type Registry struct {
	grids map[*expr.Function]*yast.Grid
	bound map[*expr.Function]yast.Node
	// Creation order, for deterministic inspection.
	order []*expr.Function
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		grids: make(map[*expr.Function]*yast.Grid),
		bound: make(map[*expr.Function]yast.Node),
	}
}

// Grid returns the grid created for the given function, if any.
func (r *Registry) Grid(fn *expr.Function) (*yast.Grid, bool) {
	g, ok := r.grids[fn]
	return g, ok
}

// PutGrid records the grid created for the given function.
func (r *Registry) PutGrid(fn *expr.Function, g *yast.Grid) {
	r.grids[fn] = g
	r.order = append(r.order, fn)
}

// Binding returns the node bound to the given scalar temporary, if any.
func (r *Registry) Binding(fn *expr.Function) (yast.Node, bool) {
	n, ok := r.bound[fn]
	return n, ok
}

// Bind records the node bound to the given scalar temporary.
func (r *Registry) Bind(fn *expr.Function, n yast.Node) {
	r.bound[fn] = n
}

// Functions returns the functions for which grids were created, in creation
// order.
func (r *Registry) Functions() []*expr.Function { return r.order }
