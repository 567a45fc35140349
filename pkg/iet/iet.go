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

// Package iet models offloadable iteration trees: nests of loop levels, each
// iterating a dimension, enclosing a body of assignments.
package iet

import "github.com/gridfront/stencilbridge/pkg/expr"

// Direction indicates the traversal direction of an iteration.
type Direction int

const (
	// Any indicates an iteration without a meaningful traversal direction.
	Any Direction = iota
	// Forward iterates from the first point towards the last.
	Forward
	// Backward iterates from the last point towards the first.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "any"
	}
}

// ============================================================================
// Iteration
// ============================================================================

// Iteration is a single loop level, iterating the points of one dimension.
type Iteration struct {
	// Dim is the dimension being iterated.
	Dim *expr.Dimension
	// Direction of traversal.
	Direction Direction
	// Sequential indicates the iteration cannot be parallelised.
	Sequential bool
	// Statically known traversal extent, or nil.
	extent *int64
}

// NewIteration constructs a loop level whose extent is not statically known.
func NewIteration(dim *expr.Dimension, direction Direction, sequential bool) *Iteration {
	return &Iteration{Dim: dim, Direction: direction, Sequential: sequential}
}

// NewBoundedIteration constructs a loop level with a statically known
// traversal extent.
func NewBoundedIteration(dim *expr.Dimension, direction Direction, sequential bool,
	extent int64) *Iteration {
	return &Iteration{Dim: dim, Direction: direction, Sequential: sequential, extent: &extent}
}

// IsSub checks whether this level iterates a sub-region of a parent axis.
func (i *Iteration) IsSub() bool { return i.Dim.IsSub() }

// Extent returns the traversal extent of this level, when statically known.
func (i *Iteration) Extent() (int64, bool) {
	if i.extent == nil {
		return 0, false
	}
	//
	return *i.extent, true
}

// ============================================================================
// Tree
// ============================================================================

// Tree is one offloadable iteration tree: the loop levels from outermost to
// innermost, plus the assignments appearing in the body.
type Tree struct {
	levels []*Iteration
	body   []*expr.Equality
}

// NewTree constructs a tree from the given levels (outermost first) and body.
func NewTree(levels []*Iteration, body ...*expr.Equality) *Tree {
	return &Tree{levels, body}
}

// Iterations returns the loop levels of this tree, outermost first.
func (t *Tree) Iterations() []*Iteration { return t.levels }

// Expressions returns all top-level assignments within this tree, in
// syntactic order.
func (t *Tree) Expressions() []*expr.Equality { return t.body }
