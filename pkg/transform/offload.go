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

// Package transform translates symbolic finite-difference equations into the
// AST consumed by the external stencil compiler.  Offload drives a whole
// batch of iteration trees; Translate converts a single expression.
//
// Flow dependencies are threaded strictly between consecutive equations in
// emission order, which over-approximates the true data dependencies.
// Spotting supergroups of independent equations would relax this, but would
// also change the scheduling the target compiler arrives at, so the strict
// chain is kept deliberately.
package transform

import (
	"slices"

	"github.com/gridfront/stencilbridge/pkg/expr"
	"github.com/gridfront/stencilbridge/pkg/iet"
	"github.com/gridfront/stencilbridge/pkg/yast"
	log "github.com/sirupsen/logrus"
)

// A guarded expression: one assignment together with the conditions collected
// from its enclosing sub-region iterations, conjoined before attachment.
type guarded struct {
	expr  *expr.Equality
	conds []yast.Node
}

// Offload populates a compiler solution with the expressions found in the
// given iteration trees, creating the necessary grids along the way.  Guard
// conditions are synthesised for iterations restricted to sub-regions of a
// parent axis, and sequential flow dependencies are threaded between the
// emitted equations.  The returned registry maps source functions to the
// grids created for them.
func Offload(trees []*iet.Tree, soln *yast.Solution) (*Registry, error) {
	reg := NewRegistry()
	// Ordering between equations is managed here, not inferred by the target
	// compiler.
	soln.SetDependencyCheckerEnabled(false)
	//
	var processed []*yast.Equation
	//
	for _, tree := range trees {
		emitted, err := offloadTree(tree, soln, reg)
		if err != nil {
			return nil, err
		}
		//
		for _, eq := range emitted {
			soln.AddEquation(eq)
		}
		//
		processed = append(processed, emitted...)
	}
	// Thread flow dependencies through the emitted equations, in emission
	// order.  Supergroups of independent equations could be spotted here
	// instead; see the package documentation.
	for i := 0; i+1 < len(processed); i++ {
		soln.AddFlowDependency(processed[i+1], processed[i])
	}
	//
	log.Debugf("offloaded %d equations over %d grids", len(processed), len(soln.Grids()))
	//
	return reg, nil
}

func offloadTree(tree *iet.Tree, soln *yast.Solution, reg *Registry) ([]*yast.Equation, error) {
	// One (expression, conditions) pair per assignment in the tree.  The
	// pair list grows when an iteration with dynamically known bounds is
	// unwound.
	pairs := make([]guarded, 0, len(tree.Expressions()))
	for _, e := range tree.Expressions() {
		pairs = append(pairs, guarded{e, nil})
	}
	//
	for _, level := range tree.Iterations() {
		if !level.IsSub() {
			continue
		}
		//
		var err error
		if pairs, err = synthesize(level, pairs); err != nil {
			return nil, err
		}
	}
	//
	return emitAll(pairs, soln, reg)
}

// ============================================================================
// Condition synthesis
// ============================================================================

// Synthesise boundary-inclusion conditions for one sub-region iteration,
// extending the condition list of every pair.
func synthesize(level *iet.Iteration, pairs []guarded) ([]guarded, error) {
	ydim := yast.DomainIndex(level.Dim.Root().Name())
	// Are the extremes statically known?
	if lower, upper, ok := level.Dim.StaticOffsets(); ok {
		// Yes: the sub-region is a fixed band inside the parent domain, so a
		// pair of comparisons against the domain edges suffices.
		first := yast.AddNode(yast.FirstDomainIndex(ydim), yast.ConstNumber(float64(lower)))
		last := yast.AddNode(yast.LastDomainIndex(ydim), yast.ConstNumber(float64(upper)))
		//
		for i := range pairs {
			pairs[i].conds = append(pairs[i].conds,
				yast.NotLessThanNode(ydim, first),
				yast.NotGreaterThanNode(ydim, last))
		}
		//
		return pairs, nil
	}
	// No: the band is only dynamically known.  A sequential iteration with a
	// statically known extent can still be unwound, one replica per offset.
	if level.Sequential {
		return unwind(level, ydim, pairs)
	}
	// The target model cannot express parallel iterations over
	// sub-dimensions with statically unknown extents.
	return nil, unsupportedf("parallel iteration over sub-dimension %s with unknown extent",
		level.Dim.Name())
}

// Unwind a sequential sub-region iteration: each pair is replicated once per
// offset within the extent, carrying an equality condition pinning the parent
// index to that offset from the relevant domain edge.
func unwind(level *iet.Iteration, ydim yast.Node, pairs []guarded) ([]guarded, error) {
	extent, ok := level.Extent()
	if !ok {
		return nil, unsupportedf("iteration over sub-dimension %s has unknown extent",
			level.Dim.Name())
	}
	//
	var (
		edge    yast.Node
		offsets []int64
	)
	//
	switch level.Direction {
	case iet.Backward:
		// Count backward off the first domain index.
		edge = yast.FirstDomainIndex(ydim)
		for r := extent - 1; r >= 0; r-- {
			offsets = append(offsets, r)
		}
	case iet.Forward:
		// Count forward up to the last domain index.
		edge = yast.LastDomainIndex(ydim)
		for r := -extent + 1; r <= 0; r++ {
			offsets = append(offsets, r)
		}
	default:
		return nil, unsupportedf("iteration over sub-dimension %s has no direction",
			level.Dim.Name())
	}
	//
	unwound := make([]guarded, 0, len(pairs)*len(offsets))
	//
	for _, pair := range pairs {
		for _, r := range offsets {
			point := yast.AddNode(edge, yast.ConstNumber(float64(r)))
			conds := append(slices.Clone(pair.conds), yast.EqualsNode(ydim, point))
			unwound = append(unwound, guarded{pair.expr, conds})
		}
	}
	//
	return unwound, nil
}

// ============================================================================
// Emission
// ============================================================================

// Translate every pair, attach its conjoined guard, and collect the emitted
// equations in order.  Local bindings emit nothing.
func emitAll(pairs []guarded, soln *yast.Solution, reg *Registry) ([]*yast.Equation, error) {
	var emitted []*yast.Equation
	//
	for _, pair := range pairs {
		outcome, err := Translate(pair.expr, soln, reg)
		//
		if err != nil {
			return nil, err
		} else if outcome.Bound {
			continue
		}
		//
		eq, ok := outcome.Node.(*yast.Equation)
		if !ok {
			return nil, invariantf("top-level expression %s is not an equation", pair.expr)
		}
		//
		if len(pair.conds) > 0 {
			cond := pair.conds[0]
			for _, c := range pair.conds[1:] {
				cond = yast.AndNode(cond, c)
			}
			//
			eq.SetCond(cond)
		}
		//
		emitted = append(emitted, eq)
	}
	//
	return emitted, nil
}
