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
	log "github.com/sirupsen/logrus"
)

// Outcome is the result of translating one expression.  Either a target node
// was emitted, or the expression was a local binding consumed through the
// registry and nothing was emitted.
type Outcome struct {
	// Node emitted by the translation; nil when Bound.
	Node yast.Node
	// Bound indicates a local binding with no emitted node.
	Bound bool
}

func emitted(n yast.Node) Outcome { return Outcome{Node: n} }

// Translate converts a symbolic expression into an equivalent node of the
// target AST, creating grids in the given solution for array and constant
// functions on first reference.  Grid creations and temporary bindings are
// recorded in the registry, which must span all expressions of one pass.
func Translate(e expr.Expr, soln *yast.Solution, reg *Registry) (Outcome, error) {
	switch e := e.(type) {
	case *expr.Integer:
		return emitted(yast.ConstNumber(float64(e.Value))), nil
	case *expr.Float:
		return emitted(yast.ConstNumber(e.Value)), nil
	case *expr.Rational:
		value, _ := e.Value.Float64()
		return emitted(yast.ConstNumber(value)), nil
	case *expr.Symbol:
		return translateSymbol(e, soln, reg)
	case *expr.Indexed:
		return translateIndexed(e, soln, reg)
	case *expr.Add:
		return translateNary(e.Args, yast.AddNode, soln, reg)
	case *expr.Mul:
		return translateNary(e.Args, yast.MultiplyNode, soln, reg)
	case *expr.Pow:
		return translatePow(e, soln, reg)
	case *expr.Equality:
		return translateEquality(e, soln, reg)
	default:
		log.Warnf("no translation for expression %s", e)
		return Outcome{}, unsupportedf("expression %s", e)
	}
}

// Translate a sub-expression in a position requiring a node.  A local binding
// here would leave a hole in the tree under construction, hence is rejected.
func translateNode(e expr.Expr, soln *yast.Solution, reg *Registry) (yast.Node, error) {
	outcome, err := Translate(e, soln, reg)
	//
	if err != nil {
		return nil, err
	} else if outcome.Bound {
		return nil, unsupportedf("local binding %s in nested position", e)
	}
	//
	return outcome.Node, nil
}

// ============================================================================
// Symbols
// ============================================================================

func translateSymbol(e *expr.Symbol, soln *yast.Solution, reg *Registry) (Outcome, error) {
	fn := e.Fn
	//
	switch fn.Kind {
	case expr.ConstantKind:
		// Scalar constants become zero-dimensional grids, created on first
		// use.
		g, ok := reg.Grid(fn)
		if !ok {
			g = soln.NewGrid(fn.Name, nil)
			reg.PutGrid(fn, g)
		}
		//
		return emitted(g.Point(nil)), nil
	case expr.DimensionKind:
		return emitted(translateDimension(fn.Dim)), nil
	case expr.ScalarKind:
		// A temporary, which must already have been bound as the left-hand
		// side of a previous expression.  Temporaries are substituted by
		// value, not by reference.
		n, ok := reg.Binding(fn)
		if !ok {
			return Outcome{}, invariantf("temporary %s referenced before binding", fn.Name)
		}
		//
		return emitted(n), nil
	default:
		return Outcome{}, unsupportedf("bare reference to array %s", fn.Name)
	}
}

func translateDimension(d *expr.Dimension) yast.Node {
	switch d.Class {
	case expr.TimeAxis:
		return yast.StepIndex(d.Name())
	case expr.SpaceAxis:
		return yast.DomainIndex(d.Name())
	default:
		return yast.MiscIndex(d.Name())
	}
}

// ============================================================================
// Indexed accesses
// ============================================================================

func translateIndexed(e *expr.Indexed, soln *yast.Solution, reg *Registry) (Outcome, error) {
	fn := e.Fn
	// Create a grid the first time this array is encountered, with its axis
	// list fixed from the array's declared axes.
	g, ok := reg.Grid(fn)
	if !ok {
		axes := make([]yast.Node, len(fn.Axes))
		for i, d := range fn.Axes {
			axes[i] = translateDimension(d)
		}
		//
		g = soln.NewGrid(fn.Name, axes)
		reg.PutGrid(fn, g)
	}
	//
	indices := make([]yast.Node, len(e.Indices))
	//
	for i, ith := range e.Indices {
		index, err := translateIndex(ith, soln, reg)
		if err != nil {
			return Outcome{}, err
		}
		//
		indices[i] = index
	}
	//
	return emitted(g.Point(indices)), nil
}

func translateIndex(e expr.Expr, soln *yast.Solution, reg *Registry) (yast.Node, error) {
	// A lowered dimension is replaced by its untransformed origin.
	if s, ok := e.(*expr.Symbol); ok && s.Fn.Kind == expr.DimensionKind && s.Fn.Dim.IsLowered() {
		return translateNode(s.Fn.Dim.Origin, soln, reg)
	}
	// A pure integer index, as arises along misc dimensions.
	if expr.IsInteger(e) {
		return translateNode(e, soln, reg)
	}
	// Everything else must decompose into a dimension plus shift.  The
	// top-level parent dimension is always used here: the target model knows
	// nothing of derived dimensions.
	af, ok := expr.SplitAffine(e)
	if !ok {
		return nil, unsupportedf("non-affine index %s", e)
	}
	//
	index := translateDimension(af.Dim.Root())
	if af.Shift != 0 {
		index = yast.AddNode(index, yast.ConstNumber(float64(af.Shift)))
	}
	//
	return index, nil
}

// ============================================================================
// Sums and products
// ============================================================================

// Right-fold an n-ary argument list into nested binary nodes.  A single
// argument is returned as-is, without a binary wrapper.
func translateNary(args []expr.Expr, op func(yast.Node, yast.Node) yast.Node,
	soln *yast.Solution, reg *Registry) (Outcome, error) {
	head, err := translateNode(args[0], soln, reg)
	//
	if err != nil {
		return Outcome{}, err
	} else if len(args) == 1 {
		return emitted(head), nil
	}
	//
	rest, err := translateNary(args[1:], op, soln, reg)
	if err != nil {
		return Outcome{}, err
	}
	//
	return emitted(op(head, rest.Node)), nil
}

// ============================================================================
// Powers
// ============================================================================

func translatePow(e *expr.Pow, soln *yast.Solution, reg *Registry) (Outcome, error) {
	exponent, ok := e.Exponent.(*expr.Integer)
	if !ok {
		log.Warnf("non-integer power %s has no target equivalent", e)
		return Outcome{}, unsupportedf("non-integer power %s", e)
	}
	//
	switch n := exponent.Value; {
	case n < 0:
		// Negative powers become a division via rational decomposition.
		num, den := e.AsNumerDenom()
		//
		lhs, err := translateNode(num, soln, reg)
		if err != nil {
			return Outcome{}, err
		}
		//
		rhs, err := translateNode(den, soln, reg)
		if err != nil {
			return Outcome{}, err
		}
		//
		return emitted(yast.DivideNode(lhs, rhs)), nil
	case n >= 1:
		// Positive powers become repeated multiplication.
		bases := make([]expr.Expr, n)
		for i := range bases {
			bases[i] = e.Base
		}
		//
		return translateNary(bases, yast.MultiplyNode, soln, reg)
	default:
		// A zero power should have been folded away upstream.
		log.Warnf("zero power %s found during translation, setting to 1", e)
		return emitted(yast.ConstNumber(1)), nil
	}
}

// ============================================================================
// Equalities
// ============================================================================

func translateEquality(e *expr.Equality, soln *yast.Solution, reg *Registry) (Outcome, error) {
	// An assignment to a bare scalar temporary is a local binding: the
	// right-hand side is stored in the registry and consumed by later
	// references, with no equation emitted.
	if s, ok := e.Lhs.(*expr.Symbol); ok && s.Fn.Kind == expr.ScalarKind {
		if _, bound := reg.Binding(s.Fn); bound {
			return Outcome{}, invariantf("temporary %s bound twice", s.Fn.Name)
		}
		//
		rhs, err := translateNode(e.Rhs, soln, reg)
		if err != nil {
			return Outcome{}, err
		}
		//
		reg.Bind(s.Fn, rhs)
		//
		return Outcome{Bound: true}, nil
	}
	//
	lhs, err := translateNode(e.Lhs, soln, reg)
	if err != nil {
		return Outcome{}, err
	}
	//
	rhs, err := translateNode(e.Rhs, soln, reg)
	if err != nil {
		return Outcome{}, err
	}
	//
	return emitted(yast.EquationNode(lhs, rhs)), nil
}
