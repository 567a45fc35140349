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
	"errors"
	"testing"

	"github.com/gridfront/stencilbridge/pkg/expr"
	"github.com/gridfront/stencilbridge/pkg/yast"
)

// ============================================================================
// Constants
// ============================================================================

func Test_Translate_1(t *testing.T) {
	f := newFixture()
	f.CheckLisp(t, expr.NewInteger(42), "42")
}

func Test_Translate_2(t *testing.T) {
	f := newFixture()
	f.CheckLisp(t, expr.NewInteger(-7), "-7")
}

func Test_Translate_3(t *testing.T) {
	f := newFixture()
	f.CheckLisp(t, expr.NewFloat(0.5), "0.5")
}

func Test_Translate_4(t *testing.T) {
	f := newFixture()
	f.CheckLisp(t, expr.NewRational(1, 4), "0.25")
}

// ============================================================================
// Sums and products
// ============================================================================

func Test_Translate_5(t *testing.T) {
	// Three arguments fold into two right-associated binary nodes.
	f := newFixture()
	e := expr.NewAdd(expr.NewInteger(1), expr.NewInteger(2), expr.NewInteger(3))
	f.CheckLisp(t, e, "(+ 1 (+ 2 3))")
}

func Test_Translate_6(t *testing.T) {
	// A single argument is returned without a binary wrapper.
	f := newFixture()
	f.CheckLisp(t, expr.NewAdd(expr.NewInteger(1)), "1")
}

func Test_Translate_7(t *testing.T) {
	f := newFixture()
	e := expr.NewMul(expr.NewInteger(2), expr.NewInteger(3), expr.NewInteger(4),
		expr.NewInteger(5))
	f.CheckLisp(t, e, "(* 2 (* 3 (* 4 5)))")
}

// ============================================================================
// Powers
// ============================================================================

func Test_Translate_8(t *testing.T) {
	// Exponent three yields two multiply nodes.
	f := newFixture()
	f.CheckLisp(t, expr.NewPow(f.x.Symbol(), expr.NewInteger(3)), "(* x (* x x))")
}

func Test_Translate_9(t *testing.T) {
	f := newFixture()
	f.CheckLisp(t, expr.NewPow(f.x.Symbol(), expr.NewInteger(1)), "x")
}

func Test_Translate_10(t *testing.T) {
	f := newFixture()
	f.CheckLisp(t, expr.NewPow(f.x.Symbol(), expr.NewInteger(-1)), "(/ 1 x)")
}

func Test_Translate_11(t *testing.T) {
	f := newFixture()
	f.CheckLisp(t, expr.NewPow(f.x.Symbol(), expr.NewInteger(-2)), "(/ 1 (* x x))")
}

func Test_Translate_12(t *testing.T) {
	// Zero exponent normalises to the constant one.
	f := newFixture()
	f.CheckLisp(t, expr.NewPow(f.x.Symbol(), expr.NewInteger(0)), "1")
}

func Test_Translate_13(t *testing.T) {
	// Non-integer exponents have no target equivalent.
	f := newFixture()
	f.CheckUnsupported(t, expr.NewPow(f.x.Symbol(), expr.NewFloat(0.5)))
}

// ============================================================================
// Symbols
// ============================================================================

func Test_Translate_14(t *testing.T) {
	// A scalar constant becomes a zero-dimensional grid on first use.
	f := newFixture()
	f.CheckLisp(t, expr.NewSymbol(f.c), "(c)")
	//
	g, ok := f.reg.Grid(f.c)
	if !ok || !g.IsScalar() {
		t.Errorf("expected scalar grid for constant c")
	}
	// Second reference reuses the grid rather than recreating it.
	f.CheckLisp(t, expr.NewSymbol(f.c), "(c)")
}

func Test_Translate_15(t *testing.T) {
	f := newFixture()
	//
	if n := f.Translate(t, f.time.Symbol()); !yast.IsStepIndex(n) {
		t.Errorf("expected step index for %s, got %s", f.time.Name(), n)
	}
	//
	if n := f.Translate(t, f.x.Symbol()); !yast.IsDomainIndex(n) {
		t.Errorf("expected domain index for %s, got %s", f.x.Name(), n)
	}
	//
	if n := f.Translate(t, f.k.Symbol()); !yast.IsMiscIndex(n) {
		t.Errorf("expected misc index for %s, got %s", f.k.Name(), n)
	}
}

func Test_Translate_16(t *testing.T) {
	// A temporary referenced before its binding is an invariant violation.
	f := newFixture()
	r0 := expr.NewScalar("r0")
	//
	_, err := Translate(expr.NewSymbol(r0), f.soln, f.reg)
	checkErrorIs(t, err, ErrInvariant)
}

func Test_Translate_17(t *testing.T) {
	// Binding then referencing substitutes the bound node by value.
	f := newFixture()
	r0 := expr.NewScalar("r0")
	//
	outcome, err := Translate(expr.NewEquality(expr.NewSymbol(r0), expr.NewFloat(2.5)),
		f.soln, f.reg)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	} else if !outcome.Bound {
		t.Fatalf("expected binding outcome, got %s", outcome.Node)
	}
	//
	f.CheckLisp(t, expr.NewSymbol(r0), "2.5")
}

func Test_Translate_18(t *testing.T) {
	// Re-binding the same temporary is an invariant violation.
	f := newFixture()
	r0 := expr.NewScalar("r0")
	bind := expr.NewEquality(expr.NewSymbol(r0), expr.NewFloat(2.5))
	//
	if _, err := Translate(bind, f.soln, f.reg); err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	//
	_, err := Translate(bind, f.soln, f.reg)
	checkErrorIs(t, err, ErrInvariant)
}

// ============================================================================
// Indexed accesses
// ============================================================================

func Test_Translate_19(t *testing.T) {
	f := newFixture()
	e := expr.NewIndexed(f.u,
		expr.NewAdd(f.time.Symbol(), expr.NewInteger(1)), f.x.Symbol())
	f.CheckLisp(t, e, "(u (+ t 1) x)")
	// The grid was created with the array's declared axis list.
	g, ok := f.reg.Grid(f.u)
	if !ok {
		t.Fatalf("expected grid for array u")
	}
	//
	if axes := g.Axes(); len(axes) != 2 ||
		!yast.IsStepIndex(axes[0]) || !yast.IsDomainIndex(axes[1]) {
		t.Errorf("unexpected axes for grid u")
	}
}

func Test_Translate_20(t *testing.T) {
	// A lowered index is replaced by its untransformed origin.
	f := newFixture()
	xl := expr.NewLoweredDimension("xl", f.x,
		expr.NewAdd(f.x.Symbol(), expr.NewInteger(2)))
	//
	e := expr.NewIndexed(f.u, f.time.Symbol(), xl.Symbol())
	f.CheckLisp(t, e, "(u t (+ x 2))")
}

func Test_Translate_21(t *testing.T) {
	// Pure integer indices arise along misc dimensions.
	f := newFixture()
	f.CheckLisp(t, expr.NewIndexed(f.w, expr.NewInteger(2)), "(w 2)")
}

func Test_Translate_22(t *testing.T) {
	// Sub-dimension indices resolve to their top-level parent dimension.
	f := newFixture()
	zero := int64(0)
	xi := expr.NewSubDimension("xi", f.x, &zero, &zero)
	//
	e := expr.NewIndexed(f.u, f.time.Symbol(), xi.Symbol())
	f.CheckLisp(t, e, "(u t x)")
	//
	e = expr.NewIndexed(f.u, f.time.Symbol(),
		expr.NewAdd(xi.Symbol(), expr.NewInteger(-1)))
	f.CheckLisp(t, e, "(u t (+ x -1))")
}

func Test_Translate_23(t *testing.T) {
	// Non-affine indices cannot be expressed as grid accesses.
	f := newFixture()
	e := expr.NewIndexed(f.u, f.time.Symbol(),
		expr.NewMul(expr.NewInteger(2), f.x.Symbol()))
	f.CheckUnsupported(t, e)
}

// ============================================================================
// Equalities
// ============================================================================

func Test_Translate_24(t *testing.T) {
	f := newFixture()
	e := expr.NewEquality(
		expr.NewIndexed(f.u, expr.NewAdd(f.time.Symbol(), expr.NewInteger(1)), f.x.Symbol()),
		expr.NewIndexed(f.u, f.time.Symbol(), f.x.Symbol()))
	f.CheckLisp(t, e, "(= (u (+ t 1) x) (u t x))")
}

// ============================================================================
// Helpers
// ============================================================================

// fixture bundles a fresh solution, registry and a small set of declared
// dimensions and functions shared across the tests.
type fixture struct {
	soln *yast.Solution
	reg  *Registry
	//
	time *expr.Dimension
	x    *expr.Dimension
	y    *expr.Dimension
	k    *expr.Dimension
	//
	u *expr.Function // array over (time, x)
	w *expr.Function // array over (k)
	c *expr.Function // scalar constant
}

func newFixture() *fixture {
	f := &fixture{
		soln: yast.NewSolution("test"),
		reg:  NewRegistry(),
		time: expr.NewDimension("t", expr.TimeAxis),
		x:    expr.NewDimension("x", expr.SpaceAxis),
		y:    expr.NewDimension("y", expr.SpaceAxis),
		k:    expr.NewDimension("k", expr.MiscAxis),
	}
	//
	f.u = expr.NewArray("u", f.time, f.x)
	f.w = expr.NewArray("w", f.k)
	f.c = expr.NewConstant("c")
	//
	return f
}

// Translate an expression, failing the test on error or a binding outcome.
func (f *fixture) Translate(t *testing.T, e expr.Expr) yast.Node {
	t.Helper()

	outcome, err := Translate(e, f.soln, f.reg)
	if err != nil {
		t.Fatalf("translating %s failed: %v", e, err)
	} else if outcome.Bound {
		t.Fatalf("translating %s produced no node", e)
	}

	return outcome.Node
}

// CheckLisp translates an expression and checks the rendered result.
func (f *fixture) CheckLisp(t *testing.T, e expr.Expr, want string) {
	t.Helper()

	if got := yast.Lisp(f.Translate(t, e)); got != want {
		t.Errorf("translating %s: expected %s, got %s", e, want, got)
	}
}

// CheckUnsupported checks that translating an expression fails with
// ErrUnsupported.
func (f *fixture) CheckUnsupported(t *testing.T, e expr.Expr) {
	t.Helper()

	_, err := Translate(e, f.soln, f.reg)
	checkErrorIs(t, err, ErrUnsupported)
}

func checkErrorIs(t *testing.T, err, target error) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %v, got no error", target)
	} else if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
