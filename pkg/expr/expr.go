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
package expr

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Expr is a node in an immutable symbolic expression tree, as produced by the
// host solver framework.  All dispatch is by type switch over the concrete
// node kinds below.
type Expr interface {
	// String generates an s-expression style rendering of this node.
	String() string
}

// ============================================================================
// Integer
// ============================================================================

// Integer represents an exact integer constant.
type Integer struct{ Value int64 }

// NewInteger constructs an integer constant.
func NewInteger(value int64) *Integer { return &Integer{value} }

func (p *Integer) String() string { return strconv.FormatInt(p.Value, 10) }

// ============================================================================
// Float
// ============================================================================

// Float represents a floating-point constant.
type Float struct{ Value float64 }

// NewFloat constructs a floating-point constant.
func NewFloat(value float64) *Float { return &Float{value} }

func (p *Float) String() string { return strconv.FormatFloat(p.Value, 'g', -1, 64) }

// ============================================================================
// Rational
// ============================================================================

// Rational represents an exact rational constant, such as arises from
// finite-difference weights (e.g. 1/12).
type Rational struct{ Value *big.Rat }

// NewRational constructs a rational constant from a numerator and denominator.
func NewRational(num, den int64) *Rational {
	return &Rational{big.NewRat(num, den)}
}

func (p *Rational) String() string { return p.Value.RatString() }

// ============================================================================
// Symbol
// ============================================================================

// Symbol represents a bare reference to a function placeholder: a scalar
// constant, a loop dimension, or a previously computed temporary.
type Symbol struct{ Fn *Function }

// NewSymbol constructs a symbol referencing the given function.
func NewSymbol(fn *Function) *Symbol { return &Symbol{fn} }

func (p *Symbol) String() string { return p.Fn.Name }

// ============================================================================
// Indexed
// ============================================================================

// Indexed represents an array access, with one index expression per declared
// axis of the underlying array function.
type Indexed struct {
	Fn      *Function
	Indices []Expr
}

// NewIndexed constructs an access into the given array function.
func NewIndexed(fn *Function, indices ...Expr) *Indexed {
	if len(indices) != len(fn.Axes) {
		panic(fmt.Sprintf("array %s indexed with %d of %d indices",
			fn.Name, len(indices), len(fn.Axes)))
	}
	//
	return &Indexed{fn, indices}
}

func (p *Indexed) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(idx ")
	builder.WriteString(p.Fn.Name)
	//
	for _, ith := range p.Indices {
		builder.WriteString(" ")
		builder.WriteString(ith.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ============================================================================
// Add
// ============================================================================

// Add represents the sum of one or more expressions.
type Add struct{ Args []Expr }

// NewAdd constructs a sum of the given arguments.
func NewAdd(args ...Expr) *Add {
	if len(args) == 0 {
		panic("empty summation")
	}
	//
	return &Add{args}
}

func (p *Add) String() string { return naryString("+", p.Args) }

// ============================================================================
// Mul
// ============================================================================

// Mul represents the product of one or more expressions.
type Mul struct{ Args []Expr }

// NewMul constructs a product of the given arguments.
func NewMul(args ...Expr) *Mul {
	if len(args) == 0 {
		panic("empty product")
	}
	//
	return &Mul{args}
}

func (p *Mul) String() string { return naryString("*", p.Args) }

// ============================================================================
// Pow
// ============================================================================

// Pow represents a base raised to an exponent.
type Pow struct {
	Base     Expr
	Exponent Expr
}

// NewPow constructs a power expression.
func NewPow(base, exponent Expr) *Pow { return &Pow{base, exponent} }

// AsNumerDenom decomposes this power into a numerator / denominator pair.  A
// power with a negative integer exponent becomes 1 over the positive power;
// anything else is the expression itself over 1.
func (p *Pow) AsNumerDenom() (Expr, Expr) {
	if e, ok := p.Exponent.(*Integer); ok && e.Value < 0 {
		return NewInteger(1), NewPow(p.Base, NewInteger(-e.Value))
	}
	//
	return p, NewInteger(1)
}

func (p *Pow) String() string {
	return fmt.Sprintf("(^ %s %s)", p.Base, p.Exponent)
}

// ============================================================================
// Equality
// ============================================================================

// Equality represents an assignment of a right-hand side to a left-hand side.
type Equality struct {
	Lhs Expr
	Rhs Expr
}

// NewEquality constructs an assignment.
func NewEquality(lhs, rhs Expr) *Equality { return &Equality{lhs, rhs} }

func (p *Equality) String() string {
	return fmt.Sprintf("(= %s %s)", p.Lhs, p.Rhs)
}

// ============================================================================
// Helpers
// ============================================================================

func naryString(op string, args []Expr) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(op)
	//
	for _, ith := range args {
		builder.WriteString(" ")
		builder.WriteString(ith.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
