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

	"github.com/gridfront/stencilbridge/pkg/sexp"
)

// Env is a symbol table mapping names to declared function placeholders,
// against which textual expressions are resolved.
type Env struct {
	symbols map[string]*Function
}

// NewEnv constructs an empty symbol table.
func NewEnv() *Env {
	return &Env{symbols: make(map[string]*Function)}
}

// DeclareDimension declares a top-level dimension of the given class.
func (e *Env) DeclareDimension(name string, class AxisClass) *Dimension {
	d := NewDimension(name, class)
	e.declare(d.fn)
	//
	return d
}

// DeclareSubDimension declares a sub-dimension of a previously declared
// parent.
func (e *Env) DeclareSubDimension(name string, parent *Dimension, lower, upper *int64) *Dimension {
	d := NewSubDimension(name, parent, lower, upper)
	e.declare(d.fn)
	//
	return d
}

// DeclareConstant declares a scalar constant function.
func (e *Env) DeclareConstant(name string) *Function {
	fn := NewConstant(name)
	e.declare(fn)
	//
	return fn
}

// DeclareScalar declares a scalar temporary function.
func (e *Env) DeclareScalar(name string) *Function {
	fn := NewScalar(name)
	e.declare(fn)
	//
	return fn
}

// DeclareArray declares an array function over the given axes.
func (e *Env) DeclareArray(name string, axes ...*Dimension) *Function {
	fn := NewArray(name, axes...)
	e.declare(fn)
	//
	return fn
}

// Function looks up a declared function by name.
func (e *Env) Function(name string) (*Function, bool) {
	fn, ok := e.symbols[name]
	return fn, ok
}

// Dimension looks up a declared dimension by name.
func (e *Env) Dimension(name string) (*Dimension, bool) {
	fn, ok := e.symbols[name]
	if !ok || fn.Kind != DimensionKind {
		return nil, false
	}
	//
	return fn.Dim, true
}

func (e *Env) declare(fn *Function) {
	if _, ok := e.symbols[fn.Name]; ok {
		panic(fmt.Sprintf("symbol %q already declared", fn.Name))
	}
	//
	e.symbols[fn.Name] = fn
}

// ============================================================================
// Parsing
// ============================================================================

// ParseExpr parses a textual s-expression into an expression tree, resolving
// names against this symbol table.
func (e *Env) ParseExpr(text string) (Expr, error) {
	term, err := sexp.Parse(text)
	if err != nil {
		return nil, err
	}
	//
	return e.FromSExp(term)
}

// FromSExp translates a parsed s-expression into an expression tree,
// resolving names against this symbol table.
func (e *Env) FromSExp(term sexp.SExp) (Expr, error) {
	switch term := term.(type) {
	case *sexp.Symbol:
		return e.fromSymbol(term.Value)
	case *sexp.List:
		return e.fromList(term)
	}
	// Unreachable
	panic("unknown s-expression")
}

func (e *Env) fromSymbol(value string) (Expr, error) {
	// Exact integer?
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return NewInteger(i), nil
	}
	// Exact rational?
	if num, den, ok := splitRational(value); ok {
		return NewRational(num, den), nil
	}
	// Floating point?
	if strings.ContainsAny(value, ".eE") {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return NewFloat(f), nil
		}
	}
	// Declared symbol, then.
	if fn, ok := e.symbols[value]; ok {
		return NewSymbol(fn), nil
	}
	//
	return nil, fmt.Errorf("undeclared symbol %q", value)
}

func (e *Env) fromList(list *sexp.List) (Expr, error) {
	var (
		head = list.Head()
		n    = len(list.Tail())
	)
	//
	switch {
	case head == "+" && n >= 1:
		args, err := e.fromAll(list.Tail())
		return argsOr(err, func() Expr { return NewAdd(args...) })
	case head == "*" && n >= 1:
		args, err := e.fromAll(list.Tail())
		return argsOr(err, func() Expr { return NewMul(args...) })
	case head == "-" && (n == 1 || n == 2):
		return e.fromSub(list.Tail())
	case head == "/" && n == 2:
		return e.fromDiv(list.Tail())
	case head == "^" && n == 2:
		args, err := e.fromAll(list.Tail())
		return argsOr(err, func() Expr { return NewPow(args[0], args[1]) })
	case head == "=" && n == 2:
		args, err := e.fromAll(list.Tail())
		return argsOr(err, func() Expr { return NewEquality(args[0], args[1]) })
	case head == "idx" && n >= 1:
		return e.fromIndexed(list.Tail())
	}
	//
	return nil, fmt.Errorf("malformed expression %s", list)
}

// Subtraction has no node of its own: "a - b" is represented as a + (-1 * b),
// as the host framework normalises it.  Negated literals fold to constants,
// keeping index expressions like "x - 1" affine.
func (e *Env) fromSub(args []sexp.SExp) (Expr, error) {
	terms, err := e.fromAll(args)
	if err != nil {
		return nil, err
	}
	//
	negated := negate(terms[len(terms)-1])
	if len(terms) == 1 {
		return negated, nil
	}
	//
	return NewAdd(terms[0], negated), nil
}

func negate(e Expr) Expr {
	switch e := e.(type) {
	case *Integer:
		return NewInteger(-e.Value)
	case *Float:
		return NewFloat(-e.Value)
	case *Rational:
		return &Rational{new(big.Rat).Neg(e.Value)}
	default:
		return NewMul(NewInteger(-1), e)
	}
}

// Division likewise lowers to a * b^-1.
func (e *Env) fromDiv(args []sexp.SExp) (Expr, error) {
	terms, err := e.fromAll(args)
	if err != nil {
		return nil, err
	}
	//
	return NewMul(terms[0], NewPow(terms[1], NewInteger(-1))), nil
}

func (e *Env) fromIndexed(args []sexp.SExp) (Expr, error) {
	name, ok := args[0].(*sexp.Symbol)
	if !ok {
		return nil, fmt.Errorf("malformed array access (idx %s ...)", args[0])
	}
	//
	fn, found := e.symbols[name.Value]
	if !found || fn.Kind != ArrayKind {
		return nil, fmt.Errorf("undeclared array %q", name.Value)
	}
	//
	indices, err := e.fromAll(args[1:])
	if err != nil {
		return nil, err
	}
	//
	if len(indices) != len(fn.Axes) {
		return nil, fmt.Errorf("array %q expects %d indices, got %d",
			fn.Name, len(fn.Axes), len(indices))
	}
	//
	return NewIndexed(fn, indices...), nil
}

func (e *Env) fromAll(terms []sexp.SExp) ([]Expr, error) {
	exprs := make([]Expr, len(terms))
	//
	for i, t := range terms {
		var err error
		if exprs[i], err = e.FromSExp(t); err != nil {
			return nil, err
		}
	}
	//
	return exprs, nil
}

func argsOr(err error, build func() Expr) (Expr, error) {
	if err != nil {
		return nil, err
	}
	//
	return build(), nil
}

// Recognise "a/b" rationals with integer components.
func splitRational(value string) (int64, int64, bool) {
	i := strings.IndexByte(value, '/')
	if i <= 0 || i == len(value)-1 {
		return 0, 0, false
	}
	//
	num, err1 := strconv.ParseInt(value[:i], 10, 64)
	den, err2 := strconv.ParseInt(value[i+1:], 10, 64)
	//
	if err1 != nil || err2 != nil || den == 0 {
		return 0, 0, false
	}
	//
	return num, den, true
}
