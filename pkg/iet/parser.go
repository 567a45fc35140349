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
package iet

import (
	"fmt"
	"strconv"

	"github.com/gridfront/stencilbridge/pkg/expr"
	"github.com/gridfront/stencilbridge/pkg/sexp"
)

// Parse a textual problem description into its iteration trees.  The syntax
// is a sequence of s-expression forms:
//
//	(dim t time)                    declare a dimension (time|space|misc)
//	(sub xi x 1 -1)                 declare a sub-dimension ("?" = dynamic)
//	(const c)                       declare a scalar constant
//	(tmp r0)                        declare a scalar temporary
//	(array u t x)                   declare an array over declared dimensions
//	(iter x forward [seq] [N] ...)  a loop level; optional "seq" marker and
//	                                static extent, enclosing nested levels
//	                                and/or equations
//	(= lhs rhs)                     an equation; at the top level it forms a
//	                                degenerate tree of its own
//
// Expressions follow the syntax of package expr.
func Parse(text string) ([]*Tree, *expr.Env, error) {
	terms, err := sexp.ParseAll(text)
	if err != nil {
		return nil, nil, err
	}
	//
	var (
		env   = expr.NewEnv()
		trees []*Tree
	)
	//
	for _, term := range terms {
		list, ok := term.(*sexp.List)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected %s at top level", term)
		}
		//
		switch list.Head() {
		case "dim", "sub", "const", "tmp", "array":
			if err := declare(env, list); err != nil {
				return nil, nil, err
			}
		case "iter":
			tree, err := parseTree(env, list)
			if err != nil {
				return nil, nil, err
			}
			//
			trees = append(trees, tree)
		case "=":
			eq, err := parseEquation(env, list)
			if err != nil {
				return nil, nil, err
			}
			//
			trees = append(trees, NewTree(nil, eq))
		default:
			return nil, nil, fmt.Errorf("unknown form %s", list)
		}
	}
	//
	return trees, env, nil
}

// ============================================================================
// Declarations
// ============================================================================

func declare(env *expr.Env, list *sexp.List) error {
	args, err := symbolValues(list.Tail())
	if err != nil {
		return fmt.Errorf("malformed declaration %s", list)
	}
	//
	switch head := list.Head(); {
	case head == "dim" && len(args) == 2:
		return declareDimension(env, args[0], args[1])
	case head == "sub" && len(args) == 4:
		return declareSubDimension(env, args)
	case head == "const" && len(args) == 1:
		env.DeclareConstant(args[0])
		return nil
	case head == "tmp" && len(args) == 1:
		env.DeclareScalar(args[0])
		return nil
	case head == "array" && len(args) >= 1:
		return declareArray(env, args[0], args[1:])
	}
	//
	return fmt.Errorf("malformed declaration %s", list)
}

func declareDimension(env *expr.Env, name, class string) error {
	var axis expr.AxisClass
	//
	switch class {
	case "time":
		axis = expr.TimeAxis
	case "space":
		axis = expr.SpaceAxis
	case "misc":
		axis = expr.MiscAxis
	default:
		return fmt.Errorf("unknown axis class %q", class)
	}
	//
	env.DeclareDimension(name, axis)
	//
	return nil
}

func declareSubDimension(env *expr.Env, args []string) error {
	parent, ok := env.Dimension(args[1])
	if !ok {
		return fmt.Errorf("undeclared parent dimension %q", args[1])
	}
	//
	lower, err := parseOffset(args[2])
	if err != nil {
		return err
	}
	//
	upper, err := parseOffset(args[3])
	if err != nil {
		return err
	}
	//
	env.DeclareSubDimension(args[0], parent, lower, upper)
	//
	return nil
}

func declareArray(env *expr.Env, name string, axes []string) error {
	dims := make([]*expr.Dimension, len(axes))
	//
	for i, a := range axes {
		dim, ok := env.Dimension(a)
		if !ok {
			return fmt.Errorf("undeclared dimension %q", a)
		}
		//
		dims[i] = dim
	}
	//
	env.DeclareArray(name, dims...)
	//
	return nil
}

// An offset is either a literal integer or "?" for dynamically known.
func parseOffset(s string) (*int64, error) {
	if s == "?" {
		return nil, nil
	}
	//
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed offset %q", s)
	}
	//
	return &n, nil
}

// ============================================================================
// Iteration trees
// ============================================================================

func parseTree(env *expr.Env, list *sexp.List) (*Tree, error) {
	var (
		levels []*Iteration
		body   []*expr.Equality
	)
	//
	if err := parseIter(env, list, &levels, &body); err != nil {
		return nil, err
	}
	//
	return NewTree(levels, body...), nil
}

func parseIter(env *expr.Env, list *sexp.List, levels *[]*Iteration, body *[]*expr.Equality) error {
	args := list.Tail()
	if len(args) < 2 {
		return fmt.Errorf("malformed iteration %s", list)
	}
	//
	dimName, ok := args[0].(*sexp.Symbol)
	if !ok {
		return fmt.Errorf("malformed iteration %s", list)
	}
	//
	dim, found := env.Dimension(dimName.Value)
	if !found {
		return fmt.Errorf("undeclared dimension %q", dimName.Value)
	}
	//
	level, rest, err := parseIterHead(dim, args[1:])
	if err != nil {
		return err
	}
	//
	*levels = append(*levels, level)
	// Remaining elements are nested levels and/or equations.
	for _, item := range rest {
		nested, ok := item.(*sexp.List)
		if !ok {
			return fmt.Errorf("unexpected %s within iteration", item)
		}
		//
		switch nested.Head() {
		case "iter":
			if err := parseIter(env, nested, levels, body); err != nil {
				return err
			}
		case "=":
			eq, err := parseEquation(env, nested)
			if err != nil {
				return err
			}
			//
			*body = append(*body, eq)
		default:
			return fmt.Errorf("unknown form %s within iteration", nested)
		}
	}
	//
	return nil
}

// Parse the direction and optional "seq" / extent markers of a loop level,
// returning the level and the unconsumed body elements.
func parseIterHead(dim *expr.Dimension, args []sexp.SExp) (*Iteration, []sexp.SExp, error) {
	var (
		direction  Direction
		sequential bool
		extent     *int64
	)
	//
	dirName, ok := args[0].(*sexp.Symbol)
	if !ok {
		return nil, nil, fmt.Errorf("missing iteration direction for %s", dim.Name())
	}
	//
	switch dirName.Value {
	case "forward":
		direction = Forward
	case "backward":
		direction = Backward
	case "any":
		direction = Any
	default:
		return nil, nil, fmt.Errorf("unknown direction %q", dirName.Value)
	}
	//
	rest := args[1:]
	//
	for len(rest) > 0 {
		marker, ok := rest[0].(*sexp.Symbol)
		if !ok {
			break
		}
		//
		if marker.Value == "seq" {
			sequential = true
		} else if n, err := strconv.ParseInt(marker.Value, 10, 64); err == nil {
			extent = &n
		} else {
			return nil, nil, fmt.Errorf("unknown iteration marker %q", marker.Value)
		}
		//
		rest = rest[1:]
	}
	//
	level := &Iteration{Dim: dim, Direction: direction, Sequential: sequential, extent: extent}
	//
	return level, rest, nil
}

func parseEquation(env *expr.Env, list *sexp.List) (*expr.Equality, error) {
	e, err := env.FromSExp(list)
	if err != nil {
		return nil, err
	}
	//
	eq, ok := e.(*expr.Equality)
	if !ok {
		return nil, fmt.Errorf("expected equation, got %s", e)
	}
	//
	return eq, nil
}

// Helper extracting the values of a run of symbols, failing on any list.
func symbolValues(terms []sexp.SExp) ([]string, error) {
	values := make([]string, len(terms))
	//
	for i, t := range terms {
		s, ok := t.(*sexp.Symbol)
		if !ok {
			return nil, fmt.Errorf("unexpected list %s", t)
		}
		//
		values[i] = s.Value
	}
	//
	return values, nil
}
