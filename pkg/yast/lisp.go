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

import (
	"fmt"
	"strconv"
	"strings"
)

// Lisp renders a node as an s-expression, for debugging and inspection.
// Guard conditions attached to equations are not included; see Equation.Cond.
func Lisp(n Node) string {
	switch n := n.(type) {
	case *constant:
		return strconv.FormatFloat(n.value, 'g', -1, 64)
	case *index:
		return n.name
	case *domainEdge:
		if n.last {
			return fmt.Sprintf("(last %s)", Lisp(n.arg))
		}
		//
		return fmt.Sprintf("(first %s)", Lisp(n.arg))
	case *binary:
		return fmt.Sprintf("(%s %s %s)", lispOfOp(n.op), Lisp(n.lhs), Lisp(n.rhs))
	case *gridPoint:
		return lispOfGridPoint(n)
	case *Equation:
		return fmt.Sprintf("(= %s %s)", Lisp(n.lhs), Lisp(n.rhs))
	default:
		panic(fmt.Sprintf("unknown node %v", n))
	}
}

func lispOfOp(op binaryOp) string {
	switch op {
	case addOp:
		return "+"
	case multiplyOp:
		return "*"
	case divideOp:
		return "/"
	case subtractOp:
		return "-"
	case equalsOp:
		return "=="
	case notLessThanOp:
		return ">="
	case notGreaterThanOp:
		return "<="
	case andOp:
		return "&&"
	default:
		panic("unknown operator")
	}
}

func lispOfGridPoint(p *gridPoint) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(p.grid.name)
	//
	for _, ith := range p.indices {
		builder.WriteString(" ")
		builder.WriteString(Lisp(ith))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
