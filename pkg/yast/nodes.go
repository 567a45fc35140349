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

// Package yast models the AST consumed by the external stencil compiler.
// Nodes are opaque values produced only through the factory functions below,
// mirroring the compiler's node-factory interface.
package yast

import "fmt"

// Node is an opaque node of the target AST.
type Node interface {
	isNode()
	// String generates an s-expression style rendering of this node.
	String() string
}

// ============================================================================
// Numeric constants
// ============================================================================

type constant struct{ value float64 }

func (p *constant) isNode() {}

func (p *constant) String() string { return Lisp(p) }

// ConstNumber creates a numeric constant node.
func ConstNumber(value float64) Node { return &constant{value} }

// ============================================================================
// Index references
// ============================================================================

type indexKind int

const (
	stepIndex indexKind = iota
	domainIndex
	miscIndex
)

type index struct {
	kind indexKind
	name string
}

func (p *index) isNode() {}

func (p *index) String() string { return Lisp(p) }

// StepIndex creates a reference to the stepping (time) index of the given
// name.
func StepIndex(name string) Node { return &index{stepIndex, name} }

// DomainIndex creates a reference to a spatial domain index of the given
// name.
func DomainIndex(name string) Node { return &index{domainIndex, name} }

// MiscIndex creates a reference to a miscellaneous (non-spatial,
// non-temporal) index of the given name.
func MiscIndex(name string) Node { return &index{miscIndex, name} }

// IsStepIndex checks whether a node is a stepping-index reference.
func IsStepIndex(n Node) bool {
	p, ok := n.(*index)
	return ok && p.kind == stepIndex
}

// IsDomainIndex checks whether a node is a domain-index reference.
func IsDomainIndex(n Node) bool {
	p, ok := n.(*index)
	return ok && p.kind == domainIndex
}

// IsMiscIndex checks whether a node is a misc-index reference.
func IsMiscIndex(n Node) bool {
	p, ok := n.(*index)
	return ok && p.kind == miscIndex
}

// ============================================================================
// Domain edges
// ============================================================================

type domainEdge struct {
	last bool
	arg  *index
}

func (p *domainEdge) isNode() {}

func (p *domainEdge) String() string { return Lisp(p) }

// FirstDomainIndex creates a reference to the first point of the domain
// spanned by the given domain index.
func FirstDomainIndex(dim Node) Node { return &domainEdge{false, asDomainIndex(dim)} }

// LastDomainIndex creates a reference to the last point of the domain spanned
// by the given domain index.
func LastDomainIndex(dim Node) Node { return &domainEdge{true, asDomainIndex(dim)} }

func asDomainIndex(dim Node) *index {
	p, ok := dim.(*index)
	if !ok || p.kind != domainIndex {
		panic(fmt.Sprintf("domain edge over non-domain index %s", dim))
	}
	//
	return p
}

// ============================================================================
// Binary operators
// ============================================================================

type binaryOp int

const (
	addOp binaryOp = iota
	multiplyOp
	divideOp
	subtractOp
	equalsOp
	notLessThanOp
	notGreaterThanOp
	andOp
)

type binary struct {
	op  binaryOp
	lhs Node
	rhs Node
}

func (p *binary) isNode() {}

func (p *binary) String() string { return Lisp(p) }

// AddNode creates an addition node.
func AddNode(lhs, rhs Node) Node { return &binary{addOp, lhs, rhs} }

// MultiplyNode creates a multiplication node.
func MultiplyNode(lhs, rhs Node) Node { return &binary{multiplyOp, lhs, rhs} }

// DivideNode creates a division node.
func DivideNode(lhs, rhs Node) Node { return &binary{divideOp, lhs, rhs} }

// SubtractNode creates a subtraction node.
func SubtractNode(lhs, rhs Node) Node { return &binary{subtractOp, lhs, rhs} }

// EqualsNode creates an equality comparison node.
func EqualsNode(lhs, rhs Node) Node { return &binary{equalsOp, lhs, rhs} }

// NotLessThanNode creates a "lhs >= rhs" comparison node.
func NotLessThanNode(lhs, rhs Node) Node { return &binary{notLessThanOp, lhs, rhs} }

// NotGreaterThanNode creates a "lhs <= rhs" comparison node.
func NotGreaterThanNode(lhs, rhs Node) Node { return &binary{notGreaterThanOp, lhs, rhs} }

// AndNode creates a conjunction node.
func AndNode(lhs, rhs Node) Node { return &binary{andOp, lhs, rhs} }

// ============================================================================
// Grid points
// ============================================================================

type gridPoint struct {
	grid    *Grid
	indices []Node
}

func (p *gridPoint) isNode() {}

func (p *gridPoint) String() string { return Lisp(p) }

// ============================================================================
// Equations
// ============================================================================

// Equation is a target-side equation, optionally guarded by a sub-domain
// condition.
type Equation struct {
	lhs  Node
	rhs  Node
	cond Node
}

func (p *Equation) isNode() {}

func (p *Equation) String() string { return Lisp(p) }

// EquationNode creates an equation from translated left and right hand sides.
func EquationNode(lhs, rhs Node) *Equation { return &Equation{lhs, rhs, nil} }

// Lhs returns the left-hand side of this equation.
func (p *Equation) Lhs() Node { return p.lhs }

// Rhs returns the right-hand side of this equation.
func (p *Equation) Rhs() Node { return p.rhs }

// SetCond attaches a guard condition restricting the points at which this
// equation applies.
func (p *Equation) SetCond(cond Node) { p.cond = cond }

// Cond returns the guard condition attached to this equation, or nil.
func (p *Equation) Cond() Node { return p.cond }
