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

// FunctionKind distinguishes the kinds of function placeholder a symbol or
// indexed access can reference.
type FunctionKind int

const (
	// ArrayKind is a general array function, accessed via Indexed.
	ArrayKind FunctionKind = iota
	// ConstantKind is a scalar constant function.
	ConstantKind
	// DimensionKind is a loop-index function backing a Dimension.
	DimensionKind
	// ScalarKind is a scalar temporary, bound by a preceding assignment.
	ScalarKind
)

// Function is a named placeholder for an array or scalar referenced within
// symbolic expressions.  Arrays carry their declared index axes, fixed at
// declaration.
type Function struct {
	Name string
	Kind FunctionKind
	// Axes holds the declared index axes (arrays only).
	Axes []*Dimension
	// Dim is the backing dimension (DimensionKind only).
	Dim *Dimension
}

// NewConstant declares a scalar constant function.
func NewConstant(name string) *Function {
	return &Function{Name: name, Kind: ConstantKind}
}

// NewScalar declares a scalar temporary function.
func NewScalar(name string) *Function {
	return &Function{Name: name, Kind: ScalarKind}
}

// NewArray declares an array function over the given axes.
func NewArray(name string, axes ...*Dimension) *Function {
	return &Function{Name: name, Kind: ArrayKind, Axes: axes}
}

// ============================================================================
// Dimensions
// ============================================================================

// AxisClass classifies a dimension as temporal, spatial or miscellaneous
// (i.e. a non-spatial, non-temporal integer-valued axis).
type AxisClass int

const (
	// SpaceAxis is a spatial axis.
	SpaceAxis AxisClass = iota
	// TimeAxis is the stepping (temporal) axis.
	TimeAxis
	// MiscAxis is a non-spatial, non-temporal integer-valued axis.
	MiscAxis
)

// Dimension is a loop-index placeholder.  A dimension may be derived from a
// parent dimension, either as a sub-dimension spanning a fraction of the
// parent's domain, or as a lowered dimension standing in for a transformed
// index expression.
type Dimension struct {
	fn *Function
	// Class determines the axis classification (time / space / misc).
	Class AxisClass
	// Parent is the dimension this one derives from, or nil.
	Parent *Dimension
	// Origin is the untransformed index expression (lowered dimensions only).
	Origin Expr
	// sub indicates a restriction to part of the parent's domain.
	sub bool
	// Static offsets from the parent domain's edges (sub-dimensions only);
	// nil when only dynamically known.
	lowerOffset *int64
	upperOffset *int64
}

// NewDimension constructs a top-level dimension of the given class.
func NewDimension(name string, class AxisClass) *Dimension {
	d := &Dimension{Class: class}
	d.fn = &Function{Name: name, Kind: DimensionKind, Dim: d}
	//
	return d
}

// NewSubDimension constructs a dimension restricted to a sub-region of its
// parent's domain.  Lower and upper are the offsets from the first and last
// points of the parent domain, or nil when not statically known.
func NewSubDimension(name string, parent *Dimension, lower, upper *int64) *Dimension {
	d := &Dimension{
		Class:       parent.Class,
		Parent:      parent,
		sub:         true,
		lowerOffset: lower,
		upperOffset: upper,
	}
	d.fn = &Function{Name: name, Kind: DimensionKind, Dim: d}
	//
	return d
}

// NewLoweredDimension constructs a dimension standing in for a transformed
// index expression, remembering the untransformed origin.
func NewLoweredDimension(name string, parent *Dimension, origin Expr) *Dimension {
	d := &Dimension{Class: parent.Class, Parent: parent, Origin: origin}
	d.fn = &Function{Name: name, Kind: DimensionKind, Dim: d}
	//
	return d
}

// Name returns the name of this dimension.
func (d *Dimension) Name() string { return d.fn.Name }

// Function returns the function placeholder backing this dimension.
func (d *Dimension) Function() *Function { return d.fn }

// Symbol returns a symbol referencing this dimension.
func (d *Dimension) Symbol() *Symbol { return NewSymbol(d.fn) }

// IsDerived checks whether this dimension derives from a parent.
func (d *Dimension) IsDerived() bool { return d.Parent != nil }

// IsLowered checks whether this dimension stands in for a transformed index.
func (d *Dimension) IsLowered() bool { return d.Origin != nil }

// IsSub checks whether this dimension is restricted to a sub-region of its
// parent's domain.
func (d *Dimension) IsSub() bool { return d.sub }

// Root returns the top-level ancestor of this dimension (itself, when not
// derived).
func (d *Dimension) Root() *Dimension {
	r := d
	for r.Parent != nil {
		r = r.Parent
	}
	//
	return r
}

// StaticOffsets returns the offsets of this sub-dimension from the first and
// last points of the parent domain, when both are statically known.
func (d *Dimension) StaticOffsets() (lower int64, upper int64, ok bool) {
	if d.lowerOffset == nil || d.upperOffset == nil {
		return 0, 0, false
	}
	//
	return *d.lowerOffset, *d.upperOffset, true
}
