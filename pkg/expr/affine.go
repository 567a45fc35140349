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

// Affine is the decomposition of an index expression into a dimension plus an
// integer shift, e.g. "x + 1" or "t - 2".
type Affine struct {
	Dim   *Dimension
	Shift int64
}

// SplitAffine decomposes an index expression of the form "d + c" (in any
// argument order, with zero or more integer terms) into its dimension and
// accumulated shift.  Anything else, including expressions over two distinct
// dimensions, is not affine in this sense.
func SplitAffine(e Expr) (Affine, bool) {
	switch e := e.(type) {
	case *Symbol:
		if e.Fn.Kind == DimensionKind {
			return Affine{e.Fn.Dim, 0}, true
		}
	case *Add:
		var (
			af    Affine
			seen  bool
			shift int64
		)
		//
		for _, arg := range e.Args {
			switch arg := arg.(type) {
			case *Integer:
				shift += arg.Value
			case *Symbol:
				if arg.Fn.Kind != DimensionKind || seen {
					return Affine{}, false
				}
				//
				af.Dim = arg.Fn.Dim
				seen = true
			default:
				return Affine{}, false
			}
		}
		//
		if seen {
			af.Shift = shift
			return af, true
		}
	}
	//
	return Affine{}, false
}

// IsInteger checks whether an expression is a pure integer constant, as
// arises for indices along misc dimensions.
func IsInteger(e Expr) bool {
	_, ok := e.(*Integer)
	return ok
}
