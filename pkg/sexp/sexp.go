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
package sexp

import "strings"

// SExp is an S-expression: either a list of zero or more S-expressions, or an
// atomic symbol.
type SExp interface {
	// IsList checks whether this S-expression is a list.
	IsList() bool
	// String generates a string representation.
	String() string
}

// ============================================================================
// List
// ============================================================================

// List represents a list of zero or more S-expressions.
type List struct {
	Elements []SExp
}

var _ SExp = (*List)(nil)

// NewList constructs a list from the given elements.
func NewList(elements ...SExp) *List {
	return &List{elements}
}

// IsList confirms that a List is a list.
func (l *List) IsList() bool { return true }

// Len returns the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Head returns the leading symbol of this list, or the empty string if the
// list is empty or does not start with a symbol.
func (l *List) Head() string {
	if len(l.Elements) == 0 {
		return ""
	}

	if s, ok := l.Elements[0].(*Symbol); ok {
		return s.Value
	}

	return ""
}

// Tail returns all elements of this list after the leading symbol.
func (l *List) Tail() []SExp {
	if len(l.Elements) == 0 {
		return nil
	}

	return l.Elements[1:]
}

func (l *List) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, e := range l.Elements {
		if i != 0 {
			builder.WriteString(" ")
		}

		builder.WriteString(e.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ============================================================================
// Symbol
// ============================================================================

// Symbol represents a terminating symbol.
type Symbol struct {
	Value string
}

var _ SExp = (*Symbol)(nil)

// NewSymbol constructs a symbol with the given value.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// IsList confirms that a Symbol is not a list.
func (s *Symbol) IsList() bool { return false }

func (s *Symbol) String() string { return s.Value }
