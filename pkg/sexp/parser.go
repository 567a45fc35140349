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

import "fmt"

// Parse a given string into a single S-expression, or return an error if the
// string is malformed or contains trailing text.
func Parse(text string) (SExp, error) {
	p := newParser(text)
	//
	term, err := p.parse()
	if err != nil {
		return nil, err
	} else if term == nil {
		return nil, p.errorf("unexpected end-of-file")
	}
	// Sanity check everything was consumed
	p.skipWhitespace()
	//
	if p.index != len(p.text) {
		return nil, p.errorf("unexpected remainder")
	}
	//
	return term, nil
}

// ParseAll parses a given string into zero or more S-expressions, returning an
// error if the string is malformed.
func ParseAll(text string) ([]SExp, error) {
	var terms []SExp
	//
	p := newParser(text)
	//
	for {
		term, err := p.parse()
		if err != nil {
			return nil, err
		} else if term == nil {
			// End-of-file reached
			return terms, nil
		}
		//
		terms = append(terms, term)
	}
}

// SyntaxError reports a malformed S-expression, along with the offset at which
// the problem was detected.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Message)
}

// ============================================================================
// Parser
// ============================================================================

type parser struct {
	text  []rune
	index int
}

func newParser(text string) *parser {
	return &parser{text: []rune(text)}
}

func (p *parser) parse() (SExp, error) {
	p.skipWhitespace()
	//
	if p.index == len(p.text) {
		return nil, nil
	}
	//
	switch p.text[p.index] {
	case ')':
		return nil, p.errorf("unexpected end-of-list")
	case '(':
		return p.parseList()
	default:
		return p.parseSymbol(), nil
	}
}

func (p *parser) parseList() (SExp, error) {
	var elements []SExp
	// Consume left brace
	p.index++
	//
	for {
		p.skipWhitespace()
		//
		if p.index == len(p.text) {
			return nil, p.errorf("unclosed list")
		} else if p.text[p.index] == ')' {
			// Consume right brace
			p.index++
			return &List{elements}, nil
		}
		//
		element, err := p.parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

func (p *parser) parseSymbol() SExp {
	start := p.index
	//
	for p.index < len(p.text) && !isDelimiter(p.text[p.index]) {
		p.index++
	}
	//
	return &Symbol{string(p.text[start:p.index])}
}

// Skip over whitespace and line comments (";" to end-of-line).
func (p *parser) skipWhitespace() {
	for p.index < len(p.text) {
		switch p.text[p.index] {
		case ' ', '\t', '\r', '\n':
			p.index++
		case ';':
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		default:
			return
		}
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{p.index, fmt.Sprintf(format, args...)}
}

func isDelimiter(c rune) bool {
	switch c {
	case '(', ')', ';', ' ', '\t', '\r', '\n':
		return true
	}
	//
	return false
}
