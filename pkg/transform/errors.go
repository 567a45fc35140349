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

import "github.com/pkg/errors"

// ErrUnsupported indicates a source construct with no equivalent in the
// target model: a non-integer power, an unrecognised node kind, or an
// iteration shape the target compiler cannot express.
var ErrUnsupported = errors.New("unsupported construct")

// ErrInvariant indicates a malformed input: a temporary referenced before its
// binding, or bound twice.
var ErrInvariant = errors.New("invariant violation")

// Failures abort the whole translation pass; no partial translation is ever
// handed to the target compiler, although the solution may be left holding
// grids created before the failure.
func unsupportedf(format string, args ...any) error {
	return errors.Wrapf(ErrUnsupported, format, args...)
}

func invariantf(format string, args ...any) error {
	return errors.Wrapf(ErrInvariant, format, args...)
}
