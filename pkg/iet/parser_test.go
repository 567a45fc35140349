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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waveSrc = `
(dim t time)
(dim x space)
(sub xi x 1 -1)
(array u t x)
(iter t forward seq
  (iter xi forward
    (= (idx u (+ t 1) xi) (idx u t xi))))
`

func TestParseTree(t *testing.T) {
	trees, env, err := Parse(waveSrc)
	require.NoError(t, err)
	require.Len(t, trees, 1)

	levels := trees[0].Iterations()
	require.Len(t, levels, 2)

	assert.Equal(t, "t", levels[0].Dim.Name())
	assert.Equal(t, Forward, levels[0].Direction)
	assert.True(t, levels[0].Sequential)
	assert.False(t, levels[0].IsSub())

	assert.Equal(t, "xi", levels[1].Dim.Name())
	assert.False(t, levels[1].Sequential)
	assert.True(t, levels[1].IsSub())

	_, known := levels[1].Extent()
	assert.False(t, known)

	body := trees[0].Expressions()
	require.Len(t, body, 1)
	assert.Equal(t, "(= (idx u (+ t 1) xi) (idx u t xi))", body[0].String())

	xi, ok := env.Dimension("xi")
	require.True(t, ok)
	lower, upper, static := xi.StaticOffsets()
	require.True(t, static)
	assert.Equal(t, int64(1), lower)
	assert.Equal(t, int64(-1), upper)
}

func TestParseDynamicOffsets(t *testing.T) {
	src := `
(dim x space)
(sub xi x ? ?)
(array u x)
(iter xi backward seq 4
  (= (idx u xi) 0))
`
	trees, env, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, trees, 1)

	xi, ok := env.Dimension("xi")
	require.True(t, ok)
	_, _, static := xi.StaticOffsets()
	assert.False(t, static)

	level := trees[0].Iterations()[0]
	extent, known := level.Extent()
	require.True(t, known)
	assert.Equal(t, int64(4), extent)
	assert.Equal(t, Backward, level.Direction)
}

func TestParseBareEquation(t *testing.T) {
	src := `
(dim x space)
(array u x)
(= (idx u x) 1.5)
`
	trees, _, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Empty(t, trees[0].Iterations())
	assert.Len(t, trees[0].Expressions(), 1)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"(dim x sideways)",
		"(sub xi x 1 -1)",
		"(array u x)",
		"(iter x forward)",
		"(= a b)",
		"bare-symbol",
		"(frobnicate)",
	} {
		_, _, err := Parse(src)
		assert.Error(t, err, "source: %s", src)
	}
}
