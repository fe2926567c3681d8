/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package anon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeanonymizeEmptyDictionary(t *testing.T) {
	out, err := Deanonymize("select 1", nil)
	require.NoError(t, err)
	assert.Equal(t, "select 1", out)

	out, err = Deanonymize("select 1", NewDecoderDictionary())
	require.NoError(t, err)
	assert.Equal(t, "select 1", out)
}

func TestDeanonymizeRejectsInvalidDictionary(t *testing.T) {
	d := NewDecoderDictionary()
	d.Set("AAAA", "BB")

	_, err := Deanonymize("text", d)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDecoderDictionary)
}

func TestDeanonymizeRestoresAndRecases(t *testing.T) {
	d := NewDecoderDictionary()
	d.Set("XQZVW", "PARIS")
	d.Set("'MKLPQR'", "'GDANSK'")

	out, err := Deanonymize("from Xqzvw where city = 'Mklpqr'", d)
	require.NoError(t, err)
	assert.Equal(t, "from Paris where city = 'Gdansk'", out)
}

func TestDeanonymizeLongestKeyFirst(t *testing.T) {
	// The shorter enclosed key is a prefix of the longer one; replacing it
	// first would corrupt the longer match.
	d := NewDecoderDictionary()
	d.Set("'AB'", "'QQ'")
	d.Set("'ABCD'", "'WXYZ'")

	out, err := Deanonymize("x = 'ABCD' and y = 'AB'", d)
	require.NoError(t, err)
	assert.Equal(t, "x = 'WXYZ' and y = 'QQ'", out)
}

func TestDeanonymizeBareKeyRespectsBoundaries(t *testing.T) {
	d := NewDecoderDictionary()
	d.Set("XYZ", "ABC")

	out, err := Deanonymize("xyz xyzzy 'xyz'", d)
	require.NoError(t, err)
	// Only the bare standalone occurrence is restored.
	assert.Equal(t, "abc xyzzy 'xyz'", out)
}

func TestDeanonymizeIsIdempotent(t *testing.T) {
	d := NewDecoderDictionary()
	d.Set("XQZVW", "PARIS")
	d.Set("54321", "98765")

	once, err := Deanonymize("Xqzvw spent 54321", d)
	require.NoError(t, err)
	twice, err := Deanonymize(once, d)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
