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
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCipherKeyIsPermutation(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	key := GenerateCipherKey(rnd)

	letters := append([]byte(nil), key.Letters[:]...)
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	assert.Equal(t, []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), letters)

	digits := append([]byte(nil), key.Digits[:]...)
	sort.Slice(digits, func(i, j int) bool { return digits[i] < digits[j] })
	assert.Equal(t, []byte("0123456789"), digits)
}

func TestGenerateCipherKeyIsSeedDeterministic(t *testing.T) {
	k1 := GenerateCipherKey(rand.New(rand.NewSource(7)))
	k2 := GenerateCipherKey(rand.New(rand.NewSource(7)))
	assert.Equal(t, k1, k2)

	k3 := GenerateCipherKey(rand.New(rand.NewSource(8)))
	assert.NotEqual(t, k1, k3)
}

func TestSubstitutePreservesCaseAndLength(t *testing.T) {
	key := GenerateCipherKey(rand.New(rand.NewSource(3)))

	in := "Warsaw-2024_x"
	out := key.Substitute(in)
	assert.Len(t, out, len(in))
	assert.NotEqual(t, in, out)

	// Case pattern and the non-alphanumeric skeleton survive.
	for i := range in {
		switch {
		case in[i] >= 'A' && in[i] <= 'Z':
			assert.GreaterOrEqual(t, out[i], byte('A'))
			assert.LessOrEqual(t, out[i], byte('Z'))
		case in[i] >= 'a' && in[i] <= 'z':
			assert.GreaterOrEqual(t, out[i], byte('a'))
			assert.LessOrEqual(t, out[i], byte('z'))
		case in[i] >= '0' && in[i] <= '9':
			assert.GreaterOrEqual(t, out[i], byte('0'))
			assert.LessOrEqual(t, out[i], byte('9'))
		default:
			assert.Equal(t, in[i], out[i])
		}
	}
}

func TestSubstituteUpperLowerConsistency(t *testing.T) {
	key := GenerateCipherKey(rand.New(rand.NewSource(3)))
	upper := key.Substitute("WARSAW")
	lower := key.Substitute("warsaw")
	assert.Equal(t, upper, strings.ToUpper(lower))
}

func TestSubstituteRewritesQuotesToUnderscore(t *testing.T) {
	key := GenerateCipherKey(rand.New(rand.NewSource(3)))
	out := key.Substitute(`O'Brien "x"`)
	assert.NotContains(t, out, "'")
	assert.NotContains(t, out, `"`)
	assert.Equal(t, byte('_'), out[1])
}

func TestSubstituteTransliteratesAccents(t *testing.T) {
	key := GenerateCipherKey(rand.New(rand.NewSource(3)))
	assert.Equal(t, key.Substitute("cafe"), key.Substitute("café"))
	assert.Equal(t, key.Substitute("Zurich"), key.Substitute("Zürich"))
	assert.Equal(t, key.Substitute("Gdansk"), key.Substitute("Gdańsk"))
}

func TestSubstituteFoldsNonDecomposableLetters(t *testing.T) {
	// These letters have no combining-mark decomposition and need the
	// explicit fold table.
	key := GenerateCipherKey(rand.New(rand.NewSource(3)))
	assert.Equal(t, key.Substitute("Lodz"), key.Substitute("Łódź"))
	assert.Equal(t, key.Substitute("Ore"), key.Substitute("Øre"))
	assert.Equal(t, key.Substitute("AsOA"), key.Substitute("ÆßØÅ"))

	// Every folded output is pure ASCII of the same rune count.
	out := key.Substitute("Łódź")
	assert.Len(t, out, 4)
}

func TestSubstituteWithOverride(t *testing.T) {
	override := overrideFromPair("ABC", "XYZ")

	assert.Equal(t, "XYZ", substituteWithOverride("ABC", override))
	assert.Equal(t, "xyz", substituteWithOverride("abc", override))
	assert.Equal(t, "XyZ", substituteWithOverride("AbC", override))
	// Characters outside the map pass through unchanged.
	assert.Equal(t, "XD1", substituteWithOverride("AD1", override))
}

func TestOverrideFromPairMapsDigits(t *testing.T) {
	override := overrideFromPair("A1", "B2")
	assert.Equal(t, "B2", substituteWithOverride("A1", override))
}
