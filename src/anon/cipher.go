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
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CipherKey is the session-wide permutation pair used for character-wise
// substitution of string tokens. Letters[i] is the substitute for 'A'+i,
// Digits[i] the substitute for '0'+i. Exactly one key is generated per
// anonymization run; tokens with a custom override bypass it.
type CipherKey struct {
	Letters [26]byte
	Digits  [10]byte
}

// GenerateCipherKey draws independent uniform permutations of the alphabet
// and the decimal digits from rnd.
func GenerateCipherKey(rnd *rand.Rand) CipherKey {
	var key CipherKey
	for i := range key.Letters {
		key.Letters[i] = byte('A' + i)
	}
	for i := range key.Digits {
		key.Digits[i] = byte('0' + i)
	}
	rnd.Shuffle(len(key.Letters), func(i, j int) {
		key.Letters[i], key.Letters[j] = key.Letters[j], key.Letters[i]
	})
	rnd.Shuffle(len(key.Digits), func(i, j int) {
		key.Digits[i], key.Digits[j] = key.Digits[j], key.Digits[i]
	})
	return key
}

// asciiFoldTransformer strips combining marks after NFD decomposition,
// reducing accented letters to their base ASCII letter.
var asciiFoldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldExtraRunes covers letters with no combining-mark decomposition, which
// the NFD strip cannot reduce. Each maps to a single ASCII letter so rune
// counts stay stable through substitution.
var foldExtraRunes = map[rune]rune{
	'Ł': 'L', 'ł': 'l',
	'Ø': 'O', 'ø': 'o',
	'Æ': 'A', 'æ': 'a',
	'Œ': 'O', 'œ': 'o',
	'Đ': 'D', 'đ': 'd',
	'Ð': 'D', 'ð': 'd',
	'Þ': 'T', 'þ': 't',
	'ß': 's',
}

func asciiFold(s string) string {
	folded, _, err := transform.String(asciiFoldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if mapped, ok := foldExtraRunes[r]; ok {
			return mapped
		}
		return r
	}, folded)
}

// Substitute maps every alphabetic character of text through the letter
// permutation preserving case, every digit through the digit permutation,
// and passes other characters through. Accented letters are transliterated
// to ASCII first. Any quote character in the result is rewritten to an
// underscore so replacements cannot corrupt enclosure delimiters.
func (k CipherKey) Substitute(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range asciiFold(text) {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteByte(k.Letters[r-'A'])
		case r >= 'a' && r <= 'z':
			b.WriteByte(k.Letters[r-'a'] - 'A' + 'a')
		case r >= '0' && r <= '9':
			b.WriteByte(k.Digits[r-'0'])
		case r == '\'' || r == '"':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// substituteWithOverride applies a caller-supplied partial character map
// (upper-case source to upper-case target). Characters covered by the map
// are replaced preserving case, everything else passes through unchanged.
func substituteWithOverride(text string, override map[byte]byte) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r > unicode.MaxASCII {
			b.WriteRune(r)
			continue
		}
		mapped, ok := override[byte(unicode.ToUpper(r))]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if r >= 'a' && r <= 'z' && mapped >= 'A' && mapped <= 'Z' {
			b.WriteByte(mapped - 'A' + 'a')
		} else {
			b.WriteByte(mapped)
		}
	}
	return b.String()
}

// overrideFromPair builds the per-token character map from a custom encoder
// pair: the i-th character of key maps to the i-th character of value.
func overrideFromPair(key, value string) map[byte]byte {
	override := make(map[byte]byte, len(key))
	for i := 0; i < len(key) && i < len(value); i++ {
		override[key[i]] = value[i]
	}
	return override
}
