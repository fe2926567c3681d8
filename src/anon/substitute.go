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
	"strings"
	"unicode"
)

// recase mirrors the character-case pattern of the matched span onto the
// replacement: an upper-case character in the match forces upper case at
// the same position. Match and replacement have equal length by invariant;
// any excess replacement characters are appended as-is.
func recase(match, replacement string) string {
	matchRunes := []rune(match)
	var b strings.Builder
	b.Grow(len(replacement))
	for i, r := range []rune(replacement) {
		if i < len(matchRunes) && unicode.IsUpper(matchRunes[i]) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// replaceAll substitutes every boundary-safe, case-insensitive occurrence
// of the pattern in text, re-casing the replacement to each matched span.
func replaceAll(text string, p matchPattern, replacement string) string {
	locs := p.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		if p.bare && !boundaryClear(text, loc[0], loc[1]) {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(recase(text[loc[0]:loc[1]], replacement))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
