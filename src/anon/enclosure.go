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
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// IdentifyEnclosure recognizes an exactly matched leading/trailing delimiter
// pair. Mismatched or missing delimiters yield EnclosureNone.
func IdentifyEnclosure(token string) EnclosureKind {
	if len(token) < 2 {
		return EnclosureNone
	}
	for _, e := range []EnclosureKind{EnclosureApostrophe, EnclosureQuote, EnclosureSquareBracket, EnclosureCurlyBrace} {
		if strings.HasPrefix(token, e.Open()) && strings.HasSuffix(token, e.Close()) {
			return e
		}
	}
	return EnclosureNone
}

// StripEnclosure removes one layer of a recognized delimiter pair.
func StripEnclosure(token string) string {
	if IdentifyEnclosure(token) == EnclosureNone {
		return token
	}
	return token[1 : len(token)-1]
}

// boundaryRunes are the delimiter characters a bare match must not touch.
// A bare literal that also appears inside an enclosure would otherwise be
// replaced twice, once as itself and once as the enclosed literal.
const boundaryRunes = `'"[]{}`

// matchPattern is a compiled, boundary-safe matcher for one literal.
// When bare is set, every candidate match must additionally pass a
// neighbour check: RE2 has no lookaround, so the guard from the classic
// pattern (?<!['"[]{])\b...\b(?!['"[]{}]) is applied by hand.
type matchPattern struct {
	re   *regexp.Regexp
	bare bool
}

// patternForEnclosure builds the matcher used by the substitution engine
// for a literal with a known enclosure kind.
func patternForEnclosure(literal string, enclosure EnclosureKind) matchPattern {
	if enclosure == EnclosureNone {
		return matchPattern{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(literal) + `\b`),
			bare: true,
		}
	}
	return matchPattern{
		re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(enclosure.Wrap(literal))),
	}
}

// buildBoundaryPattern returns a matcher for a raw token of unknown
// enclosure. An already-enclosed token matches verbatim. An unenclosed
// token matches inside any of the four enclosure pairs or bare at guarded
// word boundaries.
func buildBoundaryPattern(token string) matchPattern {
	if IdentifyEnclosure(token) != EnclosureNone {
		return matchPattern{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(token))}
	}
	quoted := regexp.QuoteMeta(token)
	expr := fmt.Sprintf(`(?i)(?:'%s'|"%s"|\[%s\]|\{%s\}|\b%s\b)`, quoted, quoted, quoted, quoted, quoted)
	return matchPattern{re: regexp.MustCompile(expr), bare: true}
}

// boundaryClear reports whether the match at [start,end) is free of
// adjacent enclosure delimiters. Enclosed occurrences (the match itself
// starts with a delimiter) are always clear.
func boundaryClear(text string, start, end int) bool {
	if start < end && strings.ContainsRune(boundaryRunes, rune(text[start])) {
		return true
	}
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if strings.ContainsRune(boundaryRunes, r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if strings.ContainsRune(boundaryRunes, r) {
			return false
		}
	}
	return true
}
