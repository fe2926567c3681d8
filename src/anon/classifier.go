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

import "strconv"

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// classify assigns the semantic kind to a raw token. The second return is
// false when the token must be dropped entirely: date and number tokens are
// not anonymized at all when their feature toggle is off.
//
// Only apostrophe-enclosed tokens are date candidates; a failed format
// match silently degrades them to plain strings.
func (a *TextAnonymizer) classify(t rawToken) (Token, bool) {
	if t.enclosure == EnclosureApostrophe {
		if _, ok := a.formats.Match(t.value); ok {
			if !a.opts.AnonymizeDates {
				return Token{}, false
			}
			return Token{Value: t.value, Enclosure: t.enclosure, Kind: KindDateTime}, true
		}
		return Token{Value: t.value, Enclosure: t.enclosure, Kind: KindString}, true
	}
	if isFloat(t.value) {
		if !a.opts.AnonymizeNumbers {
			return Token{}, false
		}
		return Token{Value: t.value, Enclosure: t.enclosure, Kind: KindNumber}, true
	}
	return Token{Value: t.value, Enclosure: t.enclosure, Kind: KindString}, true
}
