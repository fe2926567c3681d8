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
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrInvalidDecoderDictionary marks a decoder dictionary that fails the
// uniqueness or length-parity invariant. Deanonymization refuses to run
// with such a dictionary rather than apply a partially-correct mapping.
var ErrInvalidDecoderDictionary = errors.New("invalid decoder dictionary")

// Deanonymize restores the original text from its anonymized form using
// the decoder dictionary produced by Anonymize. It is idempotent: a second
// pass over its own output finds nothing left to replace.
func Deanonymize(text string, dict *DecoderDictionary) (string, error) {
	if dict == nil || dict.Len() == 0 {
		return text, nil
	}
	if err := dict.Validate(); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDecoderDictionary, err)
	}

	// Longest key first. A shorter anonymized token can be a substring of
	// a longer one; replacing it first would corrupt the longer match.
	entries := dict.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Key) > len(entries[j].Key)
	})

	for _, e := range entries {
		var p matchPattern
		if IdentifyEnclosure(e.Key) != EnclosureNone {
			p = matchPattern{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(e.Key))}
		} else {
			p = patternForEnclosure(e.Key, EnclosureNone)
		}
		text = replaceAll(text, p, e.Value)
	}
	return text, nil
}
