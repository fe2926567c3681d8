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
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// maxPerturbRetries bounds the re-draws used to keep randomly perturbed
// dates and numbers from colliding with an already-used decoder key.
const maxPerturbRetries = 20

// substitution is one reconciled (token, replacement) tuple. The
// replacement is the upper-case anonymized form without enclosure.
type substitution struct {
	token       Token
	replacement string
}

// wrappedKey/wrappedValue are the decoder dictionary forms of a tuple.
func (s substitution) wrappedKey() string {
	return s.token.Enclosure.Wrap(s.replacement)
}

func (s substitution) wrappedValue() string {
	return s.token.Enclosure.Wrap(s.token.Value)
}

// sortedEncoderKeys gives a deterministic processing order for the custom
// encoder dictionary.
func sortedEncoderKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// customCipherOverrides derives per-token character maps from the custom
// encoder dictionary. Numeric-looking keys are excluded: numbers go through
// the perturbation path, not character substitution.
func (a *TextAnonymizer) customCipherOverrides() map[string]map[byte]byte {
	overrides := make(map[string]map[byte]byte)
	for _, key := range sortedEncoderKeys(a.customEncoder) {
		cleanKey := strings.ToUpper(StripEnclosure(key))
		if isFloat(cleanKey) {
			continue
		}
		cleanValue := strings.ToUpper(StripEnclosure(a.customEncoder[key]))
		overrides[cleanKey] = overrideFromPair(cleanKey, cleanValue)
	}
	return overrides
}

// customSubstitutions turns every custom encoder entry into a tuple. Custom
// entries have highest priority and are always included.
func (a *TextAnonymizer) customSubstitutions() []substitution {
	var subs []substitution
	for _, key := range sortedEncoderKeys(a.customEncoder) {
		enclosure := IdentifyEnclosure(key)
		cleanKey := strings.ToUpper(StripEnclosure(key))
		cleanValue := strings.ToUpper(StripEnclosure(a.customEncoder[key]))

		kind := KindString
		switch {
		case enclosure == EnclosureApostrophe:
			if _, ok := a.formats.Match(cleanKey); ok {
				kind = KindDateTime
			}
		case isFloat(cleanKey):
			kind = KindNumber
		}

		subs = append(subs, substitution{
			token:       Token{Value: cleanKey, Enclosure: enclosure, Kind: kind},
			replacement: cleanValue,
		})
	}
	return subs
}

// generate produces the anonymized replacement for one token, re-drawing
// perturbed values whose decoder key would collide with usedKeys.
func (a *TextAnonymizer) generate(t Token, overrides map[string]map[byte]byte, usedKeys map[string]bool) (string, bool) {
	gen := func() string {
		switch t.Kind {
		case KindDateTime:
			return perturbDate(t.Value, a.formats, a.rnd)
		case KindNumber:
			return perturbNumber(t.Value, a.rnd, a.now())
		default:
			if override, ok := overrides[t.Value]; ok {
				return substituteWithOverride(t.Value, override)
			}
			return a.key.Substitute(t.Value)
		}
	}

	replacement := gen()
	if t.Kind == KindString {
		// Character substitution is deterministic, a re-draw cannot help.
		if usedKeys[t.Enclosure.Wrap(replacement)] {
			return "", false
		}
		return replacement, true
	}
	for i := 0; i < maxPerturbRetries; i++ {
		if !usedKeys[t.Enclosure.Wrap(replacement)] && replacement != "" {
			return replacement, true
		}
		replacement = gen()
	}
	// Unchanged pass-through values (small numbers) legitimately map to
	// themselves; only a key collision with another entry is fatal.
	if !usedKeys[t.Enclosure.Wrap(replacement)] {
		return replacement, true
	}
	return "", false
}

// reconcile merges the custom encoder entries with generated substitutions
// into one authoritative tuple set. Generated entries are skipped when the
// (value, enclosure, kind) triple is already covered, and when their
// replacement would break the decoder dictionary bijection.
func (a *TextAnonymizer) reconcile(tokens []Token) []substitution {
	subs := a.customSubstitutions()

	covered := make(map[Token]bool, len(subs))
	usedKeys := make(map[string]bool, len(subs))
	for _, s := range subs {
		covered[s.token] = true
		usedKeys[s.wrappedKey()] = true
	}

	overrides := a.customCipherOverrides()
	for _, t := range tokens {
		if covered[t] {
			continue
		}
		replacement, ok := a.generate(t, overrides, usedKeys)
		if !ok {
			log.Warnf("skipping token %q (%s): could not produce a collision-free replacement", t.Value, t.Kind)
			continue
		}
		s := substitution{token: t, replacement: replacement}
		covered[t] = true
		usedKeys[s.wrappedKey()] = true
		subs = append(subs, s)
	}
	return subs
}
