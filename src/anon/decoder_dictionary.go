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
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// DecoderEntry maps one anonymized surface form back to its original form,
// both including their enclosure characters verbatim.
type DecoderEntry struct {
	Key   string // anonymized form
	Value string // original form
}

// DecoderDictionary is the persisted bijective mapping from anonymized form
// to original form. It serializes as a JSON object whose keys are ordered
// by the key with enclosure punctuation stripped.
type DecoderDictionary struct {
	entries []DecoderEntry
	index   map[string]int
}

func NewDecoderDictionary() *DecoderDictionary {
	return &DecoderDictionary{index: make(map[string]int)}
}

func (d *DecoderDictionary) Len() int {
	return len(d.entries)
}

// Entries returns the pairs in insertion order.
func (d *DecoderDictionary) Entries() []DecoderEntry {
	out := make([]DecoderEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *DecoderDictionary) Get(key string) (string, bool) {
	i, ok := d.index[key]
	if !ok {
		return "", false
	}
	return d.entries[i].Value, true
}

// HasValue reports whether any entry already decodes to value.
func (d *DecoderDictionary) HasValue(value string) bool {
	for _, e := range d.entries {
		if e.Value == value {
			return true
		}
	}
	return false
}

// Set inserts or overwrites the mapping for key.
func (d *DecoderDictionary) Set(key, value string) {
	if i, ok := d.index[key]; ok {
		d.entries[i].Value = value
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, DecoderEntry{Key: key, Value: value})
}

// Merge folds other into d. An incoming pair is accepted only if its value
// does not collide with an already-used value, or if it redeclares an
// identical mapping. Genuine collisions are dropped; the drop is logged so
// it is at least visible to the operator.
func (d *DecoderDictionary) Merge(other *DecoderDictionary) {
	for _, e := range other.entries {
		if existing, ok := d.Get(e.Key); ok && existing == e.Value {
			continue
		}
		if d.HasValue(e.Value) {
			log.Warnf("decoder dictionary merge: dropping %q -> %q, value already in use", e.Key, e.Value)
			continue
		}
		d.Set(e.Key, e.Value)
	}
}

// Validate enforces the dictionary invariant: pairwise distinct keys,
// pairwise distinct values, and equal literal length for every pair.
// Length parity is over characters, not bytes: an accented original is the
// same width as its transliterated replacement.
func (d *DecoderDictionary) Validate() error {
	seenValues := make(map[string]bool, len(d.entries))
	for _, e := range d.entries {
		if seenValues[e.Value] {
			return fmt.Errorf("decoder value %q is not unique", e.Value)
		}
		seenValues[e.Value] = true
		if utf8.RuneCountInString(e.Key) != utf8.RuneCountInString(e.Value) {
			return fmt.Errorf("decoder pair (%q, %q) has mismatched lengths", e.Key, e.Value)
		}
	}
	return nil
}

// sortKey is the ordering key for serialization: the entry key with all
// enclosure punctuation removed.
func sortKey(key string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(boundaryRunes, r) {
			return -1
		}
		return r
	}, key)
}

// SortedEntries returns the pairs ordered by sanitized key.
func (d *DecoderDictionary) SortedEntries() []DecoderEntry {
	entries := d.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return sortKey(entries[i].Key) < sortKey(entries[j].Key)
	})
	return entries
}

// MarshalJSON writes a JSON object with stable key order. encoding/json
// would randomize map order, so the object is assembled by hand.
func (d *DecoderDictionary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.SortedEntries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving the order of its keys.
func (d *DecoderDictionary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decoder dictionary must be a JSON object")
	}
	d.entries = nil
	d.index = make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decoder dictionary key is not a string")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoder dictionary value for key %q: %w", key, err)
		}
		d.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// DecoderDictionaryFromMap builds a dictionary from a plain map, ordering
// the entries by sanitized key for determinism.
func DecoderDictionaryFromMap(m map[string]string) *DecoderDictionary {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return sortKey(keys[i]) < sortKey(keys[j]) })
	d := NewDecoderDictionary()
	for _, k := range keys {
		d.Set(k, m[k])
	}
	return d
}
