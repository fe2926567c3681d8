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
	"math/rand"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/yugabyte/query-anonymizer/src/keywords"
)

// TextAnonymizer reversibly masks sensitive literals in query and prompt
// text. One instance holds an immutable configuration; every Anonymize call
// draws a fresh session cipher key and builds a fresh decoder dictionary.
type TextAnonymizer struct {
	opts Options

	keywords        map[string]bool
	customTokens    map[string]bool
	customTokenList []string
	customEncoder   map[string]string
	formats         *formatSet

	rnd *rand.Rand
	key CipherKey

	// now is the clock used for year-bracket number perturbation,
	// overridable in tests.
	now func() time.Time
}

// Result carries the rewritten text blobs and the decoder dictionary that
// restores them.
type Result struct {
	Query   string
	Prompt  string
	Decoder *DecoderDictionary
}

// NewTextAnonymizer resolves the reserved-keyword set for the configured
// dialect and prepares an anonymizer. rnd must be non-nil; injecting it
// keeps the randomized substitutions reproducible under a fixed seed.
func NewTextAnonymizer(opts Options, rnd *rand.Rand) (*TextAnonymizer, error) {
	if rnd == nil {
		return nil, fmt.Errorf("random source must not be nil")
	}
	if opts.MinTokenLength < 1 {
		opts.MinTokenLength = 1
	}

	keywordList, err := keywords.List(opts.KeywordsGroup, opts.CustomKeywords)
	if err != nil {
		return nil, fmt.Errorf("resolving keywords group %q: %w", opts.KeywordsGroup, err)
	}

	customTokens := make(map[string]bool, len(opts.CustomTokens))
	var customTokenList []string
	for _, t := range opts.CustomTokens {
		upper := strings.ToUpper(t)
		if !customTokens[upper] {
			customTokens[upper] = true
			customTokenList = append(customTokenList, upper)
		}
	}
	sort.Strings(customTokenList)

	// A custom token beats the keyword list: the caller explicitly asked
	// for it to be anonymized.
	keywordSet := make(map[string]bool, len(keywordList))
	for _, k := range keywordList {
		if !customTokens[k] {
			keywordSet[k] = true
		}
	}

	customEncoder := make(map[string]string, len(opts.CustomEncoderDictionary))
	for k, v := range opts.CustomEncoderDictionary {
		customEncoder[strings.ToUpper(k)] = strings.ToUpper(v)
	}

	return &TextAnonymizer{
		opts:            opts,
		keywords:        keywordSet,
		customTokens:    customTokens,
		customTokenList: customTokenList,
		customEncoder:   customEncoder,
		formats:         newFormatSet(opts.DateTimeFormat, opts.DateFormat, opts.TimeFormat),
		rnd:             rnd,
		now:             time.Now,
	}, nil
}

// Anonymize rewrites both text blobs and returns them together with the
// decoder dictionary mapping every anonymized form back to its original.
func (a *TextAnonymizer) Anonymize(query, prompt string) (*Result, error) {
	queryText, promptText := mergeEmbeddedBlocks(query, prompt)

	var tokens []Token
	for _, raw := range a.tokenize(queryText, promptText) {
		if t, ok := a.classify(raw); ok {
			tokens = append(tokens, t)
		}
	}
	log.Infof("extracted %d candidate tokens", len(tokens))

	// One cipher key per run; tokens with a custom override bypass it.
	a.key = GenerateCipherKey(a.rnd)

	subs := a.reconcile(tokens)

	// The embedding tags are dropped from the output, the embedded content
	// stays in its host blob.
	outQuery := promptTagRe.ReplaceAllString(query, "")
	outPrompt := queryTagRe.ReplaceAllString(prompt, "")

	decoder := NewDecoderDictionary()
	for _, s := range subs {
		p := patternForEnclosure(s.token.Value, s.token.Enclosure)
		replacement := s.token.Enclosure.Wrap(s.replacement)
		outQuery = replaceAll(outQuery, p, replacement)
		outPrompt = replaceAll(outPrompt, p, replacement)
		decoder.Set(s.wrappedKey(), s.wrappedValue())
	}

	if err := decoder.Validate(); err != nil {
		// Generation must never emit an invalid dictionary; this is an
		// internal invariant, not a user-facing condition.
		return nil, fmt.Errorf("generated decoder dictionary is invalid: %w", err)
	}

	return &Result{Query: outQuery, Prompt: outPrompt, Decoder: decoder}, nil
}
