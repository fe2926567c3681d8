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
	"regexp"
	"strings"
)

var (
	queryTagBlockRe  = regexp.MustCompile(`(?is)<query>(.*?)</query>`)
	promptTagBlockRe = regexp.MustCompile(`(?is)<prompt>(.*?)</prompt>`)
	queryTagRe       = regexp.MustCompile(`(?i)</?query>`)
	promptTagRe      = regexp.MustCompile(`(?i)</?prompt>`)

	// Extraction priority per match: apostrophes, quotation marks, square
	// brackets, curly brackets, bare word/number run.
	extractRe  = regexp.MustCompile(`'(.*?)'|"(.*?)"|\[([^\]]*)\]|\{([^}]*)\}|([\w-]+)`)
	enclosedRe = regexp.MustCompile(`'(.*?)'|"(.*?)"|\[([^\]]*)\]|\{([^}]*)\}`)
)

// rawToken is a tokenizer candidate before semantic classification.
type rawToken struct {
	value     string
	enclosure EnclosureKind
}

// mergeEmbeddedBlocks resolves <query>/<prompt> cross-embedding: either
// blob may temporarily embed the other, and the embedded blocks belong to
// the blob named by the tag.
func mergeEmbeddedBlocks(query, prompt string) (queryText, promptText string) {
	var embeddedQuery []string
	for _, m := range queryTagBlockRe.FindAllStringSubmatch(prompt, -1) {
		embeddedQuery = append(embeddedQuery, m[1])
	}
	queryText = strings.Join(embeddedQuery, " ") + " " + promptTagBlockRe.ReplaceAllString(query, "")

	var embeddedPrompt []string
	for _, m := range promptTagBlockRe.FindAllStringSubmatch(query, -1) {
		embeddedPrompt = append(embeddedPrompt, m[1])
	}
	promptText = strings.Join(embeddedPrompt, " ") + " " + queryTagBlockRe.ReplaceAllString(prompt, "")
	return queryText, promptText
}

// enclosureEnabled gates extraction per enclosure kind; a disabled
// enclosure is not tokenized at all and its contents pass through.
func (o Options) enclosureEnabled(e EnclosureKind) bool {
	switch e {
	case EnclosureApostrophe:
		return o.InsideApostrophes
	case EnclosureQuote:
		return o.InsideQuotationMarks
	case EnclosureSquareBracket:
		return o.InsideSquareBrackets
	case EnclosureCurlyBrace:
		return o.InsideCurlyBrackets
	default:
		return true
	}
}

// submatch groups of extractRe/enclosedRe, in priority order.
var extractionKinds = []EnclosureKind{
	EnclosureApostrophe,
	EnclosureQuote,
	EnclosureSquareBracket,
	EnclosureCurlyBrace,
}

func (a *TextAnonymizer) extractTokens(text string, re *regexp.Regexp, includeBare bool) []rawToken {
	var tokens []rawToken
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		matched := false
		for i, kind := range extractionKinds {
			if m[i+1] == "" {
				continue
			}
			matched = true
			if a.opts.enclosureEnabled(kind) {
				tokens = append(tokens, rawToken{value: strings.ToUpper(m[i+1]), enclosure: kind})
			}
			break
		}
		if !matched && includeBare && len(m) > 5 && m[5] != "" {
			tokens = append(tokens, rawToken{value: strings.ToUpper(m[5]), enclosure: EnclosureNone})
		}
	}
	return tokens
}

// findCustomTokens locates the configured custom tokens in text using
// boundary-safe patterns, so a custom token is picked up both bare and in
// any enclosure.
func (a *TextAnonymizer) findCustomTokens(text string) []rawToken {
	var tokens []rawToken
	for _, token := range a.customTokenList {
		p := buildBoundaryPattern(token)
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			if e := IdentifyEnclosure(match); e != EnclosureNone {
				tokens = append(tokens, rawToken{value: strings.ToUpper(StripEnclosure(match)), enclosure: e})
				continue
			}
			if !boundaryClear(text, loc[0], loc[1]) {
				continue
			}
			tokens = append(tokens, rawToken{value: strings.ToUpper(match), enclosure: EnclosureNone})
		}
	}
	return tokens
}

// tokenize extracts the de-duplicated candidate set from the merged query
// and prompt text. Bare tokens come from the query text only; the prompt
// contributes enclosed literals and custom tokens.
func (a *TextAnonymizer) tokenize(queryText, promptText string) []rawToken {
	var candidates []rawToken
	candidates = append(candidates, a.extractTokens(queryText, extractRe, true)...)
	candidates = append(candidates, a.extractTokens(promptText, enclosedRe, false)...)

	seen := make(map[rawToken]bool)
	var unique []rawToken
	for _, t := range candidates {
		if seen[t] || len(t.value) < a.opts.MinTokenLength {
			continue
		}
		seen[t] = true
		unique = append(unique, t)
	}

	for _, t := range a.findCustomTokens(promptText) {
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}

	// Reserved keywords are only protected in bare position; a quoted
	// keyword is a literal and stays anonymizable.
	var out []rawToken
	for _, t := range unique {
		if t.enclosure == EnclosureNone && a.keywords[t.value] {
			continue
		}
		out = append(out, t)
	}
	return out
}
