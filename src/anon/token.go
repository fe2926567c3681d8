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

// EnclosureKind identifies the quoting convention delimiting a literal in
// the source text.
type EnclosureKind int

const (
	EnclosureNone EnclosureKind = iota
	EnclosureApostrophe
	EnclosureQuote
	EnclosureSquareBracket
	EnclosureCurlyBrace
)

func (e EnclosureKind) String() string {
	switch e {
	case EnclosureApostrophe:
		return "apostrophes"
	case EnclosureQuote:
		return "quotation_marks"
	case EnclosureSquareBracket:
		return "square_brackets"
	case EnclosureCurlyBrace:
		return "curly_brackets"
	default:
		return "none"
	}
}

// Open returns the opening delimiter, or "" for EnclosureNone.
func (e EnclosureKind) Open() string {
	switch e {
	case EnclosureApostrophe:
		return "'"
	case EnclosureQuote:
		return `"`
	case EnclosureSquareBracket:
		return "["
	case EnclosureCurlyBrace:
		return "{"
	default:
		return ""
	}
}

// Close returns the closing delimiter, or "" for EnclosureNone.
func (e EnclosureKind) Close() string {
	switch e {
	case EnclosureApostrophe:
		return "'"
	case EnclosureQuote:
		return `"`
	case EnclosureSquareBracket:
		return "]"
	case EnclosureCurlyBrace:
		return "}"
	default:
		return ""
	}
}

// Wrap surrounds s with the enclosure delimiters.
func (e EnclosureKind) Wrap(s string) string {
	return e.Open() + s + e.Close()
}

// TokenKind is the semantic type assigned to an extracted token.
type TokenKind int

const (
	KindString TokenKind = iota
	KindNumber
	KindDateTime
)

func (k TokenKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDateTime:
		return "datetime"
	default:
		return "string"
	}
}

// Token is a candidate literal extracted from the input text. Value holds
// the upper-cased surface form without enclosure characters. Tokens are
// immutable once classified.
type Token struct {
	Value     string
	Enclosure EnclosureKind
	Kind      TokenKind
}
