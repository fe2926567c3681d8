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

// Options is the immutable configuration for one anonymization run. It is
// passed by value into the engine; components never share hidden state.
type Options struct {
	// KeywordsGroup selects the reserved-word dialect (see src/keywords).
	KeywordsGroup string
	// CustomKeywords are additional reserved words, never anonymized.
	CustomKeywords []string
	// CustomTokens are always anonymized, even when they collide with a
	// reserved keyword.
	CustomTokens []string
	// CustomEncoderDictionary maps original-form tokens (optionally
	// enclosed) to their desired anonymized forms.
	CustomEncoderDictionary map[string]string

	InsideApostrophes    bool
	InsideQuotationMarks bool
	InsideSquareBrackets bool
	InsideCurlyBrackets  bool

	AnonymizeNumbers bool
	AnonymizeDates   bool

	// MinTokenLength drops extracted tokens shorter than this.
	MinTokenLength int

	DateFormat     string
	TimeFormat     string
	DateTimeFormat string
}

func DefaultOptions() Options {
	return Options{
		KeywordsGroup:     "SQL",
		InsideApostrophes: true,
		AnonymizeNumbers:  true,
		AnonymizeDates:    true,
		MinTokenLength:    3,
		DateFormat:        DefaultDateFormat,
		TimeFormat:        DefaultTimeFormat,
		DateTimeFormat:    DefaultDateTimeFormat,
	}
}
