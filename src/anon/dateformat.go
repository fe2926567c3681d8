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
	"time"
)

const (
	DefaultDateFormat     = "YYYY-MM-DD"
	DefaultTimeFormat     = "HH:mm:ss"
	DefaultDateTimeFormat = "YYYY-MM-DD HH:mm:ss"
)

// formatTokenReplacer rewrites token-based date notation (YYYY, MM, DD, ...)
// into Go reference-time layouts. strings.Replacer tries the patterns in
// argument order at each position, so longer tokens come first.
var formatTokenReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MMMM", "January",
	"MMM", "Jan",
	"MM", "01",
	"M", "1",
	"DDDD", "002",
	"DDD", "002",
	"DD", "02",
	"Do", "2",
	"D", "2",
	"dddd", "Monday",
	"ddd", "Mon",
	"HH", "15",
	"H", "15",
	"hh", "03",
	"h", "3",
	"A", "PM",
	"a", "pm",
	"mm", "04",
	"m", "4",
	"ss", "05",
	"s", "5",
	"ZZZ", "MST",
	"ZZ", "-0700",
	"Z", "Z07:00",
)

// tokenNotationRe decides whether a format string is token notation at all.
// The letters Y, D, H, h and s never occur in the text of any Go reference
// layout ("January", "Monday", "Jan", "PM", "MST", "Z07:00"), and neither
// do the doubled month/minute/weekday/zone tokens, so any of them marks the
// token syntax. Ambiguous single letters (M, m, d, a, A, Z) alone do not.
var tokenNotationRe = regexp.MustCompile(`[YDHhs]|MM|mm|dddd|ddd|ZZ`)

// translateFormat converts a token-notation format string to a Go layout.
// Strings already in Go layout syntax pass through unchanged.
func translateFormat(format string) string {
	if !tokenNotationRe.MatchString(format) {
		return format
	}
	return formatTokenReplacer.Replace(format)
}

// formatMatcher is one configured date/time format, holding both the
// caller-supplied form and the translated Go layout.
type formatMatcher struct {
	source string
	layout string
}

// hasYear and hasHour drive the perturbation granularity. "06" appears in
// both year layouts and nothing else; "15" and "3" only in hour layouts.
func (m formatMatcher) hasYear() bool {
	return strings.Contains(m.layout, "06")
}

func (m formatMatcher) hasHour() bool {
	return strings.Contains(m.layout, "15") || strings.Contains(m.layout, "3")
}

// formatSet is the ordered list of format matchers, tried in priority
// order: datetime first, then date, then time. The first successful parse
// wins.
type formatSet struct {
	matchers []formatMatcher
}

var anyDigitRe = regexp.MustCompile(`\d`)

func newFormatSet(datetimeFormat, dateFormat, timeFormat string) *formatSet {
	fs := &formatSet{}
	for _, f := range []string{datetimeFormat, dateFormat, timeFormat} {
		if f == "" {
			continue
		}
		fs.matchers = append(fs.matchers, formatMatcher{source: f, layout: translateFormat(f)})
	}
	return fs
}

// Match returns the first matcher that parses text. A token without digits
// never matches any date format.
func (fs *formatSet) Match(text string) (formatMatcher, bool) {
	if !anyDigitRe.MatchString(text) {
		return formatMatcher{}, false
	}
	for _, m := range fs.matchers {
		if _, err := time.Parse(m.layout, text); err == nil {
			return m, true
		}
	}
	return formatMatcher{}, false
}
