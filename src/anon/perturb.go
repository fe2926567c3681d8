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
	"math/rand"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// smallNumberCutoff: integers at or below this are treated as non-sensitive
// magnitudes (LIMIT clauses and the like) and pass through unchanged.
const smallNumberCutoff = 99

// yearBracket keeps anonymized years statistically indistinguishable from
// real ones: a value inside a bracket is replaced by another value drawn
// uniformly from the same bracket.
type yearBracket struct {
	lo, hi int
}

func yearBrackets(currentYear int) []yearBracket {
	return []yearBracket{
		{1950, currentYear - 6},
		{currentYear - 5, currentYear},
		{currentYear + 1, currentYear + 10},
		{currentYear + 11, currentYear + 30},
	}
}

// perturbNumber produces a format-preserving replacement for a numeric
// literal. Non-integer literals are returned unchanged.
func perturbNumber(value string, rnd *rand.Rand, now time.Time) string {
	n, err := strconv.Atoi(value)
	if err != nil {
		return value
	}
	if n <= smallNumberCutoff {
		return value
	}

	for _, b := range yearBrackets(now.Year()) {
		if n >= b.lo && n <= b.hi {
			return padZeros(strconv.Itoa(b.lo+rnd.Intn(b.hi-b.lo+1)), len(value))
		}
	}

	// Same decimal digit-length as the canonical form of the number.
	length := len(strconv.Itoa(n))
	min := 1
	for i := 1; i < length; i++ {
		min *= 10
	}
	max := min*10 - 1
	return padZeros(strconv.Itoa(min+rnd.Intn(max-min+1)), len(value))
}

// padZeros restores the literal's zero padding so the replacement keeps the
// exact lexical width of the original, e.g. 0500 draws a 3-digit number and
// comes back 4 characters wide.
func padZeros(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// perturbDate re-renders the literal in its matched format after shifting
// it by a random offset whose magnitude depends on the format granularity.
func perturbDate(value string, fs *formatSet, rnd *rand.Rand) string {
	m, ok := fs.Match(value)
	if !ok {
		return value
	}
	t, err := time.Parse(m.layout, value)
	if err != nil {
		log.Warnf("date %q matched format %q but failed to parse: %v", value, m.source, err)
		return value
	}

	var delta time.Duration
	switch {
	case m.hasYear() && m.hasHour():
		delta = time.Duration(1+rnd.Intn(10000)) * time.Minute
	case m.hasYear():
		delta = time.Duration(1+rnd.Intn(100)) * 24 * time.Hour
	case m.hasHour():
		delta = time.Duration(1+rnd.Intn(700)) * time.Minute
	default:
		return value
	}
	if rnd.Intn(2) == 0 {
		delta = -delta
	}
	return t.Add(delta).Format(m.layout)
}
