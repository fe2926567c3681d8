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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextAnonymizerRequiresRand(t *testing.T) {
	_, err := NewTextAnonymizer(DefaultOptions(), nil)
	assert.Error(t, err)
}

func TestNewTextAnonymizerUnknownGroup(t *testing.T) {
	opts := DefaultOptions()
	opts.KeywordsGroup = "COBOL"
	_, err := NewTextAnonymizer(opts, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COBOL")
}

func TestAnonymizeRoundTrip(t *testing.T) {
	query := "SELECT name, city FROM customers " +
		"WHERE signup_date = '2023-05-10' AND budget = 125000 AND city = 'Gdansk'"
	prompt := "Total budget for 'Gdansk' this year"

	a := newTestAnonymizer(t, DefaultOptions())
	res, err := a.Anonymize(query, prompt)
	require.NoError(t, err)

	// Sensitive literals must be gone from both blobs.
	for _, secret := range []string{"name", "city", "customers", "signup_date", "2023-05-10", "125000", "Gdansk", "budget"} {
		assert.NotContains(t, strings.ToUpper(res.Query), strings.ToUpper(secret))
		assert.NotContains(t, strings.ToUpper(res.Prompt), strings.ToUpper(secret))
	}
	// Reserved keywords survive in place.
	assert.Contains(t, res.Query, "SELECT")
	assert.Contains(t, res.Query, "FROM")
	assert.Contains(t, res.Query, "WHERE")

	require.NoError(t, res.Decoder.Validate())

	restoredQuery, err := Deanonymize(res.Query, res.Decoder)
	require.NoError(t, err)
	assert.Equal(t, query, restoredQuery)

	restoredPrompt, err := Deanonymize(res.Prompt, res.Decoder)
	require.NoError(t, err)
	assert.Equal(t, prompt, restoredPrompt)
}

func TestAnonymizeIsSeedReproducible(t *testing.T) {
	query := "SELECT name FROM customers WHERE city = 'Warsaw'"

	a1 := newTestAnonymizer(t, DefaultOptions())
	a2 := newTestAnonymizer(t, DefaultOptions())

	r1, err := a1.Anonymize(query, "")
	require.NoError(t, err)
	r2, err := a2.Anonymize(query, "")
	require.NoError(t, err)

	assert.Equal(t, r1.Query, r2.Query)
	assert.Equal(t, r1.Decoder.Entries(), r2.Decoder.Entries())
}

func TestAnonymizePreservesCase(t *testing.T) {
	a := newTestAnonymizer(t, DefaultOptions())
	res, err := a.Anonymize("SELECT * FROM Customers", "")
	require.NoError(t, err)

	entries := res.Decoder.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "CUSTOMERS", entries[0].Value)

	// Title case in the input yields title case in the output.
	key := entries[0].Key
	wantSurface := key[:1] + strings.ToLower(key[1:])
	assert.Contains(t, res.Query, wantSurface)
}

func TestAnonymizeBoundarySafety(t *testing.T) {
	a := newTestAnonymizer(t, DefaultOptions())
	res, err := a.Anonymize("SELECT id FROM orders WHERE id = 'ORDERS'", "")
	require.NoError(t, err)

	assert.NotContains(t, strings.ToUpper(res.Query), "ORDERS")
	// The bare table and the quoted literal decode independently.
	assert.Equal(t, 2, res.Decoder.Len())
	require.NoError(t, res.Decoder.Validate())

	restored, err := Deanonymize(res.Query, res.Decoder)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM orders WHERE id = 'ORDERS'", restored)
}

func TestAnonymizeNumbersToggle(t *testing.T) {
	opts := DefaultOptions()
	opts.AnonymizeNumbers = false
	a := newTestAnonymizer(t, opts)

	res, err := a.Anonymize("SELECT * FROM t WHERE amount = 125000", "")
	require.NoError(t, err)
	assert.Contains(t, res.Query, "125000")
}

func TestAnonymizeDatesToggle(t *testing.T) {
	opts := DefaultOptions()
	opts.AnonymizeDates = false
	a := newTestAnonymizer(t, opts)

	res, err := a.Anonymize("SELECT * FROM t WHERE d = '2023-05-10'", "")
	require.NoError(t, err)
	assert.Contains(t, res.Query, "'2023-05-10'")
}

func TestAnonymizeDateKeepsFormat(t *testing.T) {
	a := newTestAnonymizer(t, DefaultOptions())
	a.now = func() time.Time { return fixedNow }

	res, err := a.Anonymize("SELECT * FROM t WHERE d = '2023-05-10'", "")
	require.NoError(t, err)

	entries := res.Decoder.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "'2023-05-10'", entries[0].Value)

	shifted := StripEnclosure(entries[0].Key)
	_, err = time.Parse("2006-01-02", shifted)
	assert.NoError(t, err)
	assert.NotEqual(t, "2023-05-10", shifted)
}

func TestAnonymizeYearStaysInBracket(t *testing.T) {
	a := newTestAnonymizer(t, DefaultOptions())
	a.now = func() time.Time { return fixedNow }

	res, err := a.Anonymize("SELECT * FROM t WHERE birth_year = 1980", "")
	require.NoError(t, err)

	var year string
	for _, e := range res.Decoder.Entries() {
		if e.Value == "1980" {
			year = e.Key
		}
	}
	require.NotEmpty(t, year)
	assert.GreaterOrEqual(t, year, "1950")
	assert.LessOrEqual(t, year, "2018")
}

func TestAnonymizeZeroPaddedNumber(t *testing.T) {
	query := "SELECT * FROM t WHERE code = 0500"
	a := newTestAnonymizer(t, DefaultOptions())

	res, err := a.Anonymize(query, "")
	require.NoError(t, err)
	require.NoError(t, res.Decoder.Validate())

	var replacement string
	for _, e := range res.Decoder.Entries() {
		if e.Value == "0500" {
			replacement = e.Key
		}
	}
	require.NotEmpty(t, replacement)
	assert.Len(t, replacement, 4)

	restored, err := Deanonymize(res.Query, res.Decoder)
	require.NoError(t, err)
	assert.Equal(t, query, restored)
}

func TestAnonymizeNonASCIILiteral(t *testing.T) {
	query := "SELECT * FROM t WHERE city = 'Gdańsk'"
	a := newTestAnonymizer(t, DefaultOptions())

	res, err := a.Anonymize(query, "")
	require.NoError(t, err)
	require.NoError(t, res.Decoder.Validate())
	assert.NotContains(t, strings.ToUpper(res.Query), "GDAŃSK")

	restored, err := Deanonymize(res.Query, res.Decoder)
	require.NoError(t, err)
	assert.Equal(t, query, restored)
}

func TestAnonymizeCustomEncoderDictionary(t *testing.T) {
	opts := DefaultOptions()
	opts.CustomEncoderDictionary = map[string]string{"GDANSK": "BERLIN"}
	a := newTestAnonymizer(t, opts)

	res, err := a.Anonymize("SELECT * FROM t WHERE city = 'Gdansk'", "")
	require.NoError(t, err)

	assert.Contains(t, res.Query, "'Berlin'")
	v, ok := res.Decoder.Get("'BERLIN'")
	require.True(t, ok)
	assert.Equal(t, "'GDANSK'", v)

	restored, err := Deanonymize(res.Query, res.Decoder)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE city = 'Gdansk'", restored)
}

func TestAnonymizeCustomKeywordsSpared(t *testing.T) {
	opts := DefaultOptions()
	opts.CustomKeywords = []string{"customers"}
	a := newTestAnonymizer(t, opts)

	res, err := a.Anonymize("SELECT name FROM customers", "")
	require.NoError(t, err)
	assert.Contains(t, res.Query, "customers")
	assert.NotContains(t, strings.ToUpper(res.Query), "NAME")
}

func TestAnonymizeEmbeddedQueryTagsStripped(t *testing.T) {
	a := newTestAnonymizer(t, DefaultOptions())
	prompt := "please run <query>SELECT name FROM customers</query> for me"

	res, err := a.Anonymize("", prompt)
	require.NoError(t, err)

	assert.NotContains(t, res.Prompt, "<query>")
	assert.NotContains(t, res.Prompt, "</query>")
	// Content embedded in the prompt stays in the prompt, tokenized as
	// query text.
	assert.NotContains(t, strings.ToUpper(res.Prompt), "CUSTOMERS")
	assert.Contains(t, res.Prompt, "please run")
}

func TestAnonymizeEmptyInput(t *testing.T) {
	a := newTestAnonymizer(t, DefaultOptions())
	res, err := a.Anonymize("", "")
	require.NoError(t, err)
	assert.Equal(t, "", res.Query)
	assert.Equal(t, "", res.Prompt)
	assert.Equal(t, 0, res.Decoder.Len())
}
