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
package textfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 'Zürich'"), 0644))

	content, enc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, "SELECT 'Zürich'", content)
}

func TestReadFileLatin1Fallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.sql")
	// 0xFC is ü in Latin-1 and an invalid UTF-8 sequence on its own.
	require.NoError(t, os.WriteFile(path, []byte{'Z', 0xFC, 'r', 'i', 'c', 'h'}, 0644))

	content, enc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingLatin1, enc)
	assert.Equal(t, "Zürich", content)
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()

	utf8Path := filepath.Join(dir, "utf8.txt")
	require.NoError(t, WriteFile(utf8Path, "café", EncodingUTF8))
	content, enc, err := ReadFile(utf8Path)
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, "café", content)

	latinPath := filepath.Join(dir, "latin1.txt")
	require.NoError(t, WriteFile(latinPath, "café", EncodingLatin1))
	content, enc, err = ReadFile(latinPath)
	require.NoError(t, err)
	assert.Equal(t, EncodingLatin1, enc)
	assert.Equal(t, "café", content)
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDecodeJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`["acme", "warsaw"]`), 0644))

	var tokens []string
	require.NoError(t, DecodeJSONFile(path, &tokens))
	assert.Equal(t, []string{"acme", "warsaw"}, tokens)
}

func TestDecodeJSONFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	var v map[string]string
	assert.Error(t, DecodeJSONFile(path, &v))
}

func TestEncodingString(t *testing.T) {
	assert.Equal(t, "utf-8", EncodingUTF8.String())
	assert.Equal(t, "latin-1", EncodingLatin1.String())
}
