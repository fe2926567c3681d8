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

// Package textfile reads and writes text files with UTF-8 first, Latin-1
// fallback decoding. The encoding detected on read is carried so output
// can be written back in the same encoding.
package textfile

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingLatin1
)

func (e Encoding) String() string {
	if e == EncodingLatin1 {
		return "latin-1"
	}
	return "utf-8"
}

// ReadFile returns the file content as a UTF-8 string plus the encoding it
// was decoded from. Any byte sequence is valid Latin-1, so the fallback
// cannot fail; only I/O errors surface.
func ReadFile(path string) (string, Encoding, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return "", EncodingUTF8, fmt.Errorf("read file %s: %w", path, err)
	}
	if utf8.Valid(bs) {
		return string(bs), EncodingUTF8, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(bs)
	if err != nil {
		return "", EncodingLatin1, fmt.Errorf("decode file %s as latin-1: %w", path, err)
	}
	return string(decoded), EncodingLatin1, nil
}

// WriteFile writes content re-encoded with enc.
func WriteFile(path, content string, enc Encoding) error {
	bs := []byte(content)
	if enc == EncodingLatin1 {
		encoded, err := charmap.ISO8859_1.NewEncoder().Bytes(bs)
		if err != nil {
			return fmt.Errorf("encode content for %s as latin-1: %w", path, err)
		}
		bs = encoded
	}
	if err := os.WriteFile(path, bs, 0644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}

// DecodeJSONFile unmarshals a JSON file into v using the fallback decoding.
// Malformed JSON is a hard failure surfaced to the caller.
func DecodeJSONFile(path string, v any) error {
	content, _, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("unmarshal json file %s: %w", path, err)
	}
	return nil
}
