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

// Package keywords provides the reserved-word groups per query dialect.
// Reserved words are never anonymized unless explicitly listed as custom
// tokens by the caller.
package keywords

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

//go:embed keywords.json
var keywordsJSON []byte

// CustomOnlyGroup skips the bundled resource entirely: only the caller's
// custom keywords are reserved.
const CustomOnlyGroup = "CUSTOM_ONLY"

// Groups are the dialects bundled in keywords.json.
var Groups = []string{"SQL", "TSQL", "MySQL", "PLSQL", "DAX"}

// List returns the combined reserved-word list for a dialect group plus
// custom keywords: upper-cased, de-duplicated, sorted.
func List(group string, customKeywords []string) ([]string, error) {
	var base []string
	if group != CustomOnlyGroup {
		groups := make(map[string][]string)
		if err := json.Unmarshal(keywordsJSON, &groups); err != nil {
			return nil, fmt.Errorf("decoding bundled keywords resource: %w", err)
		}
		var ok bool
		base, ok = groups[group]
		if !ok {
			return nil, fmt.Errorf("unknown keywords group %q (available: %s, %s)",
				group, strings.Join(Groups, ", "), CustomOnlyGroup)
		}
	}

	combined := lo.Map(append(base, customKeywords...), func(s string, _ int) string {
		return strings.ToUpper(s)
	})
	combined = lo.Uniq(combined)
	sort.Strings(combined)
	return combined, nil
}
