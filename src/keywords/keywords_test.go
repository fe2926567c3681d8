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
package keywords

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBundledGroups(t *testing.T) {
	for _, group := range Groups {
		list, err := List(group, nil)
		require.NoError(t, err, "group %s", group)
		assert.NotEmpty(t, list)
		assert.True(t, sort.StringsAreSorted(list), "group %s must be sorted", group)
		for _, w := range list {
			assert.Equal(t, strings.ToUpper(w), w, "group %s keyword %q", group, w)
		}
	}
}

func TestListCommonKeywordsPresent(t *testing.T) {
	list, err := List("SQL", nil)
	require.NoError(t, err)

	set := make(map[string]bool, len(list))
	for _, w := range list {
		set[w] = true
	}
	for _, w := range []string{"SELECT", "FROM", "WHERE", "AND", "JOIN", "GROUP"} {
		assert.True(t, set[w], "expected %s in SQL group", w)
	}
}

func TestListDialectsExtendBase(t *testing.T) {
	sql, err := List("SQL", nil)
	require.NoError(t, err)

	for _, dialect := range []string{"TSQL", "MySQL", "PLSQL"} {
		list, err := List(dialect, nil)
		require.NoError(t, err)
		assert.Greater(t, len(list), len(sql), "dialect %s", dialect)
	}
}

func TestListCustomKeywords(t *testing.T) {
	list, err := List(CustomOnlyGroup, []string{"foo", "Bar", "FOO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"BAR", "FOO"}, list)
}

func TestListMergesCustomIntoGroup(t *testing.T) {
	list, err := List("SQL", []string{"zzz_custom"})
	require.NoError(t, err)
	assert.Contains(t, list, "ZZZ_CUSTOM")
	assert.Contains(t, list, "SELECT")
}

func TestListUnknownGroup(t *testing.T) {
	_, err := List("COBOL", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COBOL")
}
