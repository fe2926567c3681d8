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
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yugabyte/query-anonymizer/src/keywords"
	"github.com/yugabyte/query-anonymizer/src/utils"
)

var (
	keywordsListGroup          string
	keywordsListCustom         []string
	keywordsListCustomFilePath string
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the reserved keywords for a dialect group.",

	Run: func(cmd *cobra.Command, args []string) {
		combined := appendJSONArrayFile(keywordsListCustom, keywordsListCustomFilePath)
		list, err := keywords.List(keywordsListGroup, combined)
		if err != nil {
			utils.ErrExit("ERROR: %v", err)
		}
		if len(list) == 0 {
			return
		}
		headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
		fmt.Println(headerfmt(fmt.Sprintf("Keywords list has %d elements:", len(list))))
		for _, keyword := range list {
			fmt.Println(keyword)
		}
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().StringVar(&keywordsListGroup, "keywords-group", "SQL",
		"reserved keywords dialect: SQL, TSQL, MySQL, PLSQL, DAX or CUSTOM_ONLY")
	keywordsCmd.Flags().StringSliceVar(&keywordsListCustom, "custom-keywords", nil,
		"additional reserved words to include in the listing")
	keywordsCmd.Flags().StringVar(&keywordsListCustomFilePath, "custom-keywords-file", "",
		"path to a JSON array of additional reserved words")
}
