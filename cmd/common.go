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

	"github.com/yugabyte/query-anonymizer/src/anon"
)

func printDecoderDictionary(d *anon.DecoderDictionary) {
	if d.Len() == 0 {
		return
	}
	headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	fmt.Println(headerfmt(fmt.Sprintf("Decoder dictionary has %d elements:", d.Len())))
	for _, e := range d.SortedEntries() {
		fmt.Printf("%s -> %s\n", e.Key, e.Value)
	}
}
