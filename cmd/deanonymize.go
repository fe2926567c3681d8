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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yugabyte/query-anonymizer/src/anon"
	"github.com/yugabyte/query-anonymizer/src/utils"
	"github.com/yugabyte/query-anonymizer/src/utils/jsonfile"
	"github.com/yugabyte/query-anonymizer/src/utils/textfile"
)

var (
	anonymizedText            string
	deanonAnonymizedFilePath  string
	decoderDictionaryInline   string
	decoderDictionaryReadPath string
	deanonymizedFilePath      string
	deanonPrintResult         bool
)

var deanonymizeCmd = &cobra.Command{
	Use:   "deanonymize",
	Short: "Restore anonymized text using a decoder dictionary.",
	Long: `Restore the original text from its anonymized form. The decoder dictionary can be
supplied inline as JSON, loaded from the file written by the anonymize command, or both.
An invalid dictionary (duplicate keys or values, length mismatches) is refused outright.`,

	Run: func(cmd *cobra.Command, args []string) {
		deanonymizeCommandFn()
	},
}

func init() {
	rootCmd.AddCommand(deanonymizeCmd)

	deanonymizeCmd.Flags().StringVar(&anonymizedText, "text", "", "anonymized text to restore")
	deanonymizeCmd.Flags().StringVar(&deanonAnonymizedFilePath, "anonymized-file", "",
		"path to a file with the anonymized text")
	deanonymizeCmd.Flags().StringVar(&decoderDictionaryInline, "decoder-dictionary", "",
		"inline JSON object mapping anonymized forms to originals")
	deanonymizeCmd.Flags().StringVar(&decoderDictionaryReadPath, "decoder-dictionary-file", "",
		"path to the decoder dictionary JSON written by anonymize")
	deanonymizeCmd.Flags().StringVar(&deanonymizedFilePath, "deanonymized-file", "",
		"path to write the restored text (written with the encoding detected on read)")
	deanonymizeCmd.Flags().BoolVar(&deanonPrintResult, "print", true,
		"print the restored text to the console")
}

func deanonymizeCommandFn() {
	dict := anon.NewDecoderDictionary()
	if decoderDictionaryInline != "" {
		inline := make(map[string]string)
		if err := json.Unmarshal([]byte(decoderDictionaryInline), &inline); err != nil {
			utils.ErrExit("ERROR: parsing --decoder-dictionary: %v", err)
		}
		dict = anon.DecoderDictionaryFromMap(inline)
	}
	if decoderDictionaryReadPath != "" {
		fromFile, err := jsonfile.NewJsonFile[anon.DecoderDictionary](decoderDictionaryReadPath).Read()
		if err != nil {
			utils.ErrExit("ERROR: %v", err)
		}
		dict.Merge(fromFile)
	}
	if dict.Len() == 0 {
		utils.ErrExit("ERROR: no decoder dictionary given, provide --decoder-dictionary or --decoder-dictionary-file")
	}

	text := anonymizedText
	encoding := textfile.EncodingUTF8
	if deanonAnonymizedFilePath != "" {
		var err error
		text, encoding, err = textfile.ReadFile(deanonAnonymizedFilePath)
		if err != nil {
			utils.ErrExit("ERROR: %v", err)
		}
	}

	restored, err := anon.Deanonymize(text, dict)
	if err != nil {
		utils.ErrExit("ERROR: deanonymization failed: %v", err)
	}

	if deanonPrintResult {
		fmt.Println(restored)
	}
	if deanonymizedFilePath != "" {
		if err := textfile.WriteFile(deanonymizedFilePath, restored, encoding); err != nil {
			utils.ErrExit("ERROR: writing deanonymized text: %v", err)
		}
	}
}
