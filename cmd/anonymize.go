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
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yugabyte/query-anonymizer/src/anon"
	"github.com/yugabyte/query-anonymizer/src/utils"
	"github.com/yugabyte/query-anonymizer/src/utils/jsonfile"
	"github.com/yugabyte/query-anonymizer/src/utils/textfile"
)

var (
	queryText  string
	promptText string

	queryFilePath  string
	promptFilePath string

	keywordsGroup  string
	customKeywords []string
	customTokens   []string

	customKeywordsFilePath string
	customTokensFilePath   string

	customEncoderDictionary         string
	customEncoderDictionaryFilePath string

	anonymizedFilePath        string
	decoderDictionaryFilePath string

	insideApostrophes    bool
	insideQuotationMarks bool
	insideSquareBrackets bool
	insideCurlyBrackets  bool

	anonymizeNumbers bool
	anonymizeDates   bool

	minTokenLength int

	customDateFormat     string
	customTimeFormat     string
	customDateTimeFormat string

	printResult bool
	randomSeed  int64
)

var anonymizeCmd = &cobra.Command{
	Use:   "anonymize",
	Short: "Anonymize sensitive literals in query and prompt text.",
	Long: `Anonymize string, number and date literals in the given query and optional prompt
text, producing the rewritten text and a decoder dictionary that restores the originals.
Either blob may embed the other using <query>...</query> / <prompt>...</prompt> tags.`,

	Run: func(cmd *cobra.Command, args []string) {
		anonymizeCommandFn()
	},
}

func init() {
	rootCmd.AddCommand(anonymizeCmd)

	anonymizeCmd.Flags().StringVar(&queryText, "query", "", "query text to anonymize")
	anonymizeCmd.Flags().StringVar(&promptText, "prompt", "", "prompt text accompanying the query")
	anonymizeCmd.Flags().StringVar(&queryFilePath, "query-file", "", "path to a file with query text (appended to --query)")
	anonymizeCmd.Flags().StringVar(&promptFilePath, "prompt-file", "", "path to a file with prompt text (appended to --prompt)")

	anonymizeCmd.Flags().StringVar(&keywordsGroup, "keywords-group", "SQL",
		"reserved keywords dialect: SQL, TSQL, MySQL, PLSQL, DAX or CUSTOM_ONLY")
	anonymizeCmd.Flags().StringSliceVar(&customKeywords, "custom-keywords", nil,
		"additional reserved words, never anonymized")
	anonymizeCmd.Flags().StringSliceVar(&customTokens, "custom-tokens", nil,
		"tokens to always anonymize, even when they collide with a keyword")
	anonymizeCmd.Flags().StringVar(&customKeywordsFilePath, "custom-keywords-file", "",
		"path to a JSON array of additional reserved words")
	anonymizeCmd.Flags().StringVar(&customTokensFilePath, "custom-tokens-file", "",
		"path to a JSON array of tokens to always anonymize")
	anonymizeCmd.Flags().StringVar(&customEncoderDictionary, "custom-encoder-dictionary", "",
		"inline JSON object mapping original tokens to desired anonymized forms")
	anonymizeCmd.Flags().StringVar(&customEncoderDictionaryFilePath, "custom-encoder-dictionary-file", "",
		"path to a JSON object mapping original tokens to desired anonymized forms")

	anonymizeCmd.Flags().StringVar(&anonymizedFilePath, "anonymized-file", "",
		"path to write the anonymized prompt and query")
	anonymizeCmd.Flags().StringVar(&decoderDictionaryFilePath, "decoder-dictionary-file", "",
		"path to write the decoder dictionary JSON")

	anonymizeCmd.Flags().BoolVar(&insideApostrophes, "anonymize-inside-apostrophes", true,
		"anonymize literals enclosed in apostrophes")
	anonymizeCmd.Flags().BoolVar(&insideQuotationMarks, "anonymize-inside-quotation-marks", false,
		"anonymize literals enclosed in quotation marks")
	anonymizeCmd.Flags().BoolVar(&insideSquareBrackets, "anonymize-inside-square-brackets", false,
		"anonymize literals enclosed in square brackets")
	anonymizeCmd.Flags().BoolVar(&insideCurlyBrackets, "anonymize-inside-curly-brackets", false,
		"anonymize literals enclosed in curly brackets")

	anonymizeCmd.Flags().BoolVar(&anonymizeNumbers, "anonymize-numbers", true,
		"anonymize numeric literals")
	anonymizeCmd.Flags().BoolVar(&anonymizeDates, "anonymize-dates", true,
		"anonymize date/time literals")
	anonymizeCmd.Flags().IntVar(&minTokenLength, "min-token-length", 3,
		"minimum length of tokens considered for anonymization")

	anonymizeCmd.Flags().StringVar(&customDateFormat, "date-format", anon.DefaultDateFormat,
		"date format, token notation (YYYY-MM-DD) or Go layout")
	anonymizeCmd.Flags().StringVar(&customTimeFormat, "time-format", anon.DefaultTimeFormat,
		"time format, token notation (HH:mm:ss) or Go layout")
	anonymizeCmd.Flags().StringVar(&customDateTimeFormat, "datetime-format", anon.DefaultDateTimeFormat,
		"datetime format, token notation or Go layout")

	anonymizeCmd.Flags().BoolVar(&printResult, "print", true,
		"print the anonymized text and decoder dictionary to the console")
	anonymizeCmd.Flags().Int64Var(&randomSeed, "seed", 0,
		"seed for the random source (0 picks a time-based seed)")
}

func anonymizeCommandFn() {
	query := loadTextWithFile(queryText, queryFilePath)
	prompt := loadTextWithFile(promptText, promptFilePath)
	if query == "" && prompt == "" {
		utils.ErrExit("ERROR: nothing to anonymize, provide --query, --prompt or the corresponding file flags")
	}

	keywordList := appendJSONArrayFile(customKeywords, customKeywordsFilePath)
	tokenList := appendJSONArrayFile(customTokens, customTokensFilePath)
	encoderDictionary := loadEncoderDictionary()

	opts := anon.Options{
		KeywordsGroup:           keywordsGroup,
		CustomKeywords:          keywordList,
		CustomTokens:            tokenList,
		CustomEncoderDictionary: encoderDictionary,
		InsideApostrophes:       insideApostrophes,
		InsideQuotationMarks:    insideQuotationMarks,
		InsideSquareBrackets:    insideSquareBrackets,
		InsideCurlyBrackets:     insideCurlyBrackets,
		AnonymizeNumbers:        anonymizeNumbers,
		AnonymizeDates:          anonymizeDates,
		MinTokenLength:          minTokenLength,
		DateFormat:              customDateFormat,
		TimeFormat:              customTimeFormat,
		DateTimeFormat:          customDateTimeFormat,
	}

	seed := randomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	anonymizer, err := anon.NewTextAnonymizer(opts, rand.New(rand.NewSource(seed)))
	if err != nil {
		utils.ErrExit("ERROR: %v", err)
	}

	result, err := anonymizer.Anonymize(query, prompt)
	if err != nil {
		utils.ErrExit("ERROR: anonymization failed: %v", err)
	}
	log.Infof("anonymization produced %d decoder entries", result.Decoder.Len())

	if printResult {
		if result.Prompt != "" {
			fmt.Println(result.Prompt + "\n")
		}
		if result.Query != "" {
			fmt.Println(result.Query + "\n")
		}
		printDecoderDictionary(result.Decoder)
	}

	if decoderDictionaryFilePath != "" {
		err := jsonfile.NewJsonFile[anon.DecoderDictionary](decoderDictionaryFilePath).Create(result.Decoder)
		if err != nil {
			utils.ErrExit("ERROR: writing decoder dictionary: %v", err)
		}
	}
	if anonymizedFilePath != "" {
		content := fmt.Sprintf("%s\n%s", result.Prompt, result.Query)
		err := textfile.WriteFile(anonymizedFilePath, content, textfile.EncodingUTF8)
		if err != nil {
			utils.ErrExit("ERROR: writing anonymized text: %v", err)
		}
	}
}

// loadTextWithFile appends file content to inline text, newline-joined.
func loadTextWithFile(inline, path string) string {
	if path == "" {
		return inline
	}
	content, _, err := textfile.ReadFile(path)
	if err != nil {
		utils.ErrExit("ERROR: %v", err)
	}
	if inline != "" {
		inline += "\n"
	}
	return inline + content
}

func appendJSONArrayFile(inline []string, path string) []string {
	if path == "" {
		return inline
	}
	var fromFile []string
	if err := textfile.DecodeJSONFile(path, &fromFile); err != nil {
		utils.ErrExit("ERROR: %v", err)
	}
	return append(inline, fromFile...)
}

// loadEncoderDictionary combines the inline and file-based custom encoder
// dictionaries. An incoming file pair is accepted only if its value is not
// already used, or if it redeclares an identical mapping.
func loadEncoderDictionary() map[string]string {
	combined := make(map[string]string)
	if customEncoderDictionary != "" {
		if err := json.Unmarshal([]byte(customEncoderDictionary), &combined); err != nil {
			utils.ErrExit("ERROR: parsing --custom-encoder-dictionary: %v", err)
		}
	}
	if customEncoderDictionaryFilePath == "" {
		return combined
	}

	var fromFile map[string]string
	if err := textfile.DecodeJSONFile(customEncoderDictionaryFilePath, &fromFile); err != nil {
		utils.ErrExit("ERROR: %v", err)
	}
	usedValues := make(map[string]bool, len(combined))
	for _, v := range combined {
		usedValues[v] = true
	}
	for k, v := range fromFile {
		if existing, ok := combined[k]; ok && existing == v {
			continue
		}
		if usedValues[v] {
			log.Warnf("custom encoder dictionary: dropping %q -> %q from file, value already in use", k, v)
			continue
		}
		combined[k] = v
		usedValues[v] = true
	}
	return combined
}
