// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-screen/internal/classify"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the effective company-keyword list",
	Long: `Keywords prints the keyword list the classifier would use, one per
line, after applying the resolution order: --keywords-file, then the
classify.keywords config key, then the compiled-in defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kws, err := resolveKeywords(cmd)
		if err != nil {
			return err
		}
		for _, kw := range classify.New(kws).Keywords() {
			fmt.Println(kw)
		}
		return nil
	},
}

func init() {
	keywordsCmd.Flags().String("keywords-file", "", "YAML file with the company-keyword list")

	rootCmd.AddCommand(keywordsCmd)
}
