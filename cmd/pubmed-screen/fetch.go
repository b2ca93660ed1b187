// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-screen/internal/classify"
	"github.com/pdiddy/pubmed-screen/internal/eutils"
	"github.com/pdiddy/pubmed-screen/internal/screen"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxResults = 100
	defaultChunkSize  = 100
	defaultUserAgent  = "pubmed-screen/0.1"
	defaultTool       = "pubmed-screen"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <query>...",
	Short: "Fetch papers for a query and flag industry-affiliated authors",
	Long: `Fetch resolves a PubMed query to PMIDs, retrieves each record's metadata,
classifies author affiliations against the company-keyword list, and writes
a CSV with one row per record. Without --file the CSV goes to stdout;
progress messages go to stderr either way.

Records that fail to parse are logged and excluded from the output. The run
still exits 0: partial success is success.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("file", "f", "", "CSV output path (default: stdout)")
	fetchCmd.Flags().String("run-file", "", "write a YAML run record to this path")
	fetchCmd.Flags().BoolP("debug", "d", false, "print request URLs and response sizes")
	fetchCmd.Flags().Int("max-results", 0, "maximum number of PMIDs to resolve (default 100)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Int("chunk-size", 0, "PMIDs per efetch request (default 100)")
	fetchCmd.Flags().String("keywords-file", "", "YAML file with the company-keyword list")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query cannot be empty or whitespace")
	}

	cfg := eutilsConfig(cmd)
	client := eutils.NewClient(cfg)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		client.Debug = os.Stderr
	}

	keywords, err := resolveKeywords(cmd)
	if err != nil {
		return err
	}
	cls := classify.New(keywords)

	file, _ := cmd.Flags().GetString("file")
	runFile, _ := cmd.Flags().GetString("run-file")
	expCfg := types.ExportConfig{File: file, RunFile: runFile}

	_, err = screen.Run(context.Background(), client, cls, expCfg, query, os.Stderr)
	return err
}

// eutilsConfig builds the client configuration. Flags take precedence
// over the config file, which takes precedence over defaults. Credentials
// come from .secrets/.
func eutilsConfig(cmd *cobra.Command) types.EutilsConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("eutils.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("eutils.max_results")
	}
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}

	chunkSize, _ := cmd.Flags().GetInt("chunk-size")
	if chunkSize == 0 {
		chunkSize = viper.GetInt("eutils.chunk_size")
	}
	if chunkSize == 0 {
		chunkSize = defaultChunkSize
	}

	tool := viper.GetString("eutils.tool")
	if tool == "" {
		tool = defaultTool
	}

	return types.EutilsConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxResults: maxResults,
		ChunkSize:  chunkSize,
		Tool:       tool,
		Email:      loadedSecrets.Email,
		APIKey:     loadedSecrets.APIKey,
	}
}

// resolveKeywords returns the keyword list: --keywords-file wins, then the
// classify.keywords config key, then the compiled-in defaults.
func resolveKeywords(cmd *cobra.Command) ([]string, error) {
	if path, _ := cmd.Flags().GetString("keywords-file"); path != "" {
		return classify.LoadKeywordFile(path)
	}
	if kws := viper.GetStringSlice("classify.keywords"); len(kws) > 0 {
		return kws, nil
	}
	return classify.DefaultKeywords(), nil
}
