// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen runs the screening pipeline: resolve a query to PMIDs,
// fetch and parse the records, classify author affiliations, and export
// the results. Per-record failures reduce the result set; only a blank
// query, an unreachable service at the search stage, or an unwritable
// output destination abort the run.
package screen

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/pubmed-screen/internal/classify"
	"github.com/pdiddy/pubmed-screen/internal/eutils"
	"github.com/pdiddy/pubmed-screen/internal/export"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// Client is the subset of the E-utilities client the pipeline uses.
// Satisfied by *eutils.Client.
type Client interface {
	Search(ctx context.Context, query string) ([]string, error)
	Fetch(ctx context.Context, pmids []string, w io.Writer) (eutils.FetchResult, error)
}

// Summary holds the outcome of one pipeline run.
type Summary struct {
	IDsFound int
	Parsed   int
	Failed   int
	Industry int
}

// Run executes the pipeline for one query. Progress and per-record
// warnings are written to w; the CSV goes to the configured file or to
// stdout. Partial failure is success: the error return is non-nil only
// for batch-level failures.
func Run(ctx context.Context, client Client, cls *classify.Classifier, expCfg types.ExportConfig, query string, w io.Writer) (Summary, error) {
	var summary Summary

	ids, err := client.Search(ctx, query)
	if err != nil {
		return summary, fmt.Errorf("searching PubMed: %w", err)
	}
	summary.IDsFound = len(ids)
	fmt.Fprintf(w, "found %d record(s)\n", len(ids))

	var classified []types.ClassifiedPaper
	var failures []eutils.RecordFailure
	if len(ids) > 0 {
		result, err := client.Fetch(ctx, ids, w)
		if err != nil {
			return summary, fmt.Errorf("fetching records: %w", err)
		}
		classified = cls.ApplyAll(result.Papers)
		failures = result.Failures
	}

	summary.Parsed = len(classified)
	summary.Failed = len(failures)
	for _, p := range classified {
		if p.HasIndustryAuthors() {
			summary.Industry++
		}
	}

	if err := export.WriteCSVFile(expCfg.File, classified); err != nil {
		return summary, err
	}
	if expCfg.File != "" {
		fmt.Fprintf(w, "results saved to %s\n", expCfg.File)
	}

	if expCfg.RunFile != "" {
		rf := export.RunFile{
			Query: query,
			Config: export.RunConfig{
				Keywords: cls.Keywords(),
			},
			Papers: classified,
			Summary: export.RunSummary{
				IDsFound: summary.IDsFound,
				Parsed:   summary.Parsed,
				Industry: summary.Industry,
			},
		}
		for _, f := range failures {
			rf.Summary.Failed = append(rf.Summary.Failed, export.RunFailure{
				PMID:   f.PMID,
				Reason: f.Err.Error(),
			})
		}
		if err := export.WriteRunFile(expCfg.RunFile, rf); err != nil {
			return summary, err
		}
		fmt.Fprintf(w, "run record saved to %s\n", expCfg.RunFile)
	}

	fmt.Fprintf(w, "\nScreen summary: %d found, %d parsed, %d failed, %d with industry authors\n",
		summary.IDsFound, summary.Parsed, summary.Failed, summary.Industry)
	return summary, nil
}
