// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-screen/internal/classify"
	"github.com/pdiddy/pubmed-screen/internal/eutils"
	"github.com/pdiddy/pubmed-screen/internal/export"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// fakeClient stubs the resolve and fetch stages.
type fakeClient struct {
	ids       []string
	searchErr error
	result    eutils.FetchResult
	fetchErr  error

	fetchedWith []string
}

func (f *fakeClient) Search(ctx context.Context, query string) ([]string, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.ids, nil
}

func (f *fakeClient) Fetch(ctx context.Context, pmids []string, w io.Writer) (eutils.FetchResult, error) {
	f.fetchedWith = pmids
	if f.fetchErr != nil {
		return eutils.FetchResult{}, f.fetchErr
	}
	for _, failure := range f.result.Failures {
		fmt.Fprintf(w, "failed:  %s (%v)\n", failure.PMID, failure.Err)
	}
	return f.result, nil
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun_PartialFailureIsSuccess(t *testing.T) {
	client := &fakeClient{
		ids: []string{"1", "2"},
		result: eutils.FetchResult{
			Papers: []types.Paper{{
				PMID:  "1",
				Title: "Checkpoint inhibition",
				Date:  "2019-09-03",
				Authors: []types.Author{
					{Name: "Okoye, Adaeze", Affiliation: "Pharma Corp Ltd, Basel"},
					{Name: "Lindqvist, Maja", Affiliation: "State University"},
				},
			}},
			Failures: []eutils.RecordFailure{{
				PMID: "2",
				Err:  errors.New("no parseable record in efetch response"),
			}},
		},
	}

	outPath := filepath.Join(t.TempDir(), "out.csv")
	var log bytes.Buffer

	summary, err := Run(context.Background(), client, classify.New(nil),
		types.ExportConfig{File: outPath}, "cancer research", &log)
	require.NoError(t, err, "partial success must not be an error")

	assert.Equal(t, Summary{IDsFound: 2, Parsed: 1, Failed: 1, Industry: 1}, summary)
	assert.Equal(t, []string{"1", "2"}, client.fetchedWith)

	rows := readCSV(t, outPath)
	require.Len(t, rows, 2, "header plus exactly one data row")
	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Okoye, Adaeze", rows[1][3])

	assert.Contains(t, log.String(), "failed:  2")
}

func TestRun_ZeroResultsWritesHeaderOnly(t *testing.T) {
	client := &fakeClient{ids: nil}

	outPath := filepath.Join(t.TempDir(), "out.csv")
	summary, err := Run(context.Background(), client, classify.New(nil),
		types.ExportConfig{File: outPath}, "zzzzznonsensequeryzzzzz", io.Discard)
	require.NoError(t, err, "zero results is not an error")

	assert.Equal(t, Summary{}, summary)
	assert.Nil(t, client.fetchedWith, "fetch must not run with no PMIDs")

	rows := readCSV(t, outPath)
	require.Len(t, rows, 1)
	assert.Equal(t, export.Header, rows[0])
}

func TestRun_SearchErrorIsFatal(t *testing.T) {
	client := &fakeClient{searchErr: eutils.ErrEmptyQuery}

	_, err := Run(context.Background(), client, classify.New(nil),
		types.ExportConfig{}, "   ", io.Discard)
	assert.ErrorIs(t, err, eutils.ErrEmptyQuery)
}

func TestRun_FetchWholesaleErrorIsFatal(t *testing.T) {
	client := &fakeClient{
		ids:      []string{"1"},
		fetchErr: errors.New("efetch failed for all 1 record(s)"),
	}

	_, err := Run(context.Background(), client, classify.New(nil),
		types.ExportConfig{File: filepath.Join(t.TempDir(), "out.csv")}, "cancer", io.Discard)
	assert.Error(t, err)
}

func TestRun_UnwritableOutputIsFatal(t *testing.T) {
	client := &fakeClient{
		ids: []string{"1"},
		result: eutils.FetchResult{
			Papers: []types.Paper{{PMID: "1", Title: "A paper"}},
		},
	}

	_, err := Run(context.Background(), client, classify.New(nil),
		types.ExportConfig{File: filepath.Join(t.TempDir(), "no-such-dir", "out.csv")},
		"cancer", io.Discard)
	assert.Error(t, err)
}

func TestRun_WritesRunFile(t *testing.T) {
	client := &fakeClient{
		ids: []string{"1", "2"},
		result: eutils.FetchResult{
			Papers: []types.Paper{{
				PMID:    "1",
				Title:   "A paper",
				Authors: []types.Author{{Name: "Okoye, Adaeze", Affiliation: "Genovia Biotech"}},
			}},
			Failures: []eutils.RecordFailure{{PMID: "2", Err: errors.New("boom")}},
		},
	}

	dir := t.TempDir()
	runPath := filepath.Join(dir, "run.yaml")
	_, err := Run(context.Background(), client, classify.New(nil),
		types.ExportConfig{File: filepath.Join(dir, "out.csv"), RunFile: runPath},
		"cancer", io.Discard)
	require.NoError(t, err)

	rf, err := export.ReadRunFile(runPath)
	require.NoError(t, err)

	assert.Equal(t, "cancer", rf.Query)
	require.Len(t, rf.Papers, 1)
	assert.Equal(t, []string{"Genovia Biotech"}, rf.Papers[0].Companies)
	require.Len(t, rf.Summary.Failed, 1)
	assert.Equal(t, "2", rf.Summary.Failed[0].PMID)
	assert.Equal(t, "boom", rf.Summary.Failed[0].Reason)
	assert.Equal(t, 1, rf.Summary.Industry)
}
