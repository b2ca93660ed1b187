// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// RecordFailure marks one PMID that could not be fetched or parsed.
type RecordFailure struct {
	PMID string
	Err  error
}

// FetchResult holds the outcome of a batch efetch run. Every requested
// PMID appears exactly once, either in Papers or in Failures.
type FetchResult struct {
	Papers   []types.Paper
	Failures []RecordFailure
}

// Total returns the total number of PMIDs processed.
func (r FetchResult) Total() int {
	return len(r.Papers) + len(r.Failures)
}

// HasFailures reports whether any records failed.
func (r FetchResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// Fetch retrieves article metadata for pmids via efetch, splitting the
// request into chunks of the configured size. A failed chunk marks only
// its own PMIDs as failures; other chunks proceed. Per-record status is
// written to w. Fetch returns an error only when every chunk failed, which
// indicates the service is unreachable rather than individual bad records.
func (c *Client) Fetch(ctx context.Context, pmids []string, w io.Writer) (FetchResult, error) {
	var result FetchResult
	if len(pmids) == 0 {
		return result, nil
	}

	chunkSize := c.Cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	parsed := make(map[string]types.Paper)
	failedChunks := 0
	totalChunks := 0

	for start := 0; start < len(pmids); start += chunkSize {
		end := start + chunkSize
		if end > len(pmids) {
			end = len(pmids)
		}
		chunk := pmids[start:end]
		totalChunks++

		papers, err := c.fetchChunk(ctx, chunk)
		if err != nil {
			failedChunks++
			fmt.Fprintf(w, "warning: efetch failed for %d record(s): %v\n", len(chunk), err)
			for _, id := range chunk {
				result.Failures = append(result.Failures, RecordFailure{PMID: id, Err: err})
			}
			continue
		}
		for _, p := range papers {
			parsed[p.PMID] = p
		}
	}

	if failedChunks == totalChunks {
		return result, fmt.Errorf("efetch failed for all %d record(s)", len(pmids))
	}

	// Reconcile against the request so no record silently disappears:
	// requested PMIDs absent from the response are per-record failures.
	alreadyFailed := make(map[string]bool, len(result.Failures))
	for _, f := range result.Failures {
		alreadyFailed[f.PMID] = true
	}
	for _, id := range pmids {
		if alreadyFailed[id] {
			continue
		}
		if p, ok := parsed[id]; ok {
			result.Papers = append(result.Papers, p)
			continue
		}
		result.Failures = append(result.Failures, RecordFailure{
			PMID: id,
			Err:  fmt.Errorf("no parseable record in efetch response"),
		})
		fmt.Fprintf(w, "failed:  %s (no parseable record in efetch response)\n", id)
	}

	return result, nil
}

// fetchChunk requests one comma-joined PMID batch and parses the returned
// PubmedArticleSet document.
func (c *Client) fetchChunk(ctx context.Context, pmids []string) ([]types.Paper, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	}
	c.addIdentity(params)

	body, err := c.get(ctx, efetchBase, params)
	if err != nil {
		return nil, err
	}
	return parseArticleSet(body)
}
