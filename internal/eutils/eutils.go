// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils queries the NCBI E-utilities API: esearch resolves a
// free-text query to PMIDs, efetch returns article metadata for a PMID
// batch. Individual bad records do not fail a batch; failures are carried
// per record in the fetch result.
package eutils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pdiddy/pubmed-screen/internal/httputil"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// ErrEmptyQuery is returned by Search when the query is empty or whitespace.
var ErrEmptyQuery = errors.New("query is empty or whitespace")

const (
	defaultMaxResults = 100
	defaultChunkSize  = 100
)

// Client talks to the E-utilities endpoints.
type Client struct {
	HTTP *http.Client
	Cfg  types.EutilsConfig

	// Debug, when non-nil, receives request URLs and response sizes.
	Debug io.Writer
}

// NewClient returns a Client with an http.Client bounded by the configured
// timeout.
func NewClient(cfg types.EutilsConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// esearch JSON structures.
type esearchResponse struct {
	Result *esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

// Search resolves a free-text query to an ordered, deduplicated list of
// PMIDs via esearch. The result count is capped by the configured
// MaxResults (retmax). A blank query returns ErrEmptyQuery.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	if isBlank(query) {
		return nil, ErrEmptyQuery
	}

	retmax := c.Cfg.MaxResults
	if retmax <= 0 {
		retmax = defaultMaxResults
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {fmt.Sprintf("%d", retmax)},
	}
	c.addIdentity(params)

	body, err := c.get(ctx, esearchBase, params)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}

	var er esearchResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	if er.Result == nil || er.Result.IDList == nil {
		return nil, fmt.Errorf("invalid esearch response: missing esearchresult.idlist")
	}

	ids := dedupe(er.Result.IDList)
	// retmax is enforced server-side; cap locally as well.
	if len(ids) > retmax {
		ids = ids[:retmax]
	}
	return ids, nil
}

// get performs a GET with the shared User-Agent and retry policy and
// returns the response body.
func (c *Client) get(ctx context.Context, base string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("E-utilities returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if c.Debug != nil {
		fmt.Fprintf(c.Debug, "GET %s?%s (%d bytes)\n", base, params.Encode(), len(body))
	}
	return body, nil
}

// addIdentity attaches the tool, email, and api_key parameters NCBI asks
// polite clients to send.
func (c *Client) addIdentity(params url.Values) {
	if c.Cfg.Tool != "" {
		params.Set("tool", c.Cfg.Tool)
	}
	if c.Cfg.Email != "" {
		params.Set("email", c.Cfg.Email)
	}
	if c.Cfg.APIKey != "" {
		params.Set("api_key", c.Cfg.APIKey)
	}
}

// dedupe removes duplicate PMIDs while preserving order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
