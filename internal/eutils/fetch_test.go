// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// articleXML renders a minimal valid PubmedArticle element.
func articleXML(pmid, title string) string {
	return fmt.Sprintf(`<PubmedArticle>
  <MedlineCitation>
    <PMID Version="1">%s</PMID>
    <Article>
      <Journal><JournalIssue><PubDate><Year>2019</Year><Month>Aug</Month><Day>26</Day></PubDate></JournalIssue></Journal>
      <ArticleTitle>%s</ArticleTitle>
      <AuthorList>
        <Author>
          <LastName>Okoye</LastName><ForeName>Adaeze</ForeName>
          <AffiliationInfo><Affiliation>Dept. of Oncology, Pharma Corp Ltd, Basel, Switzerland. a.okoye@pharmacorp.com.</Affiliation></AffiliationInfo>
        </Author>
      </AuthorList>
    </Article>
  </MedlineCitation>
</PubmedArticle>`, pmid, title)
}

func articleSetXML(articles ...string) string {
	return `<?xml version="1.0" ?><PubmedArticleSet>` + strings.Join(articles, "") + `</PubmedArticleSet>`
}

// efetchTestServer serves one response body per requested id parameter.
func efetchTestServer(t *testing.T, responses map[string]string, status map[string]int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := r.URL.Query().Get("id")
		if code, ok := status[ids]; ok {
			w.WriteHeader(code)
			return
		}
		fmt.Fprint(w, responses[ids])
	}))
	old := efetchBase
	efetchBase = ts.URL
	t.Cleanup(func() {
		efetchBase = old
		ts.Close()
	})
	return ts
}

func TestFetch_EmptyInput(t *testing.T) {
	result, err := testClient().Fetch(context.Background(), nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.Total() != 0 {
		t.Errorf("Total() = %d, want 0", result.Total())
	}
}

func TestFetch_AllRecordsParsed(t *testing.T) {
	efetchTestServer(t, map[string]string{
		"1,2": articleSetXML(articleXML("1", "First paper"), articleXML("2", "Second paper")),
	}, nil)

	result, err := testClient().Fetch(context.Background(), []string{"1", "2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(result.Papers) != 2 || len(result.Failures) != 0 {
		t.Fatalf("got %d papers, %d failures, want 2, 0", len(result.Papers), len(result.Failures))
	}
	if result.Papers[0].PMID != "1" || result.Papers[1].PMID != "2" {
		t.Errorf("papers out of order: %s, %s", result.Papers[0].PMID, result.Papers[1].PMID)
	}
}

func TestFetch_MalformedChunkIsPerRecordFailure(t *testing.T) {
	// Chunk size 1 so each PMID is its own request; the second chunk
	// returns an undecodable document.
	efetchTestServer(t, map[string]string{
		"1": articleSetXML(articleXML("1", "Good paper")),
		"2": "<PubmedArticleSet><broken",
	}, nil)

	client := testClient()
	client.Cfg.ChunkSize = 1

	var log bytes.Buffer
	result, err := client.Fetch(context.Background(), []string{"1", "2"}, &log)
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil (partial success)", err)
	}

	if len(result.Papers) != 1 || result.Papers[0].PMID != "1" {
		t.Fatalf("papers = %+v, want one paper with PMID 1", result.Papers)
	}
	if len(result.Failures) != 1 || result.Failures[0].PMID != "2" {
		t.Fatalf("failures = %+v, want one failure for PMID 2", result.Failures)
	}
	if result.Total() != 2 {
		t.Errorf("Total() = %d, want 2", result.Total())
	}
	if !strings.Contains(log.String(), "warning") {
		t.Errorf("expected a logged warning, got %q", log.String())
	}
}

func TestFetch_MissingRecordIsFailure(t *testing.T) {
	// Both PMIDs requested in one chunk; the response only carries one.
	efetchTestServer(t, map[string]string{
		"1,2": articleSetXML(articleXML("1", "Only paper")),
	}, nil)

	result, err := testClient().Fetch(context.Background(), []string{"1", "2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(result.Papers) != 1 || len(result.Failures) != 1 {
		t.Fatalf("got %d papers, %d failures, want 1, 1", len(result.Papers), len(result.Failures))
	}
	if result.Failures[0].PMID != "2" {
		t.Errorf("failure PMID = %s, want 2", result.Failures[0].PMID)
	}
}

func TestFetch_AllChunksFailedIsFatal(t *testing.T) {
	efetchTestServer(t, nil, map[string]int{
		"1": http.StatusBadGateway,
		"2": http.StatusBadGateway,
	})

	client := testClient()
	client.Cfg.ChunkSize = 1

	_, err := client.Fetch(context.Background(), []string{"1", "2"}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("Fetch() error = nil, want wholesale failure")
	}
}

func TestFetch_AccountingInvariant(t *testing.T) {
	// Mixed outcome: chunk "1" good, "2" malformed, "3" good but the
	// response is for a different PMID.
	efetchTestServer(t, map[string]string{
		"1": articleSetXML(articleXML("1", "Good")),
		"2": "not xml at all",
		"3": articleSetXML(articleXML("999", "Unexpected")),
	}, nil)

	client := testClient()
	client.Cfg.ChunkSize = 1

	result, err := client.Fetch(context.Background(), []string{"1", "2", "3"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.Total() != 3 {
		t.Errorf("Total() = %d, want 3 (no record may silently disappear)", result.Total())
	}
	if len(result.Papers) != 1 {
		t.Errorf("papers = %d, want 1", len(result.Papers))
	}
	if len(result.Failures) != 2 {
		t.Errorf("failures = %d, want 2", len(result.Failures))
	}
}
