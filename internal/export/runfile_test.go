// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"path/filepath"
	"testing"
)

func TestRunFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	rf := RunFile{
		Query:  "cancer immunotherapy",
		Config: RunConfig{Keywords: []string{"pharma", "biotech"}},
		Papers: samplePapers(),
		Summary: RunSummary{
			IDsFound: 3,
			Parsed:   2,
			Failed:   []RunFailure{{PMID: "404", Reason: "no parseable record in efetch response"}},
			Industry: 1,
		},
	}

	if err := WriteRunFile(path, rf); err != nil {
		t.Fatalf("WriteRunFile() error = %v", err)
	}

	got, err := ReadRunFile(path)
	if err != nil {
		t.Fatalf("ReadRunFile() error = %v", err)
	}

	if got.Query != rf.Query {
		t.Errorf("Query = %q, want %q", got.Query, rf.Query)
	}
	if len(got.Papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(got.Papers))
	}
	if got.Papers[0].PMID != "31452104" {
		t.Errorf("paper 0 PMID = %q", got.Papers[0].PMID)
	}
	if got.Papers[0].Companies[0] != "Pharma Corp Ltd" {
		t.Errorf("paper 0 company = %q", got.Papers[0].Companies[0])
	}
	if len(got.Summary.Failed) != 1 || got.Summary.Failed[0].PMID != "404" {
		t.Errorf("Summary.Failed = %+v", got.Summary.Failed)
	}
	if got.Summary.Timestamp.IsZero() {
		t.Error("Timestamp was not set on write")
	}
}

func TestReadRunFile_Missing(t *testing.T) {
	if _, err := ReadRunFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("ReadRunFile() error = nil, want read error")
	}
}
