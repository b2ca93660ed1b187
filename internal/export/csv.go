// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes classified papers to CSV and to YAML run records.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// Header is the fixed CSV column set, in output order.
var Header = []string{
	"identifier",
	"title",
	"publicationDate",
	"industryAffiliatedAuthors",
	"correspondingEmail",
}

// WriteCSV writes one header row and one row per paper to w. Fields
// containing commas or quotes are escaped by encoding/csv. Row count in
// equals row count out.
func WriteCSV(w io.Writer, papers []types.ClassifiedPaper) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range papers {
		row := []string{
			p.PMID,
			p.Title,
			p.Date,
			strings.Join(p.IndustryAuthors, "; "),
			p.CorrespondingEmail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", p.PMID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// WriteCSVFile writes the CSV to path, or to stdout when path is empty.
func WriteCSVFile(path string, papers []types.ClassifiedPaper) error {
	if path == "" {
		return WriteCSV(os.Stdout, papers)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}

	if err := WriteCSV(f, papers); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
