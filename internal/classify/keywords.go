// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// defaultKeywords is the compiled-in company-keyword list. Matching is a
// case-insensitive substring test, so suffixes like "inc" also catch
// "Incorporated".
var defaultKeywords = []string{
	"inc",
	"ltd",
	"corp",
	"corporation",
	"pharma",
	"biotech",
	"biopharma",
	"healthtech",
	"lab",
	"research institute",
	"company",
	"therapeutics",
	"healthcare",
}

// DefaultKeywords returns a copy of the compiled-in keyword list.
func DefaultKeywords() []string {
	out := make([]string, len(defaultKeywords))
	copy(out, defaultKeywords)
	return out
}

// keywordFile is the on-disk representation of a keyword list.
type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

// LoadKeywordFile reads a YAML keyword file of the form:
//
//	keywords:
//	  - pharma
//	  - biotech
//
// An empty keywords list is an error; it would classify nothing.
func LoadKeywordFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword file: %w", err)
	}
	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parsing keyword file %s: %w", path, err)
	}
	if len(kf.Keywords) == 0 {
		return nil, fmt.Errorf("keyword file %s contains no keywords", path)
	}
	return kf.Keywords, nil
}
