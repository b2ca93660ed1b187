// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// RunFile is the on-disk record of one screening run. Unlike the CSV,
// which carries the fixed column set, the run file keeps the full
// per-author verdicts and company affiliations for later inspection.
type RunFile struct {
	Query   string                  `yaml:"query"`
	Config  RunConfig               `yaml:"config"`
	Papers  []types.ClassifiedPaper `yaml:"papers"`
	Summary RunSummary              `yaml:"summary"`
}

// RunConfig stores the settings that produced the results.
type RunConfig struct {
	Keywords []string `yaml:"keywords"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	IDsFound  int          `yaml:"ids_found"`
	Parsed    int          `yaml:"parsed"`
	Failed    []RunFailure `yaml:"failed,omitempty"`
	Industry  int          `yaml:"industry"`
	Timestamp time.Time    `yaml:"timestamp"`
}

// RunFailure records one PMID excluded from the output and why.
type RunFailure struct {
	PMID   string `yaml:"pmid"`
	Reason string `yaml:"reason"`
}

// WriteRunFile saves the run record to a YAML file.
func WriteRunFile(path string, rf RunFile) error {
	if rf.Summary.Timestamp.IsZero() {
		rf.Summary.Timestamp = time.Now()
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run record from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
