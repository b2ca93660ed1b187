// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-screen pipeline.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-screen/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EutilsConfig holds settings for the NCBI E-utilities client.
type EutilsConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of PMIDs esearch may return (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// ChunkSize is the maximum number of PMIDs per efetch request
	// (default 100; NCBI caps GET id lists).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// Tool is the tool name sent as the E-utilities "tool" parameter.
	Tool string `json:"tool" yaml:"tool"`

	// Email is the contact address sent as the "email" parameter for
	// polite-pool access. Usually loaded from .secrets/ncbi-email.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// APIKey raises the NCBI rate limit from 3 to 10 requests per second.
	// Usually loaded from .secrets/ncbi-api-key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ClassifyConfig holds settings for the affiliation classifier.
type ClassifyConfig struct {
	// Keywords is the company-keyword list matched against affiliation
	// text. Empty means the compiled-in defaults.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// File is the CSV destination path; empty means stdout.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// RunFile is an optional path for the YAML run record.
	RunFile string `json:"run_file,omitempty" yaml:"run_file,omitempty"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Eutils   EutilsConfig   `json:"eutils" yaml:"eutils"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Export   ExportConfig   `json:"export" yaml:"export"`
}
